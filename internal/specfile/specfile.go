// Package specfile reads a declarative cosy.yaml file — a YAML
// alternative to authoring types.Specification values by hand in Go —
// grounded on the teacher's internal/ext/config.go (funxy.yaml ->
// ext.Config): a flat struct decoded by gopkg.in/yaml.v3, validated,
// and turned into the same values a hand-written internal/dsl chain
// would produce.
package specfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cosy-synth/cosy/internal/dsl"
	"github.com/cosy-synth/cosy/internal/synthesizer"
	"github.com/cosy-synth/cosy/internal/types"
)

// File is the parsed, ready-to-use contents of a cosy.yaml file.
type File struct {
	Components     map[string]types.Specification
	ParameterSpace *synthesizer.ParameterSpace
	Taxonomy       map[string][]string
}

type groupYAML struct {
	Range          []int  `yaml:"range,omitempty"`
	Values         []any  `yaml:"values,omitempty"`
	MembershipOnly bool   `yaml:"membership_only,omitempty"`
}

type paramYAML struct {
	Name       string `yaml:"name"`
	Group      string `yaml:"group"`
	Candidates string `yaml:"candidates,omitempty"`
}

type argumentYAML struct {
	Name          string   `yaml:"name"`
	Specification typeExpr `yaml:"specification"`
}

type componentYAML struct {
	Params           []paramYAML    `yaml:"params,omitempty"`
	ParamConstraints []string       `yaml:"param_constraints,omitempty"`
	Arguments        []argumentYAML `yaml:"arguments,omitempty"`
	Constraints      []string       `yaml:"constraints,omitempty"`
	Suffix           typeExpr       `yaml:"suffix"`
}

type fileYAML struct {
	ParameterSpace map[string]groupYAML    `yaml:"parameter_space"`
	Taxonomy       map[string][]string     `yaml:"taxonomy"`
	Components     map[string]componentYAML `yaml:"components"`
}

// Load reads and parses the cosy.yaml file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("specfile: reading %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses cosy.yaml content already read into memory; path is
// used only to annotate error messages.
func Parse(data []byte, path string) (*File, error) {
	var raw fileYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("specfile: parsing %s: %w", path, err)
	}

	space := synthesizer.NewParameterSpace()
	for group, g := range raw.ParameterSpace {
		switch {
		case g.MembershipOnly:
			space.AddMembershipOnly(group, func(any) bool { return true })
		case len(g.Range) == 2:
			values := make([]any, 0, g.Range[1]-g.Range[0])
			for v := g.Range[0]; v < g.Range[1]; v++ {
				values = append(values, v)
			}
			space.AddEnumerable(group, values)
		default:
			space.AddEnumerable(group, g.Values)
		}
	}

	components := make(map[string]types.Specification, len(raw.Components))
	for name, c := range raw.Components {
		spec, err := buildComponent(name, c)
		if err != nil {
			return nil, fmt.Errorf("specfile: %s: %w", path, err)
		}
		components[name] = spec
	}

	return &File{Components: components, ParameterSpace: space, Taxonomy: raw.Taxonomy}, nil
}

func buildComponent(name string, c componentYAML) (types.Specification, error) {
	b := dsl.New()

	for _, p := range c.Params {
		var candidates func(types.Subst) []any
		if p.Candidates != "" {
			fn, err := compileCandidates(p.Candidates)
			if err != nil {
				return nil, fmt.Errorf("component %q: param %q: %w", name, p.Name, err)
			}
			candidates = fn
		}
		b = b.Parameter(p.Name, p.Group, candidates)
	}

	for i, expr := range c.ParamConstraints {
		fn, err := compileConstraint(expr)
		if err != nil {
			return nil, fmt.Errorf("component %q: param_constraints[%d]: %w", name, i, err)
		}
		b = b.ParameterConstraint(fn)
	}

	for _, a := range c.Arguments {
		t, err := a.Specification.toType()
		if err != nil {
			return nil, fmt.Errorf("component %q: argument %q: %w", name, a.Name, err)
		}
		b = b.Argument(a.Name, t)
	}

	for i, expr := range c.Constraints {
		fn, err := compileConstraint(expr)
		if err != nil {
			return nil, fmt.Errorf("component %q: constraints[%d]: %w", name, i, err)
		}
		b = b.Constraint(fn)
	}

	suffix, err := c.Suffix.toType()
	if err != nil {
		return nil, fmt.Errorf("component %q: suffix: %w", name, err)
	}
	return b.Suffix(suffix), nil
}
