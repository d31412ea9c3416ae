package specfile

import (
	"fmt"

	"github.com/cosy-synth/cosy/internal/types"
)

// typeExpr is the YAML shape of a Type: exactly one of its fields is
// set (Arg only alongside Ctor), mirroring the Type union's six
// variants.
type typeExpr struct {
	Omega   bool        `yaml:"omega,omitempty"`
	Ctor    string      `yaml:"ctor,omitempty"`
	Arg     *typeExpr   `yaml:"arg,omitempty"`
	Arrow   *arrowExpr  `yaml:"arrow,omitempty"`
	And     []typeExpr  `yaml:"and,omitempty"`
	Literal *literalExpr `yaml:"literal,omitempty"`
	Var     string      `yaml:"var,omitempty"`
}

type arrowExpr struct {
	From typeExpr `yaml:"from"`
	To   typeExpr `yaml:"to"`
}

type literalExpr struct {
	Value any    `yaml:"value"`
	Group string `yaml:"group"`
}

// toType converts a parsed typeExpr into a types.Type. A bare
// Constructor with no Arg defaults to nullary, matching types.Nullary.
func (e typeExpr) toType() (types.Type, error) {
	switch {
	case e.Omega:
		return types.Omega{}, nil

	case e.Ctor != "":
		if e.Arg == nil {
			return types.Nullary(e.Ctor), nil
		}
		arg, err := e.Arg.toType()
		if err != nil {
			return nil, fmt.Errorf("ctor %q: %w", e.Ctor, err)
		}
		return types.NewConstructor(e.Ctor, arg), nil

	case e.Arrow != nil:
		from, err := e.Arrow.From.toType()
		if err != nil {
			return nil, fmt.Errorf("arrow source: %w", err)
		}
		to, err := e.Arrow.To.toType()
		if err != nil {
			return nil, fmt.Errorf("arrow target: %w", err)
		}
		return types.NewArrow(from, to), nil

	case len(e.And) > 0:
		parts := make([]types.Type, len(e.And))
		for i, sub := range e.And {
			t, err := sub.toType()
			if err != nil {
				return nil, fmt.Errorf("and[%d]: %w", i, err)
			}
			parts[i] = t
		}
		return types.Intersect(parts), nil

	case e.Literal != nil:
		if e.Literal.Group == "" {
			return nil, fmt.Errorf("literal %v: missing group", e.Literal.Value)
		}
		return types.NewLiteral(e.Literal.Value, e.Literal.Group), nil

	case e.Var != "":
		return types.NewVar(e.Var), nil

	default:
		return nil, fmt.Errorf("type expression has no recognized field set")
	}
}
