package synthesizer

import (
	"fmt"

	"github.com/cosy-synth/cosy/internal/types"
)

// CombinatorInfo is the once-per-component precomputation the
// synthesizer works from: the ordered prefix of binders, the
// literal-typed variable -> group map, the deferred (non-literal)
// predicates, and the arity-indexed multi-arrow decomposition of the
// trailing type.
type CombinatorInfo[C comparable] struct {
	Name           string
	Component      C
	Prefix         []types.Binder
	Groups         map[string]string
	TermPredicates []types.Predicate
	ByArity        [][]MultiArrow
}

// NewCombinatorInfo walks a component's Specification prefix, checking
// the three well-formedness invariants (unique parameter names, groups
// present in the parameter space, every free variable bound by an
// enclosing LiteralParameter) before decomposing its trailing Type.
func NewCombinatorInfo[C comparable](name string, component C, spec types.Specification, space *ParameterSpace) (*CombinatorInfo[C], error) {
	info := &CombinatorInfo[C]{
		Name:      name,
		Component: component,
		Groups:    make(map[string]string),
	}
	seen := make(map[string]struct{})
	var termTypes []types.Type

	cur := spec
	for {
		switch node := cur.(type) {
		case types.Abstraction:
			pname := node.Parameter.ParamName()
			if _, dup := seen[pname]; dup {
				return nil, &types.DuplicateParameterError{Component: name, Name: pname}
			}
			seen[pname] = struct{}{}
			info.Prefix = append(info.Prefix, node.Parameter)
			if lp, ok := node.Parameter.(types.LiteralParameter); ok {
				if space != nil && !space.Has(lp.Group) {
					return nil, &types.GroupNotInParameterSpaceError{Component: name, Name: lp.Name, Group: lp.Group}
				}
				info.Groups[lp.Name] = lp.Group
			}
			if tp, ok := node.Parameter.(types.TermParameter); ok && tp.Group != nil {
				termTypes = append(termTypes, tp.Group)
			}
			cur = node.Body

		case types.Implication:
			info.Prefix = append(info.Prefix, node.Predicate)
			if !node.Predicate.OnlyLiterals {
				info.TermPredicates = append(info.TermPredicates, node.Predicate)
			}
			cur = node.Body

		case types.Type:
			for _, t := range append(termTypes, node) {
				for v := range t.FreeVars() {
					if _, ok := info.Groups[v]; !ok {
						return nil, &types.UnboundVariableError{Component: name, Name: v}
					}
				}
			}
			info.ByArity = multiArrowsByArity(node)
			return info, nil

		default:
			return nil, fmt.Errorf("synthesizer: component %q: unrecognized specification node %T", name, cur)
		}
	}
}
