package synthesizer

import "github.com/cosy-synth/cosy/internal/types"

// MultiArrow is a flattened n-ary arrow (Args...) -> Target, obtained
// from a component's curried arrow type by peeling off one unary arrow
// at a time while distributing over Intersection, stopping whenever a
// target would be omega.
type MultiArrow struct {
	Args   []types.Type
	Target types.Type
}

// multiArrowsByArity builds arity-indexed multi-arrow families for a
// component's trailing type tau: entry 0 is always [MultiArrow((), tau)];
// entry k+1 is derived from entry k by every unary split of each
// multi-arrow's target.
func multiArrowsByArity(tau types.Type) [][]MultiArrow {
	result := [][]MultiArrow{{{Target: tau}}}
	for {
		current := result[len(result)-1]
		var next []MultiArrow
		for _, m := range current {
			for _, sp := range unarySplits(m.Target) {
				args := make([]types.Type, len(m.Args)+1)
				copy(args, m.Args)
				args[len(m.Args)] = sp.arg
				next = append(next, MultiArrow{Args: args, Target: sp.target})
			}
		}
		if len(next) == 0 {
			return result
		}
		result = append(result, next)
	}
}

type unarySplit struct {
	arg    types.Type
	target types.Type
}

// unarySplits distributes rho over Intersection and collects every
// Arrow(s, t) component whose target is not omega.
func unarySplits(rho types.Type) []unarySplit {
	var out []unarySplit
	var walk func(types.Type)
	walk = func(t types.Type) {
		switch n := t.(type) {
		case types.Intersection:
			walk(n.Left)
			walk(n.Right)
		case types.Arrow:
			if !n.Target.IsOmega() {
				out = append(out, unarySplit{arg: n.Source, target: n.Target})
			}
		}
	}
	walk(rho)
	return out
}
