package solutionspace

import (
	"github.com/cosy-synth/cosy/internal/tree"
	"github.com/cosy-synth/cosy/internal/types"
)

// ContainsTree decides whether t is derivable from start in space: a
// disjunction across the rules at each non-terminal position, and a
// conjunction across a chosen rule's argument positions. Recursion
// depth tracks the candidate tree's own depth (branching from rule
// alternatives happens within one stack frame as an ordinary loop, the
// same bound every other traversal in this module already relies on),
// so no separate explicit-stack bookkeeping is needed beyond that.
func ContainsTree[C comparable](space *SolutionSpace[C], start types.Type, t *tree.Tree[C]) bool {
	return matchesNonTerminal(space, start, t)
}

func matchesNonTerminal[C comparable](space *SolutionSpace[C], nt types.Type, t *tree.Tree[C]) bool {
	if t.IsLiteral {
		return false
	}
	for _, rule := range space.Get(nt) {
		if rule.Terminal != t.Combinator {
			continue
		}
		if len(rule.Args) != len(t.Children) {
			continue
		}
		if matchesRule(space, rule, t.Children) {
			return true
		}
	}
	return false
}

func matchesRule[C comparable](space *SolutionSpace[C], rule RHSRule[C], children []*tree.Tree[C]) bool {
	bindings := make(types.Subst, len(rule.Args))
	for i, arg := range rule.Args {
		child := children[i]
		if arg.Constant {
			if !child.IsLiteral || child.Literal != arg.Value {
				return false
			}
			if arg.Name != "" {
				bindings[arg.Name] = arg.Value
			}
			continue
		}
		if !matchesNonTerminal(space, arg.Origin, child) {
			return false
		}
		if arg.Name != "" {
			bindings[arg.Name] = child
		}
	}
	for _, p := range rule.Predicates {
		if !p.Constraint(bindings) {
			return false
		}
	}
	return true
}
