// Package solutionspace implements the tree-grammar representation the
// synthesizer emits into: rule storage, productive-non-terminal
// pruning, lazy bucket-scheduled tree enumeration, and structural tree
// containment.
package solutionspace

import "github.com/cosy-synth/cosy/internal/types"

// Argument is one position in a rule's right-hand side: either a
// ConstantArgument (a literal drawn from the parameter space) or a
// NonTerminalArgument (a recursive reference to another non-terminal).
// Name is empty for the anonymous arrow-argument positions.
type Argument struct {
	Name     string
	Constant bool
	Value    any
	Group    string
	Origin   types.Type
}

// ConstantArgument builds a literal-valued argument.
func ConstantArgument(name string, value any, group string) Argument {
	return Argument{Name: name, Constant: true, Value: value, Group: group}
}

// NonTerminalArgument builds a recursive argument deriving from origin.
func NonTerminalArgument(name string, origin types.Type) Argument {
	return Argument{Name: name, Origin: origin}
}

// RHSRule is one production NT ~> Terminal(Args...) [Predicates], where
// Terminal is the opaque component identity.
type RHSRule[C comparable] struct {
	Terminal   C
	Args       []Argument
	Predicates []types.Predicate
}

// Arity is the number of non-terminal argument positions in the rule;
// enumeration uses it to find rules buildable from constants alone.
func (r RHSRule[C]) Arity() int {
	n := 0
	for _, a := range r.Args {
		if !a.Constant {
			n++
		}
	}
	return n
}
