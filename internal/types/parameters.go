package types

// Binder is the marker interface for the two binder shapes that can
// appear in a component's prefix: parameters and predicates.
type Binder interface {
	binderNode()
}

// Parameter is either a LiteralParameter (ranging over a parameter-space
// group) or a TermParameter (ranging over inhabitants of a Type).
type Parameter interface {
	Binder
	ParamName() string
}

// LiteralParameter binds name to a literal drawn from the parameter
// space group Group, optionally narrowed by Candidates.
type LiteralParameter struct {
	Name  string
	Group string

	// Candidates, when non-nil, is consulted instead of the raw
	// parameter-space collection, and (if the name is already bound by a
	// necessary substitution) as a membership check. It receives the
	// substitution accumulated so far.
	Candidates func(Subst) []any
}

func (LiteralParameter) binderNode()        {}
func (p LiteralParameter) ParamName() string { return p.Name }

// TermParameter binds name to an inhabitant of Group (itself a Type,
// not a parameter-space symbol).
type TermParameter struct {
	Name  string
	Group Type
}

func (TermParameter) binderNode()        {}
func (p TermParameter) ParamName() string { return p.Name }

// Predicate is a side condition over the accumulated substitution.
// OnlyLiterals predicates must be decidable during literal
// instantiation; others are deferred and attached to emitted rules.
type Predicate struct {
	Constraint   func(Subst) bool
	OnlyLiterals bool
}

func (Predicate) binderNode() {}

// Abstraction binds one Parameter in front of a nested Specification.
type Abstraction struct {
	Parameter Parameter
	Body      Specification
}

func (Abstraction) specNode() {}

// Implication attaches one Predicate in front of a nested Specification.
type Implication struct {
	Predicate Predicate
	Body      Specification
}

func (Implication) specNode() {}
