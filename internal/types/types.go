// Package types implements the intersection type language: the six
// disjoint type variants (Omega, Constructor, Arrow, Intersection,
// Literal, Var), their structural caches (is_omega, size, organized,
// free_vars), and the Abstraction/Implication wrapper types used to
// describe parameterized component specifications.
package types

import (
	"fmt"
	"sort"
	"strings"
)

// Specification is the union of Abstraction, Implication, and Type — the
// three shapes a component's declared specification can take. Type
// embeds Specification so every concrete type satisfies it directly,
// mirroring the `Abstraction | Implication | Type` union in the source
// this engine was distilled from.
type Specification interface {
	specNode()
}

// Type is the interface every intersection-type variant implements.
// Values are immutable and freely shared; equality is structural (Go's
// native ==), which requires every Literal's Value to be a comparable
// concrete type — the same "must be Hashable" precondition the source
// places on literal values.
type Type interface {
	Specification
	fmt.Stringer

	// IsOmega reports whether this type is Omega, or an Arrow whose
	// target is omega, or an Intersection of all-omega parts.
	IsOmega() bool

	// Size is the structural size of the type (leaves count as 1).
	Size() int

	// FreeVars is the set of Var names appearing anywhere in the type.
	FreeVars() map[string]struct{}

	// Organized is the path decomposition: a non-intersection type has
	// nested intersections pushed inside constructors and arrows.
	Organized() []Type

	// Apply substitutes Var(name) with Literal(subst[name], groups[name])
	// wherever name is free, short-circuiting when no free variable of
	// this subtree appears in subst.
	Apply(groups map[string]string, subst Subst) Type
}

// Subst maps a bound variable name to its instantiated literal value.
type Subst map[string]any

func hasAny(free map[string]struct{}, s Subst) bool {
	for name := range free {
		if _, ok := s[name]; ok {
			return true
		}
	}
	return false
}

func unionVars(a, b map[string]struct{}) map[string]struct{} {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		out[k] = struct{}{}
	}
	for k := range b {
		out[k] = struct{}{}
	}
	return out
}

// dedupe removes structural duplicates, preserving first occurrence
// order (then sorting by String for determinism across callers, since
// organized is conceptually a set).
func dedupe(ts []Type) []Type {
	if len(ts) <= 1 {
		return ts
	}
	seen := make(map[Type]struct{}, len(ts))
	out := make([]Type, 0, len(ts))
	for _, t := range ts {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// Omega is the top type: every type is a subtype of Omega, and Omega is
// never a sub-path of anything but itself.
type Omega struct{}

func (Omega) specNode()                                  {}
func (Omega) String() string                              { return "omega" }
func (Omega) IsOmega() bool                                { return true }
func (Omega) Size() int                                    { return 1 }
func (Omega) FreeVars() map[string]struct{}                { return nil }
func (Omega) Organized() []Type                            { return nil }
func (Omega) Apply(map[string]string, Subst) Type          { return Omega{} }

// Constructor is a unary named type constructor; nullary constructors
// carry Arg = Omega{}.
type Constructor struct {
	Name string
	Arg  Type
}

// NewConstructor builds a Constructor, defaulting a nil Arg to Omega.
func NewConstructor(name string, arg Type) Constructor {
	if arg == nil {
		arg = Omega{}
	}
	return Constructor{Name: name, Arg: arg}
}

// Nullary builds a Constructor with no argument.
func Nullary(name string) Constructor {
	return Constructor{Name: name, Arg: Omega{}}
}

func (Constructor) specNode() {}

func (c Constructor) String() string {
	if _, ok := c.Arg.(Omega); ok {
		return c.Name
	}
	return c.Name + "(" + c.Arg.String() + ")"
}

func (c Constructor) IsOmega() bool { return false }
func (c Constructor) Size() int     { return 1 + c.Arg.Size() }

func (c Constructor) FreeVars() map[string]struct{} { return c.Arg.FreeVars() }

func (c Constructor) Organized() []Type {
	argOrganized := c.Arg.Organized()
	if len(argOrganized) <= 1 {
		return []Type{c}
	}
	out := make([]Type, len(argOrganized))
	for i, a := range argOrganized {
		out[i] = Constructor{Name: c.Name, Arg: a}
	}
	return out
}

func (c Constructor) Apply(groups map[string]string, s Subst) Type {
	if !hasAny(c.FreeVars(), s) {
		return c
	}
	return Constructor{Name: c.Name, Arg: c.Arg.Apply(groups, s)}
}

// Arrow is a function type from Source to Target.
type Arrow struct {
	Source Type
	Target Type
}

func NewArrow(source, target Type) Arrow { return Arrow{Source: source, Target: target} }

func (Arrow) specNode() {}

func (a Arrow) String() string { return a.Source.String() + " -> " + a.Target.String() }
func (a Arrow) IsOmega() bool  { return a.Target.IsOmega() }
func (a Arrow) Size() int      { return 1 + a.Source.Size() + a.Target.Size() }

func (a Arrow) FreeVars() map[string]struct{} {
	return unionVars(a.Source.FreeVars(), a.Target.FreeVars())
}

func (a Arrow) Organized() []Type {
	targetOrganized := a.Target.Organized()
	switch len(targetOrganized) {
	case 0:
		return nil
	case 1:
		return []Type{a}
	default:
		out := make([]Type, len(targetOrganized))
		for i, t := range targetOrganized {
			out[i] = Arrow{Source: a.Source, Target: t}
		}
		return out
	}
}

func (a Arrow) Apply(groups map[string]string, s Subst) Type {
	if !hasAny(a.FreeVars(), s) {
		return a
	}
	return Arrow{Source: a.Source.Apply(groups, s), Target: a.Target.Apply(groups, s)}
}

// Intersection is set-theoretic "and": idempotent, commutative, and
// associative up to subtyping, but not normalized as a tree — callers
// rely on Organized for the canonical path decomposition.
type Intersection struct {
	Left  Type
	Right Type
}

func NewIntersection(left, right Type) Intersection { return Intersection{Left: left, Right: right} }

func (Intersection) specNode() {}

func (i Intersection) String() string { return i.Left.String() + " & " + i.Right.String() }
func (i Intersection) IsOmega() bool  { return i.Left.IsOmega() && i.Right.IsOmega() }
func (i Intersection) Size() int      { return 1 + i.Left.Size() + i.Right.Size() }

func (i Intersection) FreeVars() map[string]struct{} {
	return unionVars(i.Left.FreeVars(), i.Right.FreeVars())
}

func (i Intersection) Organized() []Type {
	return dedupe(append(append([]Type{}, i.Left.Organized()...), i.Right.Organized()...))
}

func (i Intersection) Apply(groups map[string]string, s Subst) Type {
	if !hasAny(i.FreeVars(), s) {
		return i
	}
	return Intersection{Left: i.Left.Apply(groups, s), Right: i.Right.Apply(groups, s)}
}

// Literal is a singleton refinement: equal literals of equal group are
// equivalent. Value must be a comparable concrete type — the Go
// equivalent of the source's "has to be Hashable" constraint on Value.
type Literal struct {
	Value any
	Group string
}

func NewLiteral(value any, group string) Literal { return Literal{Value: value, Group: group} }

func (Literal) specNode() {}

func (l Literal) String() string                              { return fmt.Sprintf("[%v, %s]", l.Value, l.Group) }
func (l Literal) IsOmega() bool                                { return false }
func (l Literal) Size() int                                    { return 1 }
func (l Literal) FreeVars() map[string]struct{}                { return nil }
func (l Literal) Organized() []Type                            { return []Type{l} }
func (l Literal) Apply(map[string]string, Subst) Type          { return l }

// Var is a free variable ranging over literals of some group. The group
// is supplied by the enclosing LiteralParameter binder, not the
// variable itself.
type Var struct {
	Name string
}

func NewVar(name string) Var { return Var{Name: name} }

func (Var) specNode() {}

func (v Var) String() string                   { return "<" + v.Name + ">" }
func (v Var) IsOmega() bool                     { return false }
func (v Var) Size() int                         { return 1 }
func (v Var) FreeVars() map[string]struct{}     { return map[string]struct{}{v.Name: {}} }
func (v Var) Organized() []Type                 { return []Type{v} }

func (v Var) Apply(groups map[string]string, s Subst) Type {
	if value, ok := s[v.Name]; ok {
		return Literal{Value: value, Group: groups[v.Name]}
	}
	return v
}

// Intersect folds a slice of types into a single right-associated
// Intersection, or Omega for an empty slice.
func Intersect(ts []Type) Type {
	if len(ts) == 0 {
		return Omega{}
	}
	result := ts[len(ts)-1]
	for i := len(ts) - 2; i >= 0; i-- {
		result = Intersection{Left: ts[i], Right: result}
	}
	return result
}

// JoinStrings is a small display helper used by Show()-style debug
// printers elsewhere in the module.
func JoinStrings(ts []Type, sep string) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, sep)
}
