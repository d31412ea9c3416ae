// Package dsl is a fluent builder for types.Specification values, a Go
// port of the source's dsl.py DSL class to method chaining in the style
// of the teacher's ext.Builder/BuilderOption pattern. It is a surface
// convenience only — no invariant lives here; every well-formedness
// check runs in synthesizer.New against whatever Specification a
// Builder (or hand-written Go) produces.
package dsl

import "github.com/cosy-synth/cosy/internal/types"

// Builder accumulates a chain of binders (parameters and predicates) to
// wrap around a trailing Type, in declaration order.
type Builder struct {
	wrap func(types.Specification) types.Specification
}

// New returns an empty Builder: Suffix(t) on a fresh Builder returns t
// unchanged.
func New() *Builder {
	return &Builder{wrap: func(s types.Specification) types.Specification { return s }}
}

// Parameter introduces a LiteralParameter named name ranging over group,
// optionally narrowed by candidates (which, like the source, receives
// the substitution accumulated from previously introduced parameters).
func (b *Builder) Parameter(name, group string, candidates func(types.Subst) []any) *Builder {
	prev := b.wrap
	b.wrap = func(suffix types.Specification) types.Specification {
		return prev(types.Abstraction{
			Parameter: types.LiteralParameter{Name: name, Group: group, Candidates: candidates},
			Body:      suffix,
		})
	}
	return b
}

// Argument introduces a TermParameter named name ranging over
// inhabitants of spec — usable only in predicates attached via
// Constraint, since term values only exist once a tree is constructed.
func (b *Builder) Argument(name string, spec types.Type) *Builder {
	prev := b.wrap
	b.wrap = func(suffix types.Specification) types.Specification {
		return prev(types.Abstraction{
			Parameter: types.TermParameter{Name: name, Group: spec},
			Body:      suffix,
		})
	}
	return b
}

// ParameterConstraint attaches an only-literals predicate, decidable
// during literal instantiation over the parameter variables introduced
// so far.
func (b *Builder) ParameterConstraint(constraint func(types.Subst) bool) *Builder {
	prev := b.wrap
	b.wrap = func(suffix types.Specification) types.Specification {
		return prev(types.Implication{
			Predicate: types.Predicate{Constraint: constraint, OnlyLiterals: true},
			Body:      suffix,
		})
	}
	return b
}

// Constraint attaches a deferred predicate over both parameter and term
// variables, evaluated once term arguments are available at rule
// emission / tree construction time.
func (b *Builder) Constraint(constraint func(types.Subst) bool) *Builder {
	prev := b.wrap
	b.wrap = func(suffix types.Specification) types.Specification {
		return prev(types.Implication{
			Predicate: types.Predicate{Constraint: constraint, OnlyLiterals: false},
			Body:      suffix,
		})
	}
	return b
}

// Suffix wraps suffix in every binder accumulated so far, in
// declaration order, producing the finished Specification.
func (b *Builder) Suffix(suffix types.Type) types.Specification {
	return b.wrap(suffix)
}
