// Package synthesizer implements the inhabitation algorithm: it
// projects each component's specification into a CombinatorInfo
// (prefix of binders, multi-arrow decomposition by arity) once, then
// for a target non-terminal worklist emits grammar rules lazily by
// combining necessary substitution, literal instantiation, and minimal
// covers.
package synthesizer

// ParameterSpace holds, per group symbol, either a finite enumerable
// collection of literal values or a membership-only predicate (for
// groups too large or unbounded to enumerate directly). A
// LiteralParameter of a membership-only group is instantiated from its
// Candidates function, or from the value necessary substitution binds
// it to; with neither, its component yields no rules for that target.
type ParameterSpace struct {
	enumerable map[string]enumerableGroup
	membership map[string]func(any) bool
}

type enumerableGroup struct {
	values []any
	set    map[any]struct{}
}

// NewParameterSpace returns an empty parameter space.
func NewParameterSpace() *ParameterSpace {
	return &ParameterSpace{
		enumerable: make(map[string]enumerableGroup),
		membership: make(map[string]func(any) bool),
	}
}

// AddEnumerable registers group as a finite, directly-iterable
// collection.
func (p *ParameterSpace) AddEnumerable(group string, values []any) {
	set := make(map[any]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	p.enumerable[group] = enumerableGroup{values: values, set: set}
}

// AddMembershipOnly registers group with only a membership oracle; its
// values are never enumerated (see ParameterSpace).
func (p *ParameterSpace) AddMembershipOnly(group string, contains func(any) bool) {
	p.membership[group] = contains
}

// Has reports whether group is known to the parameter space at all.
func (p *ParameterSpace) Has(group string) bool {
	if _, ok := p.enumerable[group]; ok {
		return true
	}
	_, ok := p.membership[group]
	return ok
}

// Iterate returns group's enumeration, or (nil, false) if group is
// membership-only.
func (p *ParameterSpace) Iterate(group string) ([]any, bool) {
	g, ok := p.enumerable[group]
	if !ok {
		return nil, false
	}
	return g.values, true
}

// Contains reports whether value belongs to group.
func (p *ParameterSpace) Contains(group string, value any) bool {
	if g, ok := p.enumerable[group]; ok {
		_, ok2 := g.set[value]
		return ok2
	}
	if f, ok := p.membership[group]; ok {
		return f(value)
	}
	return false
}
