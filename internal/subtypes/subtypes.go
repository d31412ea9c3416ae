package subtypes

import "github.com/cosy-synth/cosy/internal/types"

// Subtypes holds the closed taxonomy and answers check_subtype and
// infer_substitution queries against it. It is effectively immutable
// after construction and safe to share across an entire synthesizer run.
type Subtypes struct {
	closure Taxonomy
}

// New closes raw (constructor name -> direct supertype names) and
// returns a ready-to-query Subtypes.
func New(raw map[string][]string) *Subtypes {
	return &Subtypes{closure: closeTaxonomy(raw)}
}

// isSubtypeName reports whether a is no greater than b in the taxonomy
// (b appears in a's closure, i.e. b is a, or an ancestor of a).
func (s *Subtypes) isSubtypeName(a, b string) bool {
	if a == b {
		return true
	}
	supers, ok := s.closure[a]
	if !ok {
		return false
	}
	_, ok = supers[b]
	return ok
}

// CheckSubtype decides sigma <= tau, resolving free variables in either
// side via subst (name -> literal value) and groups (name -> group).
func (s *Subtypes) CheckSubtype(sigma, tau types.Type, groups map[string]string, subst types.Subst) bool {
	if tau.IsOmega() {
		return true
	}

	switch t := tau.(type) {
	case types.Literal:
		for _, p := range sigma.Organized() {
			switch p := p.(type) {
			case types.Literal:
				if p.Group == t.Group && p.Value == t.Value {
					return true
				}
			case types.Var:
				if groups[p.Name] != t.Group {
					continue
				}
				if v, ok := subst[p.Name]; ok && v == t.Value {
					return true
				}
			}
		}
		return false

	case types.Constructor:
		var args []types.Type
		for _, p := range sigma.Organized() {
			c, ok := p.(types.Constructor)
			if !ok {
				continue
			}
			if c.Name == t.Name || s.isSubtypeName(c.Name, t.Name) {
				args = append(args, c.Arg)
			}
		}
		if len(args) == 0 {
			return false
		}
		return s.CheckSubtype(types.Intersect(args), t.Arg, groups, subst)

	case types.Arrow:
		var targets []types.Type
		for _, p := range sigma.Organized() {
			a, ok := p.(types.Arrow)
			if !ok {
				continue
			}
			if s.CheckSubtype(t.Source, a.Source, groups, subst) {
				targets = append(targets, a.Target)
			}
		}
		if len(targets) == 0 {
			return false
		}
		return s.CheckSubtype(types.Intersect(targets), t.Target, groups, subst)

	case types.Intersection:
		return s.CheckSubtype(sigma, t.Left, groups, subst) && s.CheckSubtype(sigma, t.Right, groups, subst)

	case types.Var:
		value, ok := subst[t.Name]
		if !ok {
			return false
		}
		group := groups[t.Name]
		for _, p := range sigma.Organized() {
			if lit, ok := p.(types.Literal); ok && lit.Group == group && lit.Value == value {
				return true
			}
		}
		return false

	default:
		return false
	}
}
