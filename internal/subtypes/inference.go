package subtypes

import "github.com/cosy-synth/cosy/internal/types"

// Result is the three-valued outcome of InferSubstitution. The source
// this engine was distilled from conflates "ambiguous" with "empty
// substitution" by returning {} for both; that is a latent hazard (an
// ambiguous result is silently usable as if it meant "no constraints"),
// so here they are distinct.
type Result int

const (
	// Impossible means no substitution makes sigma a subtype of path.
	Impossible Result = iota
	// Definite means exactly one substitution does, held in Inference.Subst.
	Definite
	// Ambiguous means at least one substitution exists, but more than
	// one does — the caller must fall back to explicit enumeration.
	Ambiguous
)

// Inference is the result of InferSubstitution. Subst is meaningful
// only when Result == Definite.
type Inference struct {
	Result Result
	Subst  types.Subst
}

// InferSubstitution computes the substitution S, if unique, for which
// S(sigma) <= path. path must be closed (no free variables) and
// organized (a single non-Intersection path, as produced by Type.Organized).
func (s *Subtypes) InferSubstitution(sigma, path types.Type, groups map[string]string) Inference {
	switch sig := sigma.(type) {
	case types.Omega:
		if path.IsOmega() {
			return Inference{Result: Definite, Subst: types.Subst{}}
		}
		return Inference{Result: Impossible}

	case types.Intersection:
		left := s.InferSubstitution(sig.Left, path, groups)
		right := s.InferSubstitution(sig.Right, path, groups)
		return combineInference(left, right)

	case types.Constructor:
		c, ok := path.(types.Constructor)
		if !ok {
			if path.IsOmega() {
				return Inference{Result: Definite, Subst: types.Subst{}}
			}
			return Inference{Result: Impossible}
		}
		if sig.Name != c.Name && !s.isSubtypeName(sig.Name, c.Name) {
			return Inference{Result: Impossible}
		}
		return s.InferSubstitution(sig.Arg, c.Arg, groups)

	case types.Arrow:
		a, ok := path.(types.Arrow)
		if !ok {
			if path.IsOmega() {
				return Inference{Result: Definite, Subst: types.Subst{}}
			}
			return Inference{Result: Impossible}
		}
		// Infer from the target first, then use that substitution (not an
		// empty one) to check the contravariant source relation — but only
		// once it binds every free variable sig.Source needs; otherwise the
		// source check can't be decided yet and the result is Ambiguous,
		// matching infer_substitution's Arrow case.
		targetInf := s.InferSubstitution(sig.Target, a.Target, groups)
		if targetInf.Result == Impossible {
			return Inference{Result: Impossible}
		}
		substitution := targetInf.Subst
		if targetInf.Result == Ambiguous {
			substitution = types.Subst{}
		}
		if !substCoversVars(substitution, sig.Source.FreeVars()) {
			return Inference{Result: Ambiguous}
		}
		if !s.CheckSubtype(a.Source, sig.Source, groups, substitution) {
			return Inference{Result: Impossible}
		}
		if targetInf.Result == Ambiguous {
			return Inference{Result: Ambiguous}
		}
		return Inference{Result: Definite, Subst: substitution}

	case types.Literal:
		lit, ok := path.(types.Literal)
		if !ok {
			if path.IsOmega() {
				return Inference{Result: Definite, Subst: types.Subst{}}
			}
			return Inference{Result: Impossible}
		}
		if sig.Group == lit.Group && sig.Value == lit.Value {
			return Inference{Result: Definite, Subst: types.Subst{}}
		}
		return Inference{Result: Impossible}

	case types.Var:
		if path.IsOmega() {
			return Inference{Result: Ambiguous}
		}
		lit, ok := path.(types.Literal)
		if !ok {
			return Inference{Result: Impossible}
		}
		if groups[sig.Name] != lit.Group {
			return Inference{Result: Impossible}
		}
		return Inference{Result: Definite, Subst: types.Subst{sig.Name: lit.Value}}

	default:
		return Inference{Result: Impossible}
	}
}

// combineInference merges the two branches of an Intersection(l, r)
// sigma: a value of an intersection type need only satisfy path through
// one of its components, so an Impossible branch is simply discarded
// rather than poisoning the whole result. When both branches produce a
// substitution, the more specific one wins only if it is a consistent
// extension of the other; otherwise two genuinely different
// substitutions would work, which is exactly what Ambiguous means.
func combineInference(a, b Inference) Inference {
	if a.Result == Impossible && b.Result == Impossible {
		return Inference{Result: Impossible}
	}
	if a.Result == Impossible {
		return b
	}
	if b.Result == Impossible {
		return a
	}
	if a.Result == Ambiguous || b.Result == Ambiguous {
		return Inference{Result: Ambiguous}
	}
	if substExtends(a.Subst, b.Subst) {
		return a
	}
	if substExtends(b.Subst, a.Subst) {
		return b
	}
	return Inference{Result: Ambiguous}
}

// substExtends reports whether superset agrees with every binding in
// subset (superset is a consistent extension of subset).
func substExtends(superset, subset types.Subst) bool {
	for k, v := range subset {
		if sv, ok := superset[k]; !ok || sv != v {
			return false
		}
	}
	return true
}

// substCoversVars reports whether subst binds every name in free.
func substCoversVars(subst types.Subst, free map[string]struct{}) bool {
	for name := range free {
		if _, ok := subst[name]; !ok {
			return false
		}
	}
	return true
}
