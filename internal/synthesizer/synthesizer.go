package synthesizer

import (
	"github.com/cosy-synth/cosy/internal/combinatorics"
	"github.com/cosy-synth/cosy/internal/solutionspace"
	"github.com/cosy-synth/cosy/internal/subtypes"
	"github.com/cosy-synth/cosy/internal/types"
)

// Component pairs a component's stable, comparable identity with its
// declared name (diagnostics only) and specification.
type Component[C comparable] struct {
	Name     string
	Identity C
	Spec     types.Specification
}

// Synthesizer precomputes one CombinatorInfo per component against a
// shared Subtypes closure and ParameterSpace, then answers
// rule-generation queries for arbitrary target types.
type Synthesizer[C comparable] struct {
	subtypes *subtypes.Subtypes
	space    *ParameterSpace
	infos    []*CombinatorInfo[C]
}

// New validates every component's specification — duplicate parameter
// names, groups absent from the parameter space, unbound free
// variables — and returns a ready-to-query Synthesizer. These are the
// three well-formedness errors raised synchronously at construction.
func New[C comparable](components []Component[C], space *ParameterSpace, taxonomy map[string][]string) (*Synthesizer[C], error) {
	sub := subtypes.New(taxonomy)
	infos := make([]*CombinatorInfo[C], 0, len(components))
	for _, c := range components {
		info, err := NewCombinatorInfo(c.Name, c.Identity, c.Spec, space)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return &Synthesizer[C]{subtypes: sub, space: space, infos: infos}, nil
}

type generatedRule[C comparable] struct {
	nt   types.Type
	rule solutionspace.RHSRule[C]
}

// RuleIterator is the pull-based generator backing
// ConstructSolutionSpaceRules: an explicit worklist of pending target
// types and a set of already-expanded ones. Each expansion step takes
// one pending target — scanning every component's necessary
// substitution, literal instantiations, and covers — and buffers
// whatever rules it discovers; Next() expands pending targets only
// until the buffer holds a rule (or the worklist is empty).
type RuleIterator[C comparable] struct {
	syn      *Synthesizer[C]
	worklist []types.Type
	expanded map[types.Type]bool
	buffer   []generatedRule[C]
}

// ConstructSolutionSpaceRules returns a lazy rule generator seeded with
// targets. Omega targets are silently dropped (a rule can never have
// Omega as its head).
func (s *Synthesizer[C]) ConstructSolutionSpaceRules(targets ...types.Type) *RuleIterator[C] {
	it := &RuleIterator[C]{syn: s, expanded: make(map[types.Type]bool)}
	for _, t := range targets {
		it.push(t)
	}
	return it
}

// ConstructSolutionSpace materializes ConstructSolutionSpaceRules into
// a SolutionSpace.
func (s *Synthesizer[C]) ConstructSolutionSpace(targets ...types.Type) *solutionspace.SolutionSpace[C] {
	space := solutionspace.New[C]()
	it := s.ConstructSolutionSpaceRules(targets...)
	for {
		nt, rule, ok := it.Next()
		if !ok {
			return space
		}
		space.AddRule(nt, rule)
	}
}

func (it *RuleIterator[C]) push(t types.Type) {
	if t == nil || t.IsOmega() || it.expanded[t] {
		return
	}
	it.worklist = append(it.worklist, t)
}

// Next returns the next (non-terminal, rule) pair discovered, or
// (nil, zero, false) once the worklist and buffer are both exhausted.
func (it *RuleIterator[C]) Next() (types.Type, solutionspace.RHSRule[C], bool) {
	for len(it.buffer) == 0 {
		if !it.expandNext() {
			var zero solutionspace.RHSRule[C]
			return nil, zero, false
		}
	}
	g := it.buffer[0]
	it.buffer = it.buffer[1:]
	return g.nt, g.rule, true
}

func (it *RuleIterator[C]) expandNext() bool {
	for len(it.worklist) > 0 {
		t := it.worklist[0]
		it.worklist = it.worklist[1:]
		if it.expanded[t] {
			continue
		}
		it.expanded[t] = true

		organized := t.Organized()
		for _, info := range it.syn.infos {
			it.expandComponent(t, organized, info)
		}
		return true
	}
	return false
}

// expandComponent runs §4.4 steps 1-4 for one component against target
// t: necessary substitution, then literal enumeration (which itself
// drives covers and rule emission for every completed substitution).
func (it *RuleIterator[C]) expandComponent(t types.Type, organized []types.Type, info *CombinatorInfo[C]) {
	skeleton, ok := it.necessarySubstitution(organized, info)
	if !ok {
		return
	}
	it.enumerateSubstitutions(t, organized, info, 0, skeleton)
}

// necessarySubstitution computes the substitution skeleton every
// successful instantiation of info must extend, or reports that the
// component cannot be used against t at all.
func (it *RuleIterator[C]) necessarySubstitution(organized []types.Type, info *CombinatorInfo[C]) (types.Subst, bool) {
	skeleton := types.Subst{}
	for _, path := range organized {
		var distinct []types.Subst
		for _, arityGroup := range info.ByArity {
			for _, m := range arityGroup {
				inf := it.syn.subtypes.InferSubstitution(m.Target, path, info.Groups)
				if inf.Result == subtypes.Impossible {
					continue
				}
				// Ambiguous (like Definite) means this multi-arrow admits
				// the component for path, pending term information; only a
				// Definite result carries a concrete substitution to merge,
				// so an Ambiguous one contributes the empty substitution —
				// "found, but no additional constraint" — to the distinct
				// set.
				subst := inf.Subst
				if inf.Result == subtypes.Ambiguous {
					subst = types.Subst{}
				}
				if !containsSubst(distinct, subst) {
					distinct = append(distinct, subst)
				}
			}
		}
		switch len(distinct) {
		case 0:
			return nil, false
		case 1:
			if !mergeSubst(skeleton, distinct[0]) {
				return nil, false
			}
		default:
			// More than one distinct forced substitution: this path
			// forces nothing unique, so it contributes no constraint.
		}
	}
	return skeleton, true
}

// enumerateSubstitutions walks info.Prefix left to right with a
// depth-first agenda, completing subst at each LiteralParameter and
// checking OnlyLiterals predicates along the way; TermParameters and
// deferred predicates are skipped here (handled downstream at rule
// emission and tree construction, respectively).
func (it *RuleIterator[C]) enumerateSubstitutions(t types.Type, organized []types.Type, info *CombinatorInfo[C], idx int, subst types.Subst) {
	if idx == len(info.Prefix) {
		it.emitForSubstitution(t, organized, info, subst)
		return
	}

	switch b := info.Prefix[idx].(type) {
	case types.LiteralParameter:
		if existing, bound := subst[b.Name]; bound {
			if b.Candidates != nil && !containsAny(b.Candidates(subst), existing) {
				return
			}
			if it.syn.space != nil && !it.syn.space.Contains(b.Group, existing) {
				return
			}
			it.enumerateSubstitutions(t, organized, info, idx+1, subst)
			return
		}

		var candidates []any
		switch {
		case b.Candidates != nil:
			candidates = b.Candidates(subst)
		case it.syn.space != nil:
			values, ok := it.syn.space.Iterate(b.Group)
			if !ok {
				return
			}
			candidates = values
		}
		for _, v := range candidates {
			next := cloneSubst(subst)
			next[b.Name] = v
			it.enumerateSubstitutions(t, organized, info, idx+1, next)
		}

	case types.Predicate:
		if b.OnlyLiterals && !b.Constraint(subst) {
			return
		}
		it.enumerateSubstitutions(t, organized, info, idx+1, subst)

	case types.TermParameter:
		it.enumerateSubstitutions(t, organized, info, idx+1, subst)
	}
}

// emitForSubstitution runs §4.4 steps 3-4 for one completed
// substitution: per arity, compute covers over organized, intersect and
// maximize argument vectors, and assemble + buffer one rule per
// surviving vector.
func (it *RuleIterator[C]) emitForSubstitution(t types.Type, organized []types.Type, info *CombinatorInfo[C], subst types.Subst) {
	for arity, multiarrows := range info.ByArity {
		if len(multiarrows) == 0 {
			continue
		}
		useful := func(path types.Type, idx int) bool {
			return it.syn.subtypes.CheckSubtype(multiarrows[idx].Target, path, info.Groups, subst)
		}
		covers := combinatorics.MinimalCovers(len(multiarrows), organized, useful)
		if len(covers) == 0 {
			continue
		}

		vectors := make([][]types.Type, 0, len(covers))
		for _, cover := range covers {
			vec := make([]types.Type, arity)
			for _, idx := range cover {
				m := multiarrows[idx]
				for i := 0; i < arity; i++ {
					var a types.Type = types.Omega{}
					if i < len(m.Args) {
						a = m.Args[i]
					}
					if vec[i] == nil {
						vec[i] = a
					} else {
						vec[i] = types.NewIntersection(vec[i], a)
					}
				}
			}
			for i := range vec {
				if vec[i] == nil {
					vec[i] = types.Omega{}
				}
			}
			vectors = append(vectors, vec)
		}

		le := func(a, b []types.Type) bool {
			for i := range a {
				if !it.syn.subtypes.CheckSubtype(a[i], b[i], info.Groups, subst) {
					return false
				}
			}
			return true
		}
		vectors = combinatorics.MaximalElements(vectors, le)

		for _, vec := range vectors {
			it.bufferRule(t, info, subst, vec)
		}
	}
}

func (it *RuleIterator[C]) bufferRule(t types.Type, info *CombinatorInfo[C], subst types.Subst, vec []types.Type) {
	var args []solutionspace.Argument
	for _, b := range info.Prefix {
		switch p := b.(type) {
		case types.LiteralParameter:
			args = append(args, solutionspace.ConstantArgument(p.Name, subst[p.Name], p.Group))
		case types.TermParameter:
			origin := p.Group.Apply(info.Groups, subst)
			args = append(args, solutionspace.NonTerminalArgument(p.Name, origin))
			it.push(origin)
		}
	}
	for _, a := range vec {
		origin := a.Apply(info.Groups, subst)
		args = append(args, solutionspace.NonTerminalArgument("", origin))
		it.push(origin)
	}

	rule := solutionspace.RHSRule[C]{
		Terminal:   info.Component,
		Args:       args,
		Predicates: info.TermPredicates,
	}
	it.buffer = append(it.buffer, generatedRule[C]{nt: t, rule: rule})
}

func containsSubst(list []types.Subst, s types.Subst) bool {
	for _, existing := range list {
		if substEqual(existing, s) {
			return true
		}
	}
	return false
}

func substEqual(a, b types.Subst) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}

func mergeSubst(dst, src types.Subst) bool {
	for k, v := range src {
		if ev, ok := dst[k]; ok {
			if ev != v {
				return false
			}
			continue
		}
		dst[k] = v
	}
	return true
}

func cloneSubst(s types.Subst) types.Subst {
	out := make(types.Subst, len(s)+1)
	for k, v := range s {
		out[k] = v
	}
	return out
}

func containsAny(xs []any, v any) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
