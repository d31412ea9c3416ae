package solutionspace

import "github.com/cosy-synth/cosy/internal/types"

// dependency is one edge of the inverse grammar: rule ruleIdx of parent
// mentions the non-terminal this dependency is stored under.
type dependency struct {
	parent  types.Type
	ruleIdx int
}

// Prune returns a new SolutionSpace retaining only productive
// non-terminals — those from which at least one finite tree is
// derivable — and only the rules whose non-terminal arguments are all
// productive. It runs as a worklist fixpoint over an inverse grammar
// rather than repeated full passes: each non-terminal becomes
// productive at most once, and that event is propagated only to the
// rules that actually reference it.
func (s *SolutionSpace[C]) Prune() *SolutionSpace[C] {
	inverse := make(map[types.Type][]dependency)
	remaining := make(map[types.Type]map[int]int, len(s.order))
	productive := make(map[types.Type]bool, len(s.order))
	var worklist []types.Type

	for _, nt := range s.order {
		counts := make(map[int]int, len(s.rules[nt]))
		for ri, r := range s.rules[nt] {
			count := 0
			for _, a := range r.Args {
				if a.Constant {
					continue
				}
				count++
				inverse[a.Origin] = append(inverse[a.Origin], dependency{parent: nt, ruleIdx: ri})
			}
			counts[ri] = count
			if count == 0 && !productive[nt] {
				productive[nt] = true
				worklist = append(worklist, nt)
			}
		}
		remaining[nt] = counts
	}

	for len(worklist) > 0 {
		nt := worklist[0]
		worklist = worklist[1:]
		for _, dep := range inverse[nt] {
			remaining[dep.parent][dep.ruleIdx]--
			if remaining[dep.parent][dep.ruleIdx] == 0 && !productive[dep.parent] {
				productive[dep.parent] = true
				worklist = append(worklist, dep.parent)
			}
		}
	}

	result := New[C]()
	for _, nt := range s.order {
		if !productive[nt] {
			continue
		}
		for _, r := range s.rules[nt] {
			keep := true
			for _, a := range r.Args {
				if a.Constant {
					continue
				}
				if !productive[a.Origin] {
					keep = false
					break
				}
			}
			if keep {
				result.AddRule(nt, r)
			}
		}
	}
	result.pruned = true
	return result
}

// Pruned reports whether this space is the result of Prune.
func (s *SolutionSpace[C]) Pruned() bool { return s.pruned }
