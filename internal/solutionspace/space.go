package solutionspace

import (
	"fmt"
	"strings"

	"github.com/cosy-synth/cosy/internal/types"
)

// SolutionSpace is a finite or incrementally-grown tree grammar whose
// non-terminals are Types and whose terminals are component identities.
// It is built incrementally by AddRule and becomes immutable to callers
// after Prune.
type SolutionSpace[C comparable] struct {
	rules      map[types.Type][]RHSRule[C]
	order      []types.Type
	pruned     bool
}

// New returns an empty solution space.
func New[C comparable]() *SolutionSpace[C] {
	return &SolutionSpace[C]{rules: make(map[types.Type][]RHSRule[C])}
}

// AddRule appends rule to nt's production list, in the order rules are
// discovered — non-terminals are tracked in first-seen order so Show
// and enumeration scheduling never depend on Go's randomized map
// iteration.
func (s *SolutionSpace[C]) AddRule(nt types.Type, rule RHSRule[C]) {
	if _, ok := s.rules[nt]; !ok {
		s.order = append(s.order, nt)
	}
	s.rules[nt] = append(s.rules[nt], rule)
}

// Get returns nt's productions, or nil if nt has none.
func (s *SolutionSpace[C]) Get(nt types.Type) []RHSRule[C] {
	return s.rules[nt]
}

// NonTerminals returns every non-terminal with at least one rule, in
// first-seen order.
func (s *SolutionSpace[C]) NonTerminals() []types.Type {
	return s.order
}

// Show renders a debug listing of every production, one line per rule.
func (s *SolutionSpace[C]) Show() string {
	var b strings.Builder
	for _, nt := range s.order {
		for _, r := range s.rules[nt] {
			fmt.Fprintf(&b, "%s ~> %s(%s)\n", nt.String(), fmt.Sprint(r.Terminal), argsString(r.Args))
		}
	}
	return b.String()
}

func argsString(args []Argument) string {
	parts := make([]string, len(args))
	for i, a := range args {
		switch {
		case a.Constant && a.Name != "":
			parts[i] = fmt.Sprintf("%s=%v", a.Name, a.Value)
		case a.Constant:
			parts[i] = fmt.Sprintf("%v", a.Value)
		case a.Name != "":
			parts[i] = fmt.Sprintf("%s=%s", a.Name, a.Origin.String())
		default:
			parts[i] = a.Origin.String()
		}
	}
	return strings.Join(parts, ", ")
}
