// Package cosy is the façade: solve = synthesize -> prune -> enumerate
// -> interpret. It is a thin orchestrator over internal/synthesizer,
// internal/solutionspace, and internal/tree — none of the three core
// subsystems' invariants live here.
package cosy

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cosy-synth/cosy/internal/config"
	"github.com/cosy-synth/cosy/internal/solutionspace"
	"github.com/cosy-synth/cosy/internal/synthesizer"
	"github.com/cosy-synth/cosy/internal/tree"
	"github.com/cosy-synth/cosy/internal/types"
)

// ErrOmegaQuery is returned by Solve when the query type is Omega — a
// rule can never have Omega as its head, so such a query can never be
// satisfiable and is rejected up front rather than silently enumerating
// nothing.
var ErrOmegaQuery = errors.New("cosy: query type must not be omega")

// DefaultMaxCount is the façade's default bound on enumerated trees,
// matching spec.md §6's Solve(query, max_count=100).
const DefaultMaxCount = 100

// Component re-exports synthesizer.Component: a component's stable
// comparable identity, its declared name (diagnostics only), and its
// specification.
type Component[C comparable] = synthesizer.Component[C]

// CoSy is one precomputed synthesizer plus the lookup Interpret needs
// to turn a component identity back into a callable Go value. It is
// built once and queried many times via Solve.
type CoSy[C comparable] struct {
	syn    *synthesizer.Synthesizer[C]
	lookup tree.Lookup[C]
}

// New validates components against space and taxonomy (see
// synthesizer.New for the three well-formedness errors this can
// return) and returns a ready-to-query CoSy. lookup resolves a
// component identity to the Go function value Interpret should invoke;
// it may be nil if the caller never intends to call Interpret (e.g.
// only wants derivable trees, not their values).
func New[C comparable](components []Component[C], space *synthesizer.ParameterSpace, taxonomy map[string][]string, lookup tree.Lookup[C]) (*CoSy[C], error) {
	syn, err := synthesizer.New(components, space, taxonomy)
	if err != nil {
		return nil, err
	}
	return &CoSy[C]{syn: syn, lookup: lookup}, nil
}

// Result pairs one derivable tree with its interpreted value.
type Result[C comparable] struct {
	Tree  *tree.Tree[C]
	Value any
}

// Iterator is the pull-based generator Solve returns: each Next() call
// draws the next tree out of the underlying solution space's
// enumerator and interprets it. Cancellation is caller-driven — simply
// stop calling Next.
type Iterator[C comparable] struct {
	runID  string
	space  *solutionspace.SolutionSpace[C]
	enum   *solutionspace.Enumerator[C]
	lookup tree.Lookup[C]
}

// Next returns the next (tree, interpreted value) pair, or ok=false
// once enumeration is exhausted or the max_count bound is reached. An
// interpretation error (a combinator with no usable Go signature)
// propagates to the caller rather than silently skipping the tree —
// per spec.md §7, interpretation errors are the one error kind that
// crosses Solve's boundary.
func (it *Iterator[C]) Next() (Result[C], bool, error) {
	t, ok := it.enum.Next()
	if !ok {
		return Result[C]{}, false, nil
	}
	if it.lookup == nil {
		return Result[C]{Tree: t}, true, nil
	}
	value, err := tree.Interpret(t, it.lookup)
	if err != nil {
		return Result[C]{}, false, fmt.Errorf("cosy: interpreting solution for run %s: %w", it.runID, err)
	}
	return Result[C]{Tree: t, Value: value}, true, nil
}

// SolutionSpace exposes the pruned solution space backing this
// iterator, for ContainsTree checks or Show() debug output.
func (it *Iterator[C]) SolutionSpace() *solutionspace.SolutionSpace[C] {
	return it.space
}

// Show renders the pruned solution space as a debug listing, prefixed
// with this Solve call's run ID so overlapping solves in a log stream
// can be told apart — suppressed under config.IsTestMode so golden
// tests stay stable across runs.
func (it *Iterator[C]) Show() string {
	if config.IsTestMode {
		return it.space.Show()
	}
	return fmt.Sprintf("# run %s\n%s", it.runID, it.space.Show())
}

// Solve constructs the solution space for query (synthesize), prunes
// it to productive non-terminals (prune), and returns a lazy iterator
// over its derivable, interpreted trees (enumerate -> interpret), each
// tagged with a fresh run ID for debug correlation. maxCount <= 0 uses
// DefaultMaxCount; it never means "unbounded" here, matching the
// façade's documented default.
func (c *CoSy[C]) Solve(query types.Type, maxCount int) (*Iterator[C], error) {
	if query == nil {
		return nil, fmt.Errorf("cosy: query type must not be nil")
	}
	if query.IsOmega() {
		return nil, ErrOmegaQuery
	}
	if maxCount <= 0 {
		maxCount = DefaultMaxCount
	}

	space := c.syn.ConstructSolutionSpace(query).Prune()
	enum := solutionspace.EnumerateTrees(space, query, maxCount, 0)
	return &Iterator[C]{
		runID:  uuid.New().String(),
		space:  space,
		enum:   enum,
		lookup: c.lookup,
	}, nil
}

// ContainsTree decides whether t is derivable from query's pruned
// solution space, per spec.md §4.7 — a convenience over constructing
// the solution space and calling solutionspace.ContainsTree directly.
func (c *CoSy[C]) ContainsTree(query types.Type, t *tree.Tree[C]) bool {
	space := c.syn.ConstructSolutionSpace(query).Prune()
	return solutionspace.ContainsTree(space, query, t)
}
