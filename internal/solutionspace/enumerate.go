package solutionspace

import (
	"container/heap"

	"github.com/cosy-synth/cosy/internal/tree"
	"github.com/cosy-synth/cosy/internal/types"
)

// ntState is one non-terminal's bucket-scheduling state: a min-heap of
// candidates discovered but not yet materialized, and the materialized
// set itself (kept as a slice in discovery order — new-tree propagation
// only ever appends).
type ntState[C comparable] struct {
	pending          treeHeap[C]
	materialized     []*tree.Tree[C]
	materializedKeys map[string]struct{}
	pendingKeys      map[string]struct{}
}

func newNTState[C comparable]() *ntState[C] {
	return &ntState[C]{
		materializedKeys: make(map[string]struct{}),
		pendingKeys:      make(map[string]struct{}),
	}
}

type invEntry struct {
	parent  types.Type
	ruleIdx int
}

// Enumerator is a pull-based, bounded-work-per-Next iterator over the
// trees derivable from a start non-terminal. It implements the bucket
// scheduler from the source: per non-terminal priority queues keyed by
// tree size, advanced in rounds of increasing bucket size, propagating
// each newly materialized tree to every rule that can use it via an
// inverse grammar — so a tree is only ever combined with genuinely new
// material, not recomputed from scratch each round.
type Enumerator[C comparable] struct {
	space         *SolutionSpace[C]
	start         types.Type
	maxCount      int
	maxBucketSize int

	inverse    map[types.Type][]invEntry
	states     map[types.Type]*ntState[C]
	out        []*tree.Tree[C]
	outKeys    map[string]struct{}
	emitted    int
	bucketSize int
}

// EnumerateTrees builds an Enumerator over space's current rules.
// maxCount <= 0 means unbounded; maxBucketSize <= 0 means unbounded.
func EnumerateTrees[C comparable](space *SolutionSpace[C], start types.Type, maxCount, maxBucketSize int) *Enumerator[C] {
	e := &Enumerator[C]{
		space:         space,
		start:         start,
		maxCount:      maxCount,
		maxBucketSize: maxBucketSize,
		inverse:       make(map[types.Type][]invEntry),
		states:        make(map[types.Type]*ntState[C]),
		outKeys:       make(map[string]struct{}),
	}
	e.bootstrap()
	return e
}

func (e *Enumerator[C]) stateFor(nt types.Type) *ntState[C] {
	st, ok := e.states[nt]
	if !ok {
		st = newNTState[C]()
		e.states[nt] = st
	}
	return st
}

// bootstrap materializes every rule whose body is free of non-terminal
// arguments, then wires up the inverse grammar for every rule in the
// space so later propagation can find its dependents.
func (e *Enumerator[C]) bootstrap() {
	for _, nt := range e.space.NonTerminals() {
		for ri, rule := range e.space.Get(nt) {
			for _, a := range rule.Args {
				if !a.Constant {
					e.inverse[a.Origin] = append(e.inverse[a.Origin], invEntry{parent: nt, ruleIdx: ri})
				}
			}
			if rule.Arity() == 0 {
				e.tryEmitZeroArity(nt, rule)
			}
		}
	}
}

func (e *Enumerator[C]) tryEmitZeroArity(nt types.Type, rule RHSRule[C]) {
	children := make([]*tree.Tree[C], len(rule.Args))
	bindings := make(types.Subst, len(rule.Args))
	for i, a := range rule.Args {
		children[i] = tree.ConstantLeaf[C](a.Value)
		if a.Name != "" {
			bindings[a.Name] = a.Value
		}
	}
	for _, p := range rule.Predicates {
		if !p.Constraint(bindings) {
			return
		}
	}
	result := tree.New(rule.Terminal, children...)
	e.admit(nt, result)
}

// admit records a newly produced tree at nt: if nt is start, it goes
// straight to the output queue (deduplicated); in every case it is also
// queued pending materialization in a later round, so rules that take
// nt as an argument (start included) can build on it.
func (e *Enumerator[C]) admit(nt types.Type, t *tree.Tree[C]) {
	key := t.String()
	if nt == e.start {
		if _, seen := e.outKeys[key]; !seen {
			e.outKeys[key] = struct{}{}
			e.out = append(e.out, t)
		}
	}
	st := e.stateFor(nt)
	if _, seen := st.materializedKeys[key]; seen {
		return
	}
	if _, seen := st.pendingKeys[key]; seen {
		return
	}
	st.pendingKeys[key] = struct{}{}
	heap.Push(&st.pending, heapItem[C]{tree: t, size: t.Size()})
}

// Next returns the next derivable tree, or (nil, false) when the
// enumeration is exhausted or maxCount has been reached.
func (e *Enumerator[C]) Next() (*tree.Tree[C], bool) {
	if e.maxCount > 0 && e.emitted >= e.maxCount {
		return nil, false
	}
	for len(e.out) == 0 {
		if !e.advanceRound() {
			return nil, false
		}
	}
	t := e.out[0]
	e.out = e.out[1:]
	e.emitted++
	return t, true
}

// advanceRound drains every non-terminal's pending heap up to the next
// bucket-size threshold, propagating each newly materialized tree to
// its dependents. Returns false when no non-terminal had anything
// pending at all (global fixpoint reached).
func (e *Enumerator[C]) advanceRound() bool {
	e.bucketSize++
	if e.maxBucketSize > 0 && e.bucketSize > e.maxBucketSize {
		return false
	}
	anyPending := false
	for _, nt := range e.space.NonTerminals() {
		st := e.states[nt]
		if st == nil || st.pending.Len() == 0 {
			continue
		}
		anyPending = true
		for st.pending.Len() > 0 && len(st.materialized) < e.bucketSize {
			item := heap.Pop(&st.pending).(heapItem[C])
			st.materializedKeys[item.tree.String()] = struct{}{}
			st.materialized = append(st.materialized, item.tree)
			e.propagate(nt, item.tree)
		}
	}
	return anyPending
}

// propagate generates every new tree reachable by combining a just-
// materialized tree at nt with the currently materialized trees at
// every other non-terminal argument position of rules depending on nt.
func (e *Enumerator[C]) propagate(nt types.Type, newTree *tree.Tree[C]) {
	for _, dep := range e.inverse[nt] {
		rule := e.space.Get(dep.parent)[dep.ruleIdx]
		for slot, a := range rule.Args {
			if a.Constant || a.Origin != nt {
				continue
			}
			e.generateWithPin(dep.parent, rule, slot, newTree)
		}
	}
}

// generateWithPin fixes rule's argument at slot to pinned, and takes the
// Cartesian product of every other non-terminal slot over its origin's
// currently materialized trees, emitting one candidate tree per combo.
func (e *Enumerator[C]) generateWithPin(parent types.Type, rule RHSRule[C], pinSlot int, pinned *tree.Tree[C]) {
	choices := make([][]*tree.Tree[C], len(rule.Args))
	for i, a := range rule.Args {
		switch {
		case a.Constant:
			choices[i] = []*tree.Tree[C]{tree.ConstantLeaf[C](a.Value)}
		case i == pinSlot:
			choices[i] = []*tree.Tree[C]{pinned}
		default:
			st := e.states[a.Origin]
			if st == nil || len(st.materialized) == 0 {
				return
			}
			choices[i] = st.materialized
		}
	}

	combo := make([]*tree.Tree[C], len(rule.Args))
	var build func(slot int)
	build = func(slot int) {
		if slot == len(rule.Args) {
			e.tryEmit(parent, rule, combo)
			return
		}
		for _, c := range choices[slot] {
			combo[slot] = c
			build(slot + 1)
		}
	}
	build(0)
}

func (e *Enumerator[C]) tryEmit(nt types.Type, rule RHSRule[C], children []*tree.Tree[C]) {
	bindings := make(types.Subst, len(rule.Args))
	for i, a := range rule.Args {
		if a.Name == "" {
			continue
		}
		if a.Constant {
			bindings[a.Name] = a.Value
		} else {
			bindings[a.Name] = children[i]
		}
	}
	for _, p := range rule.Predicates {
		if !p.Constraint(bindings) {
			return
		}
	}
	result := tree.New(rule.Terminal, append([]*tree.Tree[C]{}, children...)...)
	e.admit(nt, result)
}
