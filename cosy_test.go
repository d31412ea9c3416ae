package cosy_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosy-synth/cosy"
	"github.com/cosy-synth/cosy/internal/dsl"
	"github.com/cosy-synth/cosy/internal/synthesizer"
	"github.com/cosy-synth/cosy/internal/tree"
	"github.com/cosy-synth/cosy/internal/types"
)

func intRange(n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// fib builds the spec.md §8 Fibonacci seed scenario: fib_zero, fib_one,
// and fib_next, against int = 0..19.
func fib(t *testing.T) (*cosy.CoSy[string], func()) {
	t.Helper()
	space := synthesizer.NewParameterSpace()
	space.AddEnumerable("int", intRange(20))

	fibAt := func(n int) types.Type {
		return types.Intersect([]types.Type{
			types.Nullary("fib"),
			types.NewConstructor("at", types.NewLiteral(n, "int")),
		})
	}
	fibAtVar := func(name string) types.Type {
		return types.Intersect([]types.Type{
			types.Nullary("fib"),
			types.NewConstructor("at", types.NewVar(name)),
		})
	}

	components := []cosy.Component[string]{
		{Name: "fib_zero", Identity: "fib_zero", Spec: fibAt(0)},
		{Name: "fib_one", Identity: "fib_one", Spec: fibAt(1)},
		{
			Name:     "fib_next",
			Identity: "fib_next",
			Spec: types.Abstraction{
				Parameter: types.LiteralParameter{Name: "z", Group: "int"},
				Body: types.Abstraction{
					Parameter: types.LiteralParameter{Name: "y", Group: "int", Candidates: func(s types.Subst) []any {
						return []any{s["z"].(int) - 1}
					}},
					Body: types.Abstraction{
						Parameter: types.LiteralParameter{Name: "x", Group: "int", Candidates: func(s types.Subst) []any {
							return []any{s["z"].(int) - 2}
						}},
						Body: types.NewArrow(fibAtVar("y"), types.NewArrow(fibAtVar("x"), fibAtVar("z"))),
					},
				},
			},
		},
	}

	lookup := func(id string) (any, bool) {
		switch id {
		case "fib_zero":
			return func() int { return 0 }, true
		case "fib_one":
			return func() int { return 1 }, true
		case "fib_next":
			// Rule arguments are assembled named-parameters-first (z, y, x),
			// then the two anonymous arrow-argument positions (fib(y), fib(x));
			// Interpret applies all five in that order (spec.md §8, property 10).
			return func(z, y, x, fy, fx int) int { return fy + fx }, true
		}
		return nil, false
	}

	c, err := cosy.New(components, space, nil, lookup)
	require.NoError(t, err)
	return c, func() {}
}

func TestFibonacciAtTenYieldsExactlyOneTreeValueFiftyFive(t *testing.T) {
	c, _ := fib(t)
	target := types.Intersect([]types.Type{
		types.Nullary("fib"),
		types.NewConstructor("at", types.NewLiteral(10, "int")),
	})

	it, err := c.Solve(target, 10)
	require.NoError(t, err)

	result, ok, err := it.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 55, result.Value)

	_, ok, err = it.Next()
	require.NoError(t, err)
	assert.False(t, ok, "fib & at(10) must have exactly one solution")
}

func TestFibonacciEnumeratesTwentyTreesOnePerIndex(t *testing.T) {
	c, _ := fib(t)
	target := types.Nullary("fib")

	it, err := c.Solve(target, 1000)
	require.NoError(t, err)

	var values []int
	for {
		result, ok, err := it.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		values = append(values, result.Value.(int))
	}
	assert.Len(t, values, 20)
}

// TestRecursiveUnproductiveYieldsNoTrees is spec.md §8's "Recursive
// unproductive" seed scenario: ab : a -> b, ba : b -> a has no
// non-recursive base case, so pruning leaves nothing derivable.
func TestRecursiveUnproductiveYieldsNoTrees(t *testing.T) {
	a := types.Nullary("a")
	b := types.Nullary("b")
	components := []cosy.Component[string]{
		{Name: "ab", Identity: "ab", Spec: types.NewArrow(a, b)},
		{Name: "ba", Identity: "ba", Spec: types.NewArrow(b, a)},
	}
	space := synthesizer.NewParameterSpace()
	c, err := cosy.New(components, space, nil, nil)
	require.NoError(t, err)

	it, err := c.Solve(a, 10)
	require.NoError(t, err)
	_, ok, err := it.Next()
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestContainsTreeRegressionBalancedPair is spec.md §8's
// "Contains-tree regression" seed scenario.
func TestContainsTreeRegressionBalancedPair(t *testing.T) {
	litGroup := synthesizer.NewParameterSpace()
	litGroup.AddEnumerable("depth", intRange(4))

	leaf := types.Intersect([]types.Type{
		types.Nullary("lit"),
		types.NewConstructor("at", types.NewLiteral(0, "depth")),
	})
	branchAt := func(name string) types.Type {
		return types.Intersect([]types.Type{
			types.Nullary("lit"),
			types.NewConstructor("at", types.NewVar(name)),
		})
	}

	// branch : Pi d, d-1. Var(d-1) -> Var(d-1) -> constraint(left=right) -> Var(d),
	// ported directly as a LiteralParameter pair (d, dm1 = d-1), two
	// TermParameter arguments (left, right) ranging over Var(dm1), and a
	// deferred predicate requiring the two subtrees to match structurally.
	components := []cosy.Component[string]{
		{Name: "leaf", Identity: "leaf", Spec: leaf},
		{
			Name:     "branch",
			Identity: "branch",
			Spec: types.Abstraction{
				Parameter: types.LiteralParameter{Name: "d", Group: "depth"},
				Body: types.Abstraction{
					Parameter: types.LiteralParameter{Name: "dm1", Group: "depth", Candidates: func(s types.Subst) []any {
						return []any{s["d"].(int) - 1}
					}},
					Body: types.Implication{
						Predicate: types.Predicate{OnlyLiterals: true, Constraint: func(s types.Subst) bool {
							return s["dm1"].(int) >= 0
						}},
						Body: types.Abstraction{
							Parameter: types.TermParameter{Name: "left", Group: branchAt("dm1")},
							Body: types.Abstraction{
								Parameter: types.TermParameter{Name: "right", Group: branchAt("dm1")},
								Body: types.Implication{
									Predicate: types.Predicate{OnlyLiterals: false, Constraint: func(s types.Subst) bool {
										left := s["left"].(*tree.Tree[string])
										right := s["right"].(*tree.Tree[string])
										return left.String() == right.String()
									}},
									Body: branchAt("d"),
								},
							},
						},
					},
				},
			},
		},
	}

	c, err := cosy.New(components, litGroup, nil, nil)
	require.NoError(t, err)

	target := types.Intersect([]types.Type{
		types.Nullary("lit"),
		types.NewConstructor("at", types.NewLiteral(2, "depth")),
	})

	// branch's rule args are assembled named-parameters-first (d, dm1 as
	// constant leaves), then the two TermParameter subtrees (left, right)
	// — every child tree must list all four in that order.
	depth1Leaf := tree.New[string]("leaf")
	depth2 := tree.New[string]("branch", tree.ConstantLeaf[string](1), tree.ConstantLeaf[string](0), depth1Leaf, depth1Leaf)
	balanced := tree.New[string]("branch", tree.ConstantLeaf[string](2), tree.ConstantLeaf[string](1), depth2, depth2)
	assert.True(t, c.ContainsTree(target, balanced))

	mismatchedSubtrees := tree.New[string]("branch", tree.ConstantLeaf[string](2), tree.ConstantLeaf[string](1), depth2, depth1Leaf)
	assert.False(t, c.ContainsTree(target, mismatchedSubtrees), "a depth-1 subtree where a depth-1 branch is required must not match a bare leaf")

	omittedSubtree := tree.New[string]("branch", tree.ConstantLeaf[string](2), tree.ConstantLeaf[string](1), depth2)
	assert.False(t, c.ContainsTree(target, omittedSubtree), "omitting a subtree must fail containment")
}

func TestSolveRejectsOmegaQuery(t *testing.T) {
	c, err := cosy.New[string](nil, synthesizer.NewParameterSpace(), nil, nil)
	require.NoError(t, err)

	_, err = c.Solve(types.Omega{}, 10)
	assert.ErrorIs(t, err, cosy.ErrOmegaQuery)
}

// binaryString reconstructs the string empty/zero/one/fin build, by
// walking the tree the same way their original bodies would: empty()
// the empty string, zero/one appending a digit to their "s" child,
// fin passing its "s" child through unchanged.
func binaryString(tr *tree.Tree[string]) string {
	switch tr.Combinator {
	case "zero":
		return binaryString(tr.Children[0]) + "0"
	case "one":
		return binaryString(tr.Children[0]) + "1"
	case "fin":
		return binaryString(tr.Children[1])
	default:
		return ""
	}
}

// TestBinaryStringConstraintYieldsOnlyRegexMatches is spec.md §8's
// "Binary-string constraint" seed scenario, ported from
// _examples/original_source/examples/example_constraints.py: empty,
// zero, and one build binary strings, and fin admits one only when it
// matches a regular expression carried as a membership-only literal
// group (no enumeration, only the query's own literal forces it).
func TestBinaryStringConstraintYieldsOnlyRegexMatches(t *testing.T) {
	space := synthesizer.NewParameterSpace()
	space.AddMembershipOnly("regular_expression", func(v any) bool {
		_, ok := v.(string)
		return ok
	})

	str := types.Nullary("str")
	components := []cosy.Component[string]{
		{Name: "empty", Identity: "empty", Spec: str},
		{Name: "zero", Identity: "zero", Spec: dsl.New().Argument("s", str).Suffix(str)},
		{Name: "one", Identity: "one", Spec: dsl.New().Argument("s", str).Suffix(str)},
		{
			Name:     "fin",
			Identity: "fin",
			Spec: dsl.New().
				Parameter("r", "regular_expression", nil).
				Argument("s", str).
				Constraint(func(vs types.Subst) bool {
					pattern := vs["r"].(string)
					s := binaryString(vs["s"].(*tree.Tree[string]))
					matched, err := regexp.MatchString("^(?:"+pattern+")$", s)
					return err == nil && matched
				}).
				Suffix(types.NewConstructor("matches", types.NewVar("r"))),
		},
	}

	c, err := cosy.New(components, space, nil, nil)
	require.NoError(t, err)

	target := types.NewConstructor("matches", types.NewLiteral("01+0", "regular_expression"))
	it, err := c.Solve(target, 3)
	require.NoError(t, err)

	var found int
	for {
		result, ok, err := it.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		s := binaryString(result.Tree)
		matched, matchErr := regexp.MatchString("^(?:01+0)$", s)
		require.NoError(t, matchErr)
		assert.True(t, matched, "enumerated solution %q must match 01+0", s)
		found++
	}
	assert.Greater(t, found, 0, "at least one string must satisfy 01+0")
}

type cellPos struct{ X, Y int }

// visitedPositions walks a maze path tree back to "start", collecting
// every cell it passes through, mirroring
// test_benchmark_maze_loopfree.py's getpath.
func visitedPositions(p *tree.Tree[string]) map[cellPos]bool {
	visited := map[cellPos]bool{}
	for p.Combinator != "start" {
		visited[p.Children[0].Literal.(cellPos)] = true
		p = p.Children[2]
	}
	visited[cellPos{0, 0}] = true
	return visited
}

// TestLabyrinthLoopFreeFindsPathWithoutRevisitingCells is spec.md §8's
// "Labyrinth loop-free" seed scenario, ported (at a much smaller grid
// than the original benchmark, since this asserts correctness rather
// than measuring throughput) from
// _examples/original_source/benchmarks/test_benchmark_maze_loopfree.py:
// up/down/left/right move between adjacent free cells, each carrying a
// deferred constraint rejecting a move back onto any cell already on
// the path.
func TestLabyrinthLoopFreeFindsPathWithoutRevisitingCells(t *testing.T) {
	const size = 4
	blocked := map[cellPos]bool{{X: 1, Y: 1}: true}
	isFree := func(c cellPos) bool {
		return c.X >= 0 && c.X < size && c.Y >= 0 && c.Y < size && !blocked[c]
	}

	space := synthesizer.NewParameterSpace()
	var cells []any
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			if c := (cellPos{X: x, Y: y}); isFree(c) {
				cells = append(cells, c)
			}
		}
	}
	space.AddEnumerable("cell", cells)

	posAt := func(c cellPos) types.Type {
		return types.NewConstructor("pos", types.NewLiteral(c, "cell"))
	}
	posVar := func(name string) types.Type {
		return types.NewConstructor("pos", types.NewVar(name))
	}
	neighbor := func(dx, dy int) func(types.Subst) []any {
		return func(s types.Subst) []any {
			b := s["b"].(cellPos)
			return []any{cellPos{X: b.X + dx, Y: b.Y + dy}}
		}
	}
	loopFree := func(vs types.Subst) bool {
		b := vs["b"].(cellPos)
		return !visitedPositions(vs["pos"].(*tree.Tree[string]))[b]
	}
	direction := func(name string, dx, dy int) cosy.Component[string] {
		return cosy.Component[string]{
			Name:     name,
			Identity: name,
			Spec: dsl.New().
				Parameter("b", "cell", nil).
				Parameter("a", "cell", neighbor(dx, dy)).
				Argument("pos", posVar("a")).
				Constraint(loopFree).
				Suffix(posVar("b")),
		}
	}

	components := []cosy.Component[string]{
		{Name: "start", Identity: "start", Spec: posAt(cellPos{0, 0})},
		direction("up", 0, 1),
		direction("down", 0, -1),
		direction("left", -1, 0),
		direction("right", 1, 0),
	}

	c, err := cosy.New(components, space, nil, nil)
	require.NoError(t, err)

	target := posAt(cellPos{size - 1, size - 1})
	it, err := c.Solve(target, 200)
	require.NoError(t, err)

	var solutions int
	for {
		result, ok, err := it.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		solutions++
		visited := visitedPositions(result.Tree)
		for p := range visited {
			assert.True(t, isFree(p), "every visited cell %v must be free", p)
		}
		seen := map[cellPos]bool{}
		walker := result.Tree
		for walker.Combinator != "start" {
			p := walker.Children[0].Literal.(cellPos)
			require.False(t, seen[p], "path revisits cell %v", p)
			seen[p] = true
			walker = walker.Children[2]
		}
	}
	assert.Greater(t, solutions, 0, "at least one loop-free path to the far corner must exist")
}

// TestNatParameterSpaceContainsTreesBuiltFromLiteralTypedTerms is
// adapted from spec.md §8's "Infinite parameter space" seed scenario,
// ported from
// _examples/original_source/tests/regressions/test_infinite_enumeration.py:
// c abstracts over two "nat" literals whose term arguments (t1, t2)
// range over exactly the type each literal names, so d/e are usable
// wherever a term of that concrete literal type is needed, their own
// literal being forced by necessary substitution. nat here is a finite
// enumerable group of 0..5, and c's x and y are enumerated over all of
// it; a membership-only nat group would leave c without rules, since x
// and y have no candidates and nothing forces them.
func TestNatParameterSpaceContainsTreesBuiltFromLiteralTypedTerms(t *testing.T) {
	space := synthesizer.NewParameterSpace()
	space.AddEnumerable("nat", intRange(6))

	a := types.Nullary("a")
	components := []cosy.Component[string]{
		{
			Name:     "c",
			Identity: "c",
			Spec: types.Abstraction{
				Parameter: types.LiteralParameter{Name: "x", Group: "nat"},
				Body: types.Abstraction{
					Parameter: types.LiteralParameter{Name: "y", Group: "nat"},
					Body: types.Abstraction{
						Parameter: types.TermParameter{Name: "t1", Group: types.NewVar("x")},
						Body: types.Abstraction{
							Parameter: types.TermParameter{Name: "t2", Group: types.NewVar("y")},
							Body:      types.NewArrow(a, a),
						},
					},
				},
			},
		},
		{
			Name:     "d",
			Identity: "d",
			Spec: types.Abstraction{
				Parameter: types.LiteralParameter{Name: "x", Group: "nat"},
				Body:      types.NewVar("x"),
			},
		},
		{
			Name:     "e",
			Identity: "e",
			Spec: types.Abstraction{
				Parameter: types.LiteralParameter{Name: "y", Group: "nat"},
				Body:      types.NewVar("y"),
			},
		},
		{Name: "f", Identity: "f", Spec: a},
	}

	c, err := cosy.New(components, space, nil, nil)
	require.NoError(t, err)

	tree1 := tree.New[string]("f")
	tree2 := tree.New[string]("c",
		tree.ConstantLeaf[string](2),
		tree.ConstantLeaf[string](1),
		tree.New[string]("d", tree.ConstantLeaf[string](2)),
		tree.New[string]("e", tree.ConstantLeaf[string](1)),
		tree.New[string]("f"),
	)
	inner := tree.New[string]("c",
		tree.ConstantLeaf[string](1),
		tree.ConstantLeaf[string](0),
		tree.New[string]("e", tree.ConstantLeaf[string](1)),
		tree.New[string]("e", tree.ConstantLeaf[string](0)),
		tree.New[string]("f"),
	)
	tree3 := tree.New[string]("c",
		tree.ConstantLeaf[string](0),
		tree.ConstantLeaf[string](1),
		tree.New[string]("d", tree.ConstantLeaf[string](0)),
		tree.New[string]("e", tree.ConstantLeaf[string](1)),
		inner,
	)

	for _, tr := range []*tree.Tree[string]{tree1, tree2, tree3} {
		assert.True(t, c.ContainsTree(a, tr), "tree %s must be derivable from the nat group", tr.String())
	}
}
