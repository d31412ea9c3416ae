package combinatorics_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cosy-synth/cosy/internal/combinatorics"
)

func TestPartition(t *testing.T) {
	falses, trues := combinatorics.Partition([]int{1, 2, 3, 4, 5}, func(x int) bool { return x%2 == 0 })
	assert.Equal(t, []int{1, 3, 5}, falses)
	assert.Equal(t, []int{2, 4}, trues)
}

func TestPartitionEmpty(t *testing.T) {
	falses, trues := combinatorics.Partition([]int(nil), func(int) bool { return true })
	assert.Empty(t, falses)
	assert.Empty(t, trues)
}

func TestMaximalElementsStrictDomination(t *testing.T) {
	xs := []int{1, 3, 2, 3, 5}
	le := func(a, b int) bool { return a <= b }
	result := combinatorics.MaximalElements(xs, le)
	assert.Equal(t, []int{5}, result)
}

func TestMaximalElementsIncomparable(t *testing.T) {
	type pair struct{ a, b int }
	xs := []pair{{1, 0}, {0, 1}, {0, 0}}
	le := func(x, y pair) bool { return x.a <= y.a && x.b <= y.b }
	result := combinatorics.MaximalElements(xs, le)
	assert.Len(t, result, 2)
	assert.Contains(t, result, pair{1, 0})
	assert.Contains(t, result, pair{0, 1})
}

func TestMinimalCoversEmptyWhenUncoverable(t *testing.T) {
	sets := [][]int{{1, 2}, {2, 3}}
	contains := func(e, i int) bool {
		for _, v := range sets[i] {
			if v == e {
				return true
			}
		}
		return false
	}
	result := combinatorics.MinimalCovers(len(sets), []int{1, 2, 4}, contains)
	assert.Nil(t, result)
}

func TestMinimalCoversForcesSingletons(t *testing.T) {
	sets := [][]int{{1}, {1, 2}, {2, 3}}
	contains := func(e, i int) bool {
		for _, v := range sets[i] {
			if v == e {
				return true
			}
		}
		return false
	}
	result := combinatorics.MinimalCovers(len(sets), []int{1, 2, 3}, contains)
	// set 0 is forced (only provider of element 1); set 2 is forced (only
	// provider of element 3); together they already cover element 2.
	assert.Len(t, result, 1)
	sort.Ints(result[0])
	assert.Equal(t, []int{0, 2}, result[0])
}

func TestMinimalCoversAllAlternatives(t *testing.T) {
	sets := [][]int{{1, 2}, {2, 3}, {1, 3}}
	contains := func(e, i int) bool {
		for _, v := range sets[i] {
			if v == e {
				return true
			}
		}
		return false
	}
	result := combinatorics.MinimalCovers(len(sets), []int{1, 2, 3}, contains)
	assert.Len(t, result, 3)
	for _, cover := range result {
		assert.Len(t, cover, 2)
	}
}
