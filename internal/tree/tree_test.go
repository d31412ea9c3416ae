package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosy-synth/cosy/internal/tree"
)

func TestSizeCountsAllNodes(t *testing.T) {
	leaf := tree.ConstantLeaf[string](5)
	root := tree.New("add", leaf, leaf)
	assert.Equal(t, 3, root.Size())
}

func TestStringFormatsApplication(t *testing.T) {
	a := tree.ConstantLeaf[string](1)
	b := tree.ConstantLeaf[string](2)
	root := tree.New("add", a, b)
	assert.Equal(t, "add(1, 2)", root.String())
}

func TestInterpretAppliesFunctionToChildren(t *testing.T) {
	add := func(a, b int) int { return a + b }
	lookup := func(name string) (any, bool) {
		if name == "add" {
			return add, true
		}
		return nil, false
	}
	root := tree.New("add", tree.ConstantLeaf[string](2), tree.ConstantLeaf[string](3))
	result, err := tree.Interpret(root, tree.Lookup[string](lookup))
	require.NoError(t, err)
	assert.Equal(t, 5, result)
}

func TestInterpretNestedApplication(t *testing.T) {
	inc := func(a int) int { return a + 1 }
	double := func(a int) int { return a * 2 }
	lookup := func(name string) (any, bool) {
		switch name {
		case "inc":
			return inc, true
		case "double":
			return double, true
		}
		return nil, false
	}
	root := tree.New("double", tree.New("inc", tree.ConstantLeaf[string](4)))
	result, err := tree.Interpret(root, tree.Lookup[string](lookup))
	require.NoError(t, err)
	assert.Equal(t, 10, result)
}

func TestInterpretUnknownCombinatorErrors(t *testing.T) {
	lookup := func(string) (any, bool) { return nil, false }
	root := tree.Leaf[string]("mystery")
	_, err := tree.Interpret(root, tree.Lookup[string](lookup))
	require.Error(t, err)
	var sigErr *tree.NoSignatureError
	assert.ErrorAs(t, err, &sigErr)
}

func TestInterpretConstantLeafIsItsValue(t *testing.T) {
	leaf := tree.ConstantLeaf[string]("hello")
	result, err := tree.Interpret(leaf, tree.Lookup[string](func(string) (any, bool) { return nil, false }))
	require.NoError(t, err)
	assert.Equal(t, "hello", result)
}

func TestCurriedCombinatorAppliesRemainingArgs(t *testing.T) {
	adder := func(a int) func(int) int {
		return func(b int) int { return a + b }
	}
	lookup := func(name string) (any, bool) {
		if name == "adder" {
			return adder, true
		}
		return nil, false
	}
	root := tree.New("adder", tree.ConstantLeaf[string](3), tree.ConstantLeaf[string](4))
	result, err := tree.Interpret(root, tree.Lookup[string](lookup))
	require.NoError(t, err)
	assert.Equal(t, 7, result)
}
