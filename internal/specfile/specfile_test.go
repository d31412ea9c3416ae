package specfile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosy-synth/cosy/internal/specfile"
	"github.com/cosy-synth/cosy/internal/types"
)

const fibonacciYAML = `
parameter_space:
  int: {range: [0, 20]}
components:
  fib_zero:
    suffix: {and: [{ctor: fib}, {ctor: at, arg: {literal: {value: 0, group: int}}}]}
  fib_one:
    suffix: {and: [{ctor: fib}, {ctor: at, arg: {literal: {value: 1, group: int}}}]}
  fib_next:
    params:
      - {name: z, group: int}
      - {name: y, group: int, candidates: "z - 1"}
      - {name: x, group: int, candidates: "z - 2"}
    param_constraints:
      - "x >= 0"
    suffix:
      arrow:
        from: {and: [{ctor: fib}, {ctor: at, arg: {var: y}}]}
        to:
          arrow:
            from: {and: [{ctor: fib}, {ctor: at, arg: {var: x}}]}
            to: {and: [{ctor: fib}, {ctor: at, arg: {var: z}}]}
`

func TestParseFibonacciParameterSpace(t *testing.T) {
	f, err := specfile.Parse([]byte(fibonacciYAML), "fibonacci.yaml")
	require.NoError(t, err)

	values, ok := f.ParameterSpace.Iterate("int")
	require.True(t, ok)
	assert.Len(t, values, 20)
	assert.Equal(t, 0, values[0])
	assert.Equal(t, 19, values[19])
}

func TestParseFibonacciComponents(t *testing.T) {
	f, err := specfile.Parse([]byte(fibonacciYAML), "fibonacci.yaml")
	require.NoError(t, err)
	require.Contains(t, f.Components, "fib_zero")
	require.Contains(t, f.Components, "fib_next")

	zero := f.Components["fib_zero"].(types.Type)
	assert.Equal(t, types.Intersect([]types.Type{
		types.Nullary("fib"),
		types.NewConstructor("at", types.NewLiteral(0, "int")),
	}), zero)
}

func TestParseFibNextCandidatesAndConstraint(t *testing.T) {
	f, err := specfile.Parse([]byte(fibonacciYAML), "fibonacci.yaml")
	require.NoError(t, err)

	abstraction := f.Components["fib_next"].(types.Abstraction)
	assert.Equal(t, "z", abstraction.Parameter.ParamName())

	yLayer := abstraction.Body.(types.Abstraction)
	yParam := yLayer.Parameter.(types.LiteralParameter)
	assert.Equal(t, []any{4}, yParam.Candidates(types.Subst{"z": 5}))

	xLayer := yLayer.Body.(types.Abstraction)
	constraint := xLayer.Body.(types.Implication)
	assert.True(t, constraint.Predicate.OnlyLiterals)
	assert.True(t, constraint.Predicate.Constraint(types.Subst{"x": 0}))
	assert.False(t, constraint.Predicate.Constraint(types.Subst{"x": -1}))
}

func TestMembershipOnlyGroup(t *testing.T) {
	yamlSrc := `
parameter_space:
  regular_expression: {membership_only: true}
components:
  empty:
    suffix: {and: [{ctor: str}]}
`
	f, err := specfile.Parse([]byte(yamlSrc), "strings.yaml")
	require.NoError(t, err)
	_, ok := f.ParameterSpace.Iterate("regular_expression")
	assert.False(t, ok)
	assert.True(t, f.ParameterSpace.Contains("regular_expression", "anything"))
}

func TestTaxonomyPassesThrough(t *testing.T) {
	yamlSrc := `
taxonomy:
  mammal: [animal]
components:
  dog:
    suffix: {ctor: mammal}
`
	f, err := specfile.Parse([]byte(yamlSrc), "taxonomy.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"animal"}, f.Taxonomy["mammal"])
}

func TestBadExpressionReturnsError(t *testing.T) {
	yamlSrc := `
parameter_space:
  int: {range: [0, 5]}
components:
  bad:
    params:
      - {name: x, group: int, candidates: "x +"}
    suffix: {ctor: a}
`
	_, err := specfile.Parse([]byte(yamlSrc), "bad.yaml")
	assert.Error(t, err)
}
