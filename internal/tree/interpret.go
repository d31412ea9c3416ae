package tree

import (
	"fmt"
	"reflect"
)

// NoSignatureError reports a combinator value that Interpret could not
// invoke — either lookup found nothing for its identity, or the value
// it found is not a Go function.
type NoSignatureError struct {
	Combinator any
}

func (e *NoSignatureError) Error() string {
	return fmt.Sprintf("tree: combinator %v exposes no invocable signature", e.Combinator)
}

// Lookup resolves a component identity to the Go callable it stands
// for. The synthesizer and solution space only ever handle the
// comparable identity; Interpret is the one place the real function
// value is needed.
type Lookup[C comparable] func(C) (any, bool)

// Interpret applies a tree's combinators to its interpreted children,
// in rule-declared order (named arguments first, then anonymous ones,
// as the children are stored). A constant leaf
// interprets to its literal value directly.
func Interpret[C comparable](t *Tree[C], lookup Lookup[C]) (any, error) {
	if t.IsLiteral {
		return t.Literal, nil
	}

	fn, ok := lookup(t.Combinator)
	if !ok {
		return nil, &NoSignatureError{Combinator: t.Combinator}
	}

	args := make([]any, len(t.Children))
	for i, child := range t.Children {
		value, err := Interpret(child, lookup)
		if err != nil {
			return nil, err
		}
		args[i] = value
	}
	return applyReflective(t.Combinator, fn, args)
}

func applyReflective(combinator any, fn any, args []any) (any, error) {
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func {
		return nil, &NoSignatureError{Combinator: combinator}
	}
	return callArityAware(fv, args)
}

// callArityAware invokes fv with as many args as its signature takes,
// and — when it returns a single further function value and there are
// leftover args — recurses to apply the rest. This is the Go analogue
// of the source's inspect.signature-driven partial application: a
// component can be a curried closure, not just a single flat function.
func callArityAware(fv reflect.Value, args []any) (any, error) {
	ft := fv.Type()
	arity := ft.NumIn()

	var in []reflect.Value
	var remaining []any
	if !ft.IsVariadic() && len(args) > arity {
		in = make([]reflect.Value, arity)
		for i := 0; i < arity; i++ {
			in[i] = reflect.ValueOf(args[i])
		}
		remaining = args[arity:]
	} else {
		in = make([]reflect.Value, len(args))
		for i, a := range args {
			in[i] = reflect.ValueOf(a)
		}
	}

	out := fv.Call(in)

	if len(remaining) > 0 {
		if len(out) != 1 {
			return nil, fmt.Errorf("tree: combinator returned %d values, expected exactly one further callable to apply %d remaining argument(s)", len(out), len(remaining))
		}
		next := out[0]
		if next.Kind() != reflect.Func {
			return nil, fmt.Errorf("tree: combinator's result is not callable, but %d argument(s) remain", len(remaining))
		}
		return callArityAware(next, remaining)
	}

	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		return out[0].Interface(), nil
	default:
		values := make([]any, len(out))
		for i, o := range out {
			values[i] = o.Interface()
		}
		return values, nil
	}
}
