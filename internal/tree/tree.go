// Package tree implements the derivable-term representation shared by
// the solution space (enumeration, containment) and the façade
// (interpretation): a labeled tree whose internal nodes are component
// applications and whose constant-argument leaves carry a raw literal
// value instead of a further application.
package tree

import (
	"fmt"
	"strings"
)

// Tree is a derivable term over component identities C. Exactly one of
// Combinator or Literal is meaningful, distinguished by IsLiteral — a
// literal leaf is what a ConstantArgument position materializes as, a
// combinator node is what every other position materializes as.
type Tree[C comparable] struct {
	IsLiteral  bool
	Combinator C
	Literal    any
	Children   []*Tree[C]
}

// Leaf builds a childless combinator node (a nullary component).
func Leaf[C comparable](component C) *Tree[C] {
	return &Tree[C]{Combinator: component}
}

// ConstantLeaf builds a childless literal node from a ConstantArgument
// value.
func ConstantLeaf[C comparable](value any) *Tree[C] {
	return &Tree[C]{IsLiteral: true, Literal: value}
}

// New builds a combinator node applied to the given children, in
// source order (named arguments first, then anonymous ones).
func New[C comparable](component C, children ...*Tree[C]) *Tree[C] {
	return &Tree[C]{Combinator: component, Children: children}
}

// Root returns the node's label: the component identity, or the raw
// literal value for a constant leaf.
func (t *Tree[C]) Root() any {
	if t.IsLiteral {
		return t.Literal
	}
	return t.Combinator
}

// Size is the tree's node count, matching Type.Size's leaves-count-as-1
// convention.
func (t *Tree[C]) Size() int {
	size := 1
	for _, c := range t.Children {
		size += c.Size()
	}
	return size
}

func (t *Tree[C]) String() string {
	if len(t.Children) == 0 {
		return fmt.Sprintf("%v", t.Root())
	}
	parts := make([]string, len(t.Children))
	for i, c := range t.Children {
		parts[i] = c.String()
	}
	return fmt.Sprintf("%v(%s)", t.Root(), strings.Join(parts, ", "))
}
