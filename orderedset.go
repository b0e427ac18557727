package core

import (
	"treevec.dev/core/bst"
	"treevec.dev/core/stats"
)

// OrderedSet is a balanced binary search tree holding distinct values
// of V under cmp's ordering, backed by heap-allocated nodes. For the
// compact arena-backed binding, or for a custom tag augmentation
// beyond height balancing, use package bst directly.
type OrderedSet[V any] struct {
	tree *bst.HeapTree[V, bst.AVLTag[V], bst.CompareFunc[V]]
}

// NewOrderedSet returns an empty set ordered by cmp.
func NewOrderedSet[V any](cmp func(a, b V) int) *OrderedSet[V] {
	return &OrderedSet[V]{tree: bst.NewHeapTree[V, bst.AVLTag[V]](bst.CompareFunc[V](cmp))}
}

// Insert adds value if not already present, reporting whether it was
// added.
func (s *OrderedSet[V]) Insert(value V) bool {
	ok, err := s.tree.Insert(value)
	if err != nil {
		panic(err)
	}
	return ok
}

// Delete removes value if present, reporting whether it was removed.
func (s *OrderedSet[V]) Delete(value V) bool {
	ok, err := s.tree.Delete(value)
	if err != nil {
		panic(err)
	}
	return ok
}

// Contains reports whether value is present.
func (s *OrderedSet[V]) Contains(value V) bool {
	_, ok := s.tree.Find(value)
	return ok
}

// Len reports the number of values stored.
func (s *OrderedSet[V]) Len() int { return s.tree.Len() }

// Root returns the value at the tree's root and whether the set is
// non-empty.
func (s *OrderedSet[V]) Root() (V, bool) { return s.tree.Root() }

// SetCollector wires c into the underlying tree so insertions,
// deletions, rebalances and rotations bump its counters.
func (s *OrderedSet[V]) SetCollector(c *stats.Collector) { s.tree.SetCollector(c) }

// Values returns every value in ascending order.
func (s *OrderedSet[V]) Values() []V { return s.tree.DumpInOrder() }
