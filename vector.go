package core

import (
	"treevec.dev/core/stats"
	"treevec.dev/core/trievec"
)

// Vector is a persistent, indexed sequence of T. Reads never block a
// writer and writers never invalidate a reader's view: every mutation
// goes through a Transient batch and produces a new, independent
// Vector when committed.
type Vector[T any] struct {
	s *trievec.Slice[T]
}

// NewVector returns an empty Vector using the package's default
// bit-partitioning (16-way fanout, matching the persist package this
// module's vector engine is grounded on).
func NewVector[T any]() (*Vector[T], error) {
	s, err := trievec.New[T](trievec.DefaultParameters)
	if err != nil {
		return nil, err
	}
	return &Vector[T]{s: s}, nil
}

// Len returns the number of elements.
func (v *Vector[T]) Len() int { return v.s.Len() }

// At returns the element at index i.
func (v *Vector[T]) At(i int) (T, error) { return v.s.At(i) }

// All returns every element in order.
func (v *Vector[T]) All() []T { return v.s.All() }

// SameAs reports whether v and other share the same underlying root
// (identity rather than equal contents). Only the tree root is
// compared: Vectors that differ only in their tail elements report true.
func (v *Vector[T]) SameAs(other *Vector[T]) bool { return v.s.SameAs(other.s) }

// SetCollector wires c into v's underlying Slice so pushes, pops and
// Edit calls bump its counters.
func (v *Vector[T]) SetCollector(c *stats.Collector) { v.s.SetCollector(c) }

// Edit returns a Batch for making a series of changes, committed back
// to a new Vector via Batch.Commit.
func (v *Vector[T]) Edit() *Batch[T] {
	return &Batch[T]{t: v.s.MakeTransient()}
}

// Batch is a mutable working copy of a Vector's contents.
type Batch[T any] struct {
	t *trievec.Transient[T]
}

// Len returns the number of elements.
func (b *Batch[T]) Len() int { return b.t.Len() }

// At returns the element at index i.
func (b *Batch[T]) At(i int) (T, error) { return b.t.At(i) }

// Set sets b[i] = x.
func (b *Batch[T]) Set(i int, x T) error { return b.t.Set(i, x) }

// Push appends x.
func (b *Batch[T]) Push(x T) { b.t.Push(x) }

// Pop removes and returns the last element.
func (b *Batch[T]) Pop() (T, error) { return b.t.Pop() }

// Append appends every element of src.
func (b *Batch[T]) Append(src ...T) { b.t.Append(src...) }

// Resize resizes b to have n elements.
func (b *Batch[T]) Resize(n int) error { return b.t.Resize(n) }

// Commit returns a new Vector snapshotting b's current state. Later
// changes to b do not affect the returned Vector.
func (b *Batch[T]) Commit() *Vector[T] { return &Vector[T]{s: b.t.Persist()} }
