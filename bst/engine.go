// Package bst implements the balanced binary search tree engine: one
// generic AVL algorithm instantiated twice, once over a heap-owned node
// store and once over a compact arena-backed store, unified through the
// Store and Tag interfaces so rotations, insert, delete and traversal
// are written exactly once.
package bst

import (
	"treevec.dev/core/arena"
	"treevec.dev/core/pathcursor"
	"treevec.dev/core/stats"
)

// Tree is the AVL engine, monomorphized over a handle type H, a value
// type V, a tag type G, a Store binding S and a Comparator C. Every
// method call through store/cmp resolves at compile time per
// instantiation — there is no boxed interface dispatch on the hot path.
type Tree[H comparable, V any, G Tag[V, G], S Store[H, V, G], C Comparator[V]] struct {
	store   S
	cmp     C
	root    H
	size    int
	metrics *stats.Collector
}

// New constructs an empty tree over the given store and comparator.
func New[H comparable, V any, G Tag[V, G], S Store[H, V, G], C Comparator[V]](store S, cmp C) *Tree[H, V, G, S, C] {
	return &Tree[H, V, G, S, C]{store: store, cmp: cmp, root: store.Zero()}
}

// SetCollector wires c into t so subsequent allocations, frees,
// rebalance passes and rotations bump its counters. A nil Collector
// (the default) makes every one of those calls a no-op.
func (t *Tree[H, V, G, S, C]) SetCollector(c *stats.Collector) { t.metrics = c }

// liveCounter is implemented by ArenaStore so Tree can report the
// backing arena's live node count without every Store needing to.
type liveCounter interface{ LiveCount() int }

func (t *Tree[H, V, G, S, C]) reportLiveNodes() {
	if lc, ok := any(t.store).(liveCounter); ok {
		t.metrics.SetArenaLiveNodes(lc.LiveCount())
	}
}

// NewHeap builds a tree over the heap-owned binding.
func NewHeap[V any, G Tag[V, G], C Comparator[V]](cmp C) *Tree[*heapNode[V, G], V, G, HeapStore[V, G], C] {
	return New[*heapNode[V, G], V, G, HeapStore[V, G], C](NewHeapStore[V, G](), cmp)
}

// HeapTree is the heap-owned binding with a nameable concrete type: Go
// generics don't let a caller outside this package spell
// Tree[*heapNode[V,G],...] directly, since heapNode is unexported, so
// HeapTree embeds it instead. Every Tree method is promoted unchanged.
type HeapTree[V any, G Tag[V, G], C Comparator[V]] struct {
	*Tree[*heapNode[V, G], V, G, HeapStore[V, G], C]
}

// NewHeapTree constructs a HeapTree, the variant of NewHeap that other
// packages can name as a field or return type.
func NewHeapTree[V any, G Tag[V, G], C Comparator[V]](cmp C) *HeapTree[V, G, C] {
	return &HeapTree[V, G, C]{NewHeap[V, G, C](cmp)}
}

// NewArena builds a tree over the arena-backed binding, with chunks of
// 1<<chunkBits records.
func NewArena[V any, G Tag[V, G], C Comparator[V]](cmp C, chunkBits int) (*Tree[arena.Handle, V, G, *ArenaStore[V, G], C], error) {
	store, err := NewArenaStore[V, G](chunkBits)
	if err != nil {
		return nil, err
	}
	return New[arena.Handle, V, G, *ArenaStore[V, G], C](store, cmp), nil
}

// Len reports the number of values stored.
func (t *Tree[H, V, G, S, C]) Len() int { return t.size }

// IsEmpty reports whether the tree holds no values.
func (t *Tree[H, V, G, S, C]) IsEmpty() bool { return t.size == 0 }

// Height reports the tree's current height (0 for an empty tree).
func (t *Tree[H, V, G, S, C]) Height() int8 {
	return height[H, V, G, S](t.store, t.root)
}

// Root returns the value stored at the tree's root and whether the
// tree is non-empty.
func (t *Tree[H, V, G, S, C]) Root() (V, bool) {
	if t.root == t.store.Zero() {
		var zero V
		return zero, false
	}
	return t.store.Value(t.root), true
}

// Find reports the stored value equal to value under the comparator,
// and whether one was present.
func (t *Tree[H, V, G, S, C]) Find(value V) (V, bool) {
	cur := t.root
	for cur != t.store.Zero() {
		c := t.cmp.Compare(value, t.store.Value(cur))
		switch {
		case c == 0:
			return t.store.Value(cur), true
		case c < 0:
			cur = t.store.Left(cur)
		default:
			cur = t.store.Right(cur)
		}
	}
	var zero V
	return zero, false
}

// Insert adds value if no equal value is already present, reporting
// whether it did. Duplicate insert is a plain false return, never an
// error — the spec treats it as a soft signal.
func (t *Tree[H, V, G, S, C]) Insert(value V) (bool, error) {
	if t.root == t.store.Zero() {
		h, err := t.store.Alloc(value, leafTag[V, G](value))
		if err != nil {
			return false, err
		}
		t.root = h
		t.size++
		t.metrics.NodeAllocated()
		t.reportLiveNodes()
		return true, nil
	}

	path := pathcursor.New[H]()
	var dirs [pathcursor.MaxDepth]bool
	cur := t.root
	for cur != t.store.Zero() {
		if err := path.Push(cur); err != nil {
			return false, err
		}
		c := t.cmp.Compare(value, t.store.Value(cur))
		switch {
		case c == 0:
			return false, nil
		case c < 0:
			dirs[path.Len()-1] = true
			cur = t.store.Left(cur)
		default:
			dirs[path.Len()-1] = false
			cur = t.store.Right(cur)
		}
	}

	newNode, err := t.store.Alloc(value, leafTag[V, G](value))
	if err != nil {
		return false, err
	}
	parent := path.Top()
	if dirs[path.Len()-1] {
		t.store.SetLeft(parent, newNode)
	} else {
		t.store.SetRight(parent, newNode)
	}
	t.size++
	t.metrics.NodeAllocated()
	t.reportLiveNodes()
	t.rebalancePath(path, &dirs)
	return true, nil
}

// Delete removes the value equal to value under the comparator,
// reporting whether one was present. Deletion with two children copies
// the in-order successor's value up and removes the successor node,
// which by construction has no left child.
func (t *Tree[H, V, G, S, C]) Delete(value V) (bool, error) {
	path := pathcursor.New[H]()
	var dirs [pathcursor.MaxDepth]bool
	cur := t.root
	for cur != t.store.Zero() {
		c := t.cmp.Compare(value, t.store.Value(cur))
		if c == 0 {
			break
		}
		if err := path.Push(cur); err != nil {
			return false, err
		}
		if c < 0 {
			dirs[path.Len()-1] = true
			cur = t.store.Left(cur)
		} else {
			dirs[path.Len()-1] = false
			cur = t.store.Right(cur)
		}
	}
	if cur == t.store.Zero() {
		return false, nil
	}
	target := cur
	victim := target

	if t.store.Left(target) != t.store.Zero() && t.store.Right(target) != t.store.Zero() {
		if err := path.Push(target); err != nil {
			return false, err
		}
		dirs[path.Len()-1] = false
		succ := t.store.Right(target)
		for t.store.Left(succ) != t.store.Zero() {
			if err := path.Push(succ); err != nil {
				return false, err
			}
			dirs[path.Len()-1] = true
			succ = t.store.Left(succ)
		}
		t.store.SetValue(target, t.store.Value(succ))
		victim = succ
	}

	child := t.store.Zero()
	if t.store.Left(victim) != t.store.Zero() {
		child = t.store.Left(victim)
	} else {
		child = t.store.Right(victim)
	}

	if path.IsEmpty() {
		t.root = child
	} else {
		parent := path.Top()
		if dirs[path.Len()-1] {
			t.store.SetLeft(parent, child)
		} else {
			t.store.SetRight(parent, child)
		}
	}
	t.store.Free(victim)
	t.size--
	t.metrics.NodeFreed()
	t.reportLiveNodes()

	t.rebalancePath(path, &dirs)
	return true, nil
}

// rebalancePath restores the AVL invariant along path, deepest node
// first, grafting each (possibly rotated) subtree root back onto its
// parent — or onto t.root once the walk reaches the top.
func (t *Tree[H, V, G, S, C]) rebalancePath(path *pathcursor.Path[H], dirs *[pathcursor.MaxDepth]bool) {
	t.metrics.Rebalanced()
	for i := path.Len() - 1; i >= 0; i-- {
		h := path.At(i)
		newH := rebalanceAt[H, V, G, S](t.store, h, t.metrics)
		if i == 0 {
			t.root = newH
			continue
		}
		parent := path.At(i - 1)
		if dirs[i-1] {
			t.store.SetLeft(parent, newH)
		} else {
			t.store.SetRight(parent, newH)
		}
	}
}
