package bst

import "treevec.dev/core/pathcursor"

// Cursor is a position within a tree, represented as the path of
// handles from the root down to the current node. A freshly created
// Cursor is unallocated (spec §6): it has no position until First,
// Last or Seek is called, and Next/Prev on an unallocated cursor are
// no-ops that report false.
type Cursor[H comparable, V any, G Tag[V, G], S Store[H, V, G], C Comparator[V]] struct {
	tree *Tree[H, V, G, S, C]
	path *pathcursor.Path[H]
}

// NewCursor returns an unallocated cursor over t.
func (t *Tree[H, V, G, S, C]) NewCursor() *Cursor[H, V, G, S, C] {
	return &Cursor[H, V, G, S, C]{tree: t, path: pathcursor.New[H]()}
}

// Clone returns an independent copy of c: later moves on the clone or
// on c do not affect the other.
func (c *Cursor[H, V, G, S, C]) Clone() *Cursor[H, V, G, S, C] {
	return &Cursor[H, V, G, S, C]{tree: c.tree, path: c.path.Clone()}
}

// IsAllocated reports whether the cursor currently points at a node.
func (c *Cursor[H, V, G, S, C]) IsAllocated() bool { return !c.path.IsEmpty() }

// Value returns the value at the cursor's current position. Calling it
// on an unallocated cursor returns the zero value.
func (c *Cursor[H, V, G, S, C]) Value() V {
	if c.path.IsEmpty() {
		var zero V
		return zero
	}
	return c.tree.store.Value(c.path.Top())
}

// First moves the cursor to the leftmost node, reporting false if the
// tree is empty (the cursor is then left unallocated).
func (c *Cursor[H, V, G, S, C]) First() bool {
	c.path.Clear()
	h := c.tree.root
	if h == c.tree.store.Zero() {
		return false
	}
	for {
		_ = c.path.Push(h)
		left := c.tree.store.Left(h)
		if left == c.tree.store.Zero() {
			return true
		}
		h = left
	}
}

// Last moves the cursor to the rightmost node, reporting false if the
// tree is empty.
func (c *Cursor[H, V, G, S, C]) Last() bool {
	c.path.Clear()
	h := c.tree.root
	if h == c.tree.store.Zero() {
		return false
	}
	for {
		_ = c.path.Push(h)
		right := c.tree.store.Right(h)
		if right == c.tree.store.Zero() {
			return true
		}
		h = right
	}
}

// Seek moves the cursor to the node equal to value, reporting whether
// one was found. On a miss the cursor is left unallocated.
func (c *Cursor[H, V, G, S, C]) Seek(value V) bool {
	c.path.Clear()
	cur := c.tree.root
	for cur != c.tree.store.Zero() {
		cmp := c.tree.cmp.Compare(value, c.tree.store.Value(cur))
		_ = c.path.Push(cur)
		switch {
		case cmp == 0:
			return true
		case cmp < 0:
			cur = c.tree.store.Left(cur)
		default:
			cur = c.tree.store.Right(cur)
		}
	}
	c.path.Clear()
	return false
}

// Next advances the cursor to the in-order successor, reporting
// whether one exists. If the current node has a right subtree, the
// successor is its leftmost descendant; otherwise it is the nearest
// ancestor for which the current node lies in the left subtree, found
// by popping the path until a left-turn is uncovered.
func (c *Cursor[H, V, G, S, C]) Next() bool {
	if c.path.IsEmpty() {
		return false
	}
	h := c.path.Top()
	store := c.tree.store
	if right := store.Right(h); right != store.Zero() {
		h = right
		for {
			_ = c.path.Push(h)
			left := store.Left(h)
			if left == store.Zero() {
				return true
			}
			h = left
		}
	}
	for {
		child := c.path.TryPop()
		if c.path.IsEmpty() {
			return false
		}
		parent := c.path.Top()
		if store.Left(parent) == child {
			return true
		}
	}
}

// Prev retreats the cursor to the in-order predecessor, the mirror of
// Next.
func (c *Cursor[H, V, G, S, C]) Prev() bool {
	if c.path.IsEmpty() {
		return false
	}
	h := c.path.Top()
	store := c.tree.store
	if left := store.Left(h); left != store.Zero() {
		h = left
		for {
			_ = c.path.Push(h)
			right := store.Right(h)
			if right == store.Zero() {
				return true
			}
			h = right
		}
	}
	for {
		child := c.path.TryPop()
		if c.path.IsEmpty() {
			return false
		}
		parent := c.path.Top()
		if store.Right(parent) == child {
			return true
		}
	}
}

// DumpInOrder returns every value in ascending order, for debugging
// and tests — never called from the engine itself.
func (t *Tree[H, V, G, S, C]) DumpInOrder() []V {
	out := make([]V, 0, t.size)
	var walk func(h H)
	walk = func(h H) {
		if h == t.store.Zero() {
			return
		}
		walk(t.store.Left(h))
		out = append(out, t.store.Value(h))
		walk(t.store.Right(h))
	}
	walk(t.root)
	return out
}
