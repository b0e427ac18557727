package trievec

import (
	"fmt"

	"treevec.dev/core/collerr"
	"treevec.dev/core/stats"
)

// Slice is an immutable, bit-partitioned indexed vector. It can be read
// but not written; call MakeTransient to obtain a mutable working copy,
// make changes there, and call Persist to obtain a new Slice.
type Slice[T any] struct {
	params  Parameters
	tree    any // nil or *inode[T]; see node.go
	height  int
	tlen    int // elements held in the tree, excluding the tail
	tail    []T
	metrics *stats.Collector
}

// New returns an empty Slice configured with params.
func New[T any](params Parameters) (*Slice[T], error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	return &Slice[T]{params: params}, nil
}

// SetCollector wires c into s so Transients spun from s, and pushes and
// pops performed on them, bump its counters. A nil Collector (the
// default) makes every one of those calls a no-op.
func (s *Slice[T]) SetCollector(c *stats.Collector) { s.metrics = c }

// Len returns the number of elements.
func (s *Slice[T]) Len() int { return s.tlen + len(s.tail) }

// At returns the element at index i.
func (s *Slice[T]) At(i int) (T, error) {
	if i < 0 || i >= s.Len() {
		var zero T
		return zero, collerr.New("Slice.At", collerr.IndexOutOfRange, nil)
	}
	return s.at(i), nil
}

func (s *Slice[T]) at(i int) T {
	if i >= s.tlen {
		return s.tail[i-s.tlen]
	}
	p := s.tree
	shift := s.params.rootShift(s.height)
	for level := s.height - 1; level >= 1; level-- {
		if p == nil {
			var zero T
			return zero
		}
		idx := (i >> shift) & s.params.fanoutMask()
		p = p.(*inode[T]).ptr[idx]
		shift -= s.params.IShift
	}
	if p == nil {
		var zero T
		return zero
	}
	return p.(*leaf[T]).val[i&s.params.leafMask()]
}

// All returns every element in order, for debugging and tests.
func (s *Slice[T]) All() []T {
	out := make([]T, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		out = append(out, s.at(i))
	}
	return out
}

// SameAs reports whether s and other share the same underlying root —
// identity, not equal contents. Only the tree root is compared, not the
// tail: a write through a Transient that reaches the tree gives its
// next Persist a new root, while Slices whose differences lie only in
// their tails (including two that have no tree at all) report true.
func (s *Slice[T]) SameAs(other *Slice[T]) bool {
	return s.tree == other.tree
}

// DebugString returns a human-readable dump of s's elements and shape,
// for use from tests and examples.
func (s *Slice[T]) DebugString() string {
	return fmt.Sprintf("Slice[len=%d height=%d tail=%d]%v", s.Len(), s.height, len(s.tail), s.All())
}

// MakeTransient returns a Transient for modifying (a copy of) s. The
// Transient mints a fresh ticket immediately, so every node it touches
// for the first time is copy-on-write against the ticket s's own nodes
// were stamped with (or any other Transient's).
func (s *Slice[T]) MakeTransient() *Transient[T] {
	s.metrics.TransientSpun()
	return &Transient[T]{s: *s, ticket: nextTicket()}
}

// Transient is a mutable working copy of a Slice, typically intended
// to become a new Slice via Persist. Writes to a node already stamped
// with this Transient's ticket mutate in place; any other node is
// copied first.
type Transient[T any] struct {
	s         Slice[T]
	ticket    uint64
	tailOwned bool
}

// Persist returns a Slice snapshotting t's current state. Later writes
// to t do not affect the returned Slice.
func (t *Transient[T]) Persist() *Slice[T] {
	out := t.s
	if t.tailOwned {
		out.tail = append([]T(nil), out.tail...)
	}
	// Nodes stamped so far are now shared with out; a fresh ticket makes
	// t copy them before any further write.
	t.ticket = nextTicket()
	return &out
}

// SetCollector wires c into t directly, overriding whatever Collector
// was inherited from the Slice t was made from.
func (t *Transient[T]) SetCollector(c *stats.Collector) { t.s.metrics = c }

// Len returns the number of elements.
func (t *Transient[T]) Len() int { return t.s.Len() }

// At returns the element at index i.
func (t *Transient[T]) At(i int) (T, error) { return t.s.At(i) }

// writeTail ensures t.s.tail is privately owned by t, with spare
// capacity up to a full leaf.
func (t *Transient[T]) writeTail() {
	if t.tailOwned {
		return
	}
	tail := make([]T, len(t.s.tail), t.s.params.leafSize())
	copy(tail, t.s.tail)
	t.s.tail = tail
	t.tailOwned = true
}

// wleaf returns a writable leaf at *slot, copying or creating one if
// the current occupant is missing or not owned by t's ticket.
func (t *Transient[T]) wleaf(slot *any) *leaf[T] {
	cur, _ := (*slot).(*leaf[T])
	if cur != nil && cur.ticket == t.ticket {
		return cur
	}
	n := cloneLeaf[T](t.s.params, cur, t.ticket)
	*slot = n
	return n
}

// wnode is wleaf's counterpart for interior nodes.
func (t *Transient[T]) wnode(slot *any) *inode[T] {
	cur, _ := (*slot).(*inode[T])
	if cur != nil && cur.ticket == t.ticket {
		return cur
	}
	n := cloneInode[T](t.s.params, cur, t.ticket)
	*slot = n
	return n
}

// Set sets t[i] = x.
func (t *Transient[T]) Set(i int, x T) error {
	if i < 0 || i >= t.Len() {
		return collerr.New("Transient.Set", collerr.IndexOutOfRange, nil)
	}
	if i >= t.s.tlen {
		t.writeTail()
		t.s.tail[i-t.s.tlen] = x
		return nil
	}
	slot := &t.s.tree
	shift := t.s.params.rootShift(t.s.height)
	for level := t.s.height - 1; level >= 1; level-- {
		nd := t.wnode(slot)
		idx := (i >> shift) & t.s.params.fanoutMask()
		slot = &nd.ptr[idx]
		shift -= t.s.params.IShift
	}
	lf := t.wleaf(slot)
	lf.val[i&t.s.params.leafMask()] = x
	return nil
}

// growTree grows the tree to size tlen, adding height levels as
// needed. The newly accessible content is undefined until written.
func (t *Transient[T]) growTree(tlen int) {
	t.s.tlen = tlen
	h := t.s.params.height(tlen)
	if h == t.s.height {
		return
	}
	if t.s.height == 0 {
		t.s.tree = nil
		t.s.height = h
		return
	}
	root, _ := t.s.tree.(*inode[T])
	for ; t.s.height < h; t.s.height++ {
		ip := newInode[T](t.s.params, t.ticket)
		ip.ptr[0] = root
		root = ip
	}
	t.s.tree = root
}

// shrinkTree shrinks the tree to size tlen, removing height levels as
// needed.
func (t *Transient[T]) shrinkTree(tlen int) {
	t.s.tlen = tlen
	h := t.s.params.height(tlen)
	if h == t.s.height {
		return
	}
	if h == 0 {
		t.s.tree = nil
		t.s.height = 0
		return
	}
	root, _ := t.s.tree.(*inode[T])
	for ; t.s.height > h; t.s.height-- {
		if root != nil {
			root, _ = root.ptr[0].(*inode[T])
		}
	}
	t.s.tree = root
}

// appendTree appends src (an integral number of leaves' worth) to the
// tree.
func (t *Transient[T]) appendTree(src []T, total int) {
	off := t.s.tlen
	t.growTree(off + total)
	t.copyInto(&t.s.tree, t.s.height-1, off, src, total)
}

// copyInto is like copy(t[off:], src[:total]), where slot points to a
// node at the given interior level (0 means slot holds a leaf).
func (t *Transient[T]) copyInto(slot *any, level, off int, src []T, total int) {
	if level == 0 {
		lf := t.wleaf(slot)
		copy(lf.val, src[:total])
		return
	}
	nd := t.wnode(slot)
	shift := t.s.params.levelShift(level)
	width := t.s.params.levelWidth(level)
	for j := (off >> shift) & t.s.params.fanoutMask(); j < t.s.params.fanout() && total > 0; j++ {
		m := total
		if w := width - off&(width-1); w < m {
			m = w
		}
		next := src[:m]
		src = src[m:]
		t.copyInto(&nd.ptr[j], level-1, off, next, m)
		off += m
		total -= m
	}
}

// Append appends src to t.
func (t *Transient[T]) Append(src ...T) {
	if len(src) == 0 {
		return
	}
	leafSize := t.s.params.leafSize()

	if len(t.s.tail) > 0 {
		t.writeTail()
		n := copy(t.s.tail[len(t.s.tail):cap(t.s.tail)], src)
		t.s.tail = t.s.tail[:len(t.s.tail)+n]
		if src = src[n:]; len(src) == 0 {
			return
		}
		t.appendTree(t.s.tail, leafSize)
		t.s.tail = t.s.tail[:0]
	}

	if len(src) >= leafSize {
		n := len(src) / leafSize * leafSize
		t.appendTree(src, n)
		if src = src[n:]; len(src) == 0 {
			return
		}
	}

	t.writeTail()
	t.s.tail = append(t.s.tail, src...)
}

// Push appends a single value; it is Append with one element, named
// separately because the spec treats push/pop as a first-class pair.
func (t *Transient[T]) Push(x T) {
	t.s.metrics.VectorPush()
	t.Append(x)
}

// Pop removes and returns the last element, failing with Underflow if
// t is empty.
func (t *Transient[T]) Pop() (T, error) {
	n := t.Len()
	if n == 0 {
		var zero T
		return zero, collerr.New("Transient.Pop", collerr.Underflow, nil)
	}
	last := t.s.at(n - 1)
	if err := t.Resize(n - 1); err != nil {
		var zero T
		return zero, err
	}
	t.s.metrics.VectorPop()
	return last, nil
}

// Resize resizes t to have n elements. If t is being grown, the value
// of new elements is undefined.
func (t *Transient[T]) Resize(n int) error {
	if n < 0 {
		return collerr.New("Transient.Resize", collerr.InvalidArgument, nil)
	}
	leafSize := t.s.params.leafSize()
	tlen, tailLen := n/leafSize*leafSize, n%leafSize

	switch {
	case n > t.Len():
		t.writeTail()
		if tlen != t.s.tlen {
			t.appendTree(t.s.tail[:leafSize], leafSize)
			t.growTree(tlen)
		}
		t.s.tail = t.s.tail[:tailLen]
	case n < t.Len():
		if tlen != t.s.tlen {
			t.writeTail()
			slot := any(t.s.tree)
			ok := true
			shift := t.s.params.rootShift(t.s.height)
			for level := t.s.height - 1; level >= 1 && ok; level-- {
				nd, isNode := slot.(*inode[T])
				if !isNode || nd == nil {
					ok = false
					break
				}
				idx := (tlen >> shift) & t.s.params.fanoutMask()
				slot = nd.ptr[idx]
				shift -= t.s.params.IShift
			}
			var lf *leaf[T]
			if ok {
				lf, _ = slot.(*leaf[T])
			}
			newTail := make([]T, tailLen, leafSize)
			if lf != nil {
				copy(newTail, lf.val[:tailLen])
			}
			t.s.tail = newTail
			t.tailOwned = true
			t.shrinkTree(tlen)
		} else {
			t.s.tail = t.s.tail[:tailLen]
		}
	}
	return nil
}
