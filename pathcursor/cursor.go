// Package pathcursor implements the explicit traversal stack shared by
// both AVL bindings (heap-owned and arena-backed): a fixed-capacity path
// from the root down to a current position, with successor/predecessor
// derived from stack manipulation alone, no parent pointers required.
//
// The design note in the spec calls this out directly: converting
// recursion to an explicit array stack only pays off on runtimes with
// write barriers on every pointer store, which Go's stack frames don't
// have — but the explicit stack is kept anyway because it is what makes
// Path clonable and reusable as a cursor abstraction.
package pathcursor

import "treevec.dev/core/collerr"

// MaxDepth bounds the path length. An AVL tree holds at most 2^32
// elements per the spec's stated regime, whose height never exceeds 45
// (the worst case for Fibonacci-bounded AVL trees at that size), so 48
// leaves headroom.
const MaxDepth = 48

// Path is a fixed-capacity stack of handles from the root to the
// current position, inclusive. The zero value is an empty path ready to
// use; Path is generic over the handle type so it is shared verbatim by
// the heap-owned and arena-backed bindings.
type Path[H comparable] struct {
	stack [MaxDepth]H
	len   int
	zero  H // the "nil" handle for H; compared against on every push
}

// New returns an empty path whose nil handle is zero. Arena handles use
// 0 as nil already, so the zero value of Path works for them directly;
// heap handles (typed nil pointers) also zero correctly.
func New[H comparable]() *Path[H] {
	return &Path[H]{}
}

// Len reports the number of handles currently on the path.
func (p *Path[H]) Len() int { return p.len }

// IsEmpty reports whether the path has zero handles on it.
func (p *Path[H]) IsEmpty() bool { return p.len == 0 }

// Clear resets the path to empty without changing its nil handle.
func (p *Path[H]) Clear() { p.len = 0 }

// Clone deep-copies the path (the array is copied by value).
func (p *Path[H]) Clone() *Path[H] {
	c := *p
	return &c
}

// Push appends h to the path. h must not be the nil handle, and the
// path must have room; both are invariants the AVL engine maintains
// internally, so violating them indicates a bug rather than ordinary
// user error, and is reported accordingly.
func (p *Path[H]) Push(h H) error {
	if h == p.zero {
		return collerr.New("Path.Push", collerr.InvalidArgument, nil)
	}
	if p.len >= MaxDepth {
		return collerr.New("Path.Push", collerr.DepthExceeded, nil)
	}
	p.stack[p.len] = h
	p.len++
	return nil
}

// TryPop removes and returns the top handle, or the nil handle if the
// path is already empty.
func (p *Path[H]) TryPop() H {
	if p.len == 0 {
		return p.zero
	}
	p.len--
	h := p.stack[p.len]
	p.stack[p.len] = p.zero
	return h
}

// Top returns the handle at the top of the path, or the nil handle if
// the path is empty.
func (p *Path[H]) Top() H {
	if p.len == 0 {
		return p.zero
	}
	return p.stack[p.len-1]
}

// At returns the handle at depth i (0 is the root), or the nil handle
// if i is out of range.
func (p *Path[H]) At(i int) H {
	if i < 0 || i >= p.len {
		return p.zero
	}
	return p.stack[i]
}

// Set overwrites the handle at depth i; an out-of-range i is ignored.
func (p *Path[H]) Set(i int, h H) {
	if i < 0 || i >= p.len {
		return
	}
	p.stack[i] = h
}

// Slots gives read access to the live portion of the path, deepest
// last, for callers that need to iterate without copying.
func (p *Path[H]) Slots() []H { return p.stack[:p.len] }
