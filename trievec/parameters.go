// Package trievec implements the persistent, bit-partitioned indexed
// vector: an immutable Slice backed by a trie of fixed-size chunks plus
// a mutable tail, and a Transient working copy that batches writes with
// copy-on-write sharing undone only where a ticket marks a node as
// privately owned.
//
// The trie shape — fixed-fanout interior nodes over fixed-size leaves,
// with a short mutable tail absorbing small appends — and the
// grow/shrink/copy machinery below are adapted directly from the
// persist package's Slice/TransientSlice. That package is built for a
// concurrent setting (nearby Set/At calls on a shared TransientSlice
// may race) and so stores every node pointer in an atomic.Value and
// resolves ownership with a lazily-assigned, CAS-guarded id. This
// package's concurrency model only ever has one writer per Slice or
// Transient at a time (spec), so node pointers are plain fields and
// ownership is a plain uint64 comparison — the one place concurrency
// still matters is minting a new transient's ticket, since many
// Transients across goroutines can be created at once; that still
// goes through an atomic counter.
package trievec

import "treevec.dev/core/collerr"

// Parameters configures the trie's bit-partitioning. EShift controls
// the size of a leaf (and of the tail): 1<<EShift elements. IShift
// controls interior node fanout: 1<<IShift children per node. The
// persist package hardcodes both to 4 (chunkBits); here they can be
// tuned independently per Slice, e.g. a wide interior fanout over
// small leaves to bound tail-copy cost on a hot append path.
type Parameters struct {
	EShift int
	IShift int
}

// DefaultParameters reproduces the persist package's fixed chunkBits=4
// for both leaf size and interior fanout.
var DefaultParameters = Parameters{EShift: 4, IShift: 4}

// validate enforces spec §3's "Trie parameters" constraints:
// ishift, eshift ∈ [2,7], and eshift ≤ ishift.
func (p Parameters) validate() error {
	if p.EShift < 2 || p.EShift > 7 {
		return collerr.New("Parameters.validate", collerr.InvalidArgument, nil)
	}
	if p.IShift < 2 || p.IShift > 7 {
		return collerr.New("Parameters.validate", collerr.InvalidArgument, nil)
	}
	if p.EShift > p.IShift {
		return collerr.New("Parameters.validate", collerr.InvalidArgument, nil)
	}
	return nil
}

func (p Parameters) leafSize() int   { return 1 << p.EShift }
func (p Parameters) leafMask() int   { return p.leafSize() - 1 }
func (p Parameters) fanout() int     { return 1 << p.IShift }
func (p Parameters) fanoutMask() int { return p.fanout() - 1 }

// levelShift is the bit offset selecting the child index within an
// interior node at the given level, where level 1 is the lowest
// interior level (its children are leaves) and level increases toward
// the root.
func (p Parameters) levelShift(level int) int {
	return p.EShift + (level-1)*p.IShift
}

// levelWidth is the number of elements addressed by a single child
// subtree at the given interior level.
func (p Parameters) levelWidth(level int) int {
	return 1 << p.levelShift(level)
}

// rootShift is the bit offset selecting the child index at the root of
// a tree of the given height (height >= 2; see height below).
func (p Parameters) rootShift(height int) int {
	return p.levelShift(height - 1)
}

// height returns the tree height needed to hold tlen elements: 0 when
// empty, otherwise always >= 2 — a lone full leaf is still addressed
// through one interior level, so there is no height-1 tree, matching
// the persist package's invariant.
func (p Parameters) height(tlen int) int {
	if tlen == 0 {
		return 0
	}
	h := 2
	cap := p.leafSize() * p.fanout()
	for cap < tlen {
		h++
		cap <<= p.IShift
	}
	return h
}
