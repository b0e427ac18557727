// Package arena implements the chunked, free-list-backed node allocator
// the spec requires for the arena-backed AVL binding: a growable
// sequence of fixed-size chunks, stable 16-bit handles, and an
// intrusive free list threaded through each record's Left field.
//
// This mirrors the shape of other_examples' OPA arena storage backend
// (segments indexed by a shifted/masked handle, freelist linked through
// a field of the record itself) but is capped at a single generation —
// compaction is a declared capability (spec §4.2/§9b) that this package
// rejects cleanly rather than implementing, and there is no background
// scavenger: the spec's concurrency model is single-writer-per-instance,
// so there is nothing to scavenge behind a reader's back.
package arena

import (
	"github.com/bits-and-blooms/bitset"

	"treevec.dev/core/collerr"
)

// Handle is a 16-bit arena-relative node reference. The zero Handle is
// reserved to mean "nil"; it is never handed out by Allocate.
type Handle uint16

// NilHandle is the reserved zero handle.
const NilHandle Handle = 0

// maxCapacity is 2^16 - 1: every handle other than NilHandle.
const maxCapacity = 1<<16 - 1

// Record is a single node's storage: the generic left/right handles,
// the node's value, and its tag. Left also threads the free list when
// the record is not live — see Free and appendChunk.
type Record[V any, G any] struct {
	Left, Right Handle
	Value       V
	Tag         G
}

// Arena owns a growable sequence of chunks of Record[V,G], sized
// 1<<chunkBits each, and the free list through which Allocate and Free
// recycle them.
type Arena[V any, G any] struct {
	chunkBits uint
	chunkSize int
	chunkMask Handle

	chunks   [][]Record[V, G]
	freeHead Handle

	live  *bitset.BitSet // liveness bitmap, consulted by Free and Validate
	count int            // live node count
}

// New creates an empty arena whose chunks hold 1<<chunkBits records.
// chunkBits must be in [2,8] per spec §3.
func New[V any, G any](chunkBits int) (*Arena[V, G], error) {
	if chunkBits < 2 || chunkBits > 8 {
		return nil, collerr.New("arena.New", collerr.InvalidArgument, nil)
	}
	size := 1 << uint(chunkBits)
	return &Arena[V, G]{
		chunkBits: uint(chunkBits),
		chunkSize: size,
		chunkMask: Handle(size - 1),
		live:      bitset.New(0),
	}, nil
}

// Len returns the number of currently live (allocated, not freed)
// records.
func (a *Arena[V, G]) Len() int { return a.count }

// LiveCount is an alias for Len; both read a.count directly, O(1), and
// neither consults the liveness bitmap.
func (a *Arena[V, G]) LiveCount() int { return a.count }

func (a *Arena[V, G]) locate(h Handle) (chunkIdx, offset int) {
	idx := int(h)
	return idx >> a.chunkBits, idx & int(a.chunkMask)
}

// Deref returns a pointer to h's record. The nil handle fails with
// ErrInvalidHandle; any other handle, live or free, can be dereferenced
// (freeing does not zero the record's Value/Tag, only its Left/Right
// free-list linkage — callers must not read a freed record's Value/Tag
// as meaningful data).
func (a *Arena[V, G]) Deref(h Handle) (*Record[V, G], error) {
	if h == NilHandle {
		return nil, collerr.New("Arena.Deref", collerr.InvalidHandle, nil)
	}
	c, o := a.locate(h)
	return &a.chunks[c][o], nil
}

// Allocate pops a handle off the free list, growing the arena by one
// chunk first if the list is empty.
func (a *Arena[V, G]) Allocate() (Handle, error) {
	if a.freeHead == NilHandle {
		if err := a.appendChunk(); err != nil {
			return NilHandle, err
		}
	}
	h := a.freeHead
	rec, _ := a.Deref(h) // h came from the free list, never NilHandle
	a.freeHead = rec.Left
	rec.Left, rec.Right = NilHandle, NilHandle
	a.live.Set(uint(h))
	a.count++
	return h, nil
}

// Free returns h to the free list. Freeing the nil handle or a handle
// already free is an invalid-handle error.
func (a *Arena[V, G]) Free(h Handle) error {
	if h == NilHandle || !a.live.Test(uint(h)) {
		return collerr.New("Arena.Free", collerr.InvalidHandle, nil)
	}
	rec, _ := a.Deref(h)
	rec.Left = a.freeHead
	rec.Right = NilHandle
	a.freeHead = h
	a.live.Clear(uint(h))
	a.count--
	return nil
}

// Compact is a declared capability the spec requires the core to
// reject cleanly rather than implement (spec §4.2, §9b).
func (a *Arena[V, G]) Compact(threshold float64) error {
	return collerr.New("Arena.Compact", collerr.Unsupported, nil)
}

// appendChunk grows the arena by one chunk and threads its records
// into the free list. For the very first chunk, global slot 0 must
// never be handed out (it is the reserved nil handle): its Left field
// is still set so the chunk's internal layout stays uniform, but the
// free-list head is set to slot 1, so slot 0 is simply never reachable
// from it and therefore never allocated — spec §4.2.
func (a *Arena[V, G]) appendChunk() error {
	base := len(a.chunks) * a.chunkSize
	if base+a.chunkSize > maxCapacity+1 {
		return collerr.New("Arena.appendChunk", collerr.Unsupported, errArenaFull)
	}

	chunk := make([]Record[V, G], a.chunkSize)
	start := 0
	if base == 0 {
		start = 1
		chunk[0].Left = Handle(1)
	}
	for i := start; i < a.chunkSize-1; i++ {
		chunk[i].Left = Handle(base + i + 1)
	}
	chunk[a.chunkSize-1].Left = a.freeHead

	a.chunks = append(a.chunks, chunk)
	a.freeHead = Handle(base + start)
	return nil
}

// errArenaFull is not part of the collerr taxonomy (spec §7 enumerates
// six kinds and allocator exhaustion isn't one of them; §4.5 only says
// exhaustion is "surfaced to caller"), so it travels as a wrapped cause
// rather than its own Kind.
var errArenaFull = arenaFullError{}

type arenaFullError struct{}

func (arenaFullError) Error() string { return "arena: capacity exhausted (2^16-1 nodes)" }

// Validate cross-checks the free-list bookkeeping against the liveness
// bitmap: walking the free list must visit exactly the non-live handles
// and nothing more. It is O(free list length), for tests and debugging,
// never on the allocation hot path.
func (a *Arena[V, G]) Validate() error {
	total := len(a.chunks) * a.chunkSize
	seen := bitset.New(uint(total))
	visited := 0
	for h := a.freeHead; h != NilHandle; {
		idx := uint(h)
		if seen.Test(idx) {
			return collerr.New("Arena.Validate", collerr.InvalidHandle, errFreeListCycle)
		}
		seen.Set(idx)
		visited++
		if a.live.Test(idx) {
			return collerr.New("Arena.Validate", collerr.InvalidHandle, errFreeListLiveOverlap)
		}
		rec, _ := a.Deref(h)
		h = rec.Left
	}
	// Every slot except the reserved slot 0 is either live or on the list.
	if total > 0 && visited != total-1-a.count {
		return collerr.New("Arena.Validate", collerr.InvalidHandle, errFreeListIncomplete)
	}
	return nil
}

var (
	errFreeListCycle      = freeListError("free list contains a cycle")
	errFreeListLiveOverlap = freeListError("free list references a live handle")
	errFreeListIncomplete  = freeListError("free list misses a non-live handle")
)

type freeListError string

func (e freeListError) Error() string { return string(e) }
