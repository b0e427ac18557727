package bst

import "treevec.dev/core/arena"

// ArenaStore implements Store[arena.Handle, V, G] over a chunked
// arena.Arena, for the compact, allocation-churn-free binding. Handles
// are 16-bit and stable across rotations; freeing a node returns its
// slot to the arena's free list for reuse by a later Alloc.
type ArenaStore[V any, G Tag[V, G]] struct {
	a *arena.Arena[V, G]
}

// NewArenaStore creates an ArenaStore whose backing arena chunks hold
// 1<<chunkBits records (chunkBits must be in [2,8]).
func NewArenaStore[V any, G Tag[V, G]](chunkBits int) (*ArenaStore[V, G], error) {
	a, err := arena.New[V, G](chunkBits)
	if err != nil {
		return nil, err
	}
	return &ArenaStore[V, G]{a: a}, nil
}

// Arena exposes the backing allocator for diagnostics (Validate,
// Len) that don't belong on the Store interface itself.
func (s *ArenaStore[V, G]) Arena() *arena.Arena[V, G] { return s.a }

// LiveCount reports the backing arena's current live node count, so a
// Tree bound to this Store can feed stats.Collector.SetArenaLiveNodes
// without every Store implementation needing to support it.
func (s *ArenaStore[V, G]) LiveCount() int { return s.a.LiveCount() }

func (s *ArenaStore[V, G]) Zero() arena.Handle { return arena.NilHandle }

func (s *ArenaStore[V, G]) Alloc(value V, tag G) (arena.Handle, error) {
	h, err := s.a.Allocate()
	if err != nil {
		// Allocator exhaustion (arena capacity 2^16-1): surfaced to the
		// caller per spec §4.5, not panicked.
		return arena.NilHandle, err
	}
	rec, _ := s.a.Deref(h) // h was just allocated, always live
	rec.Value = value
	rec.Tag = tag
	return h, nil
}

func (s *ArenaStore[V, G]) Free(h arena.Handle) {
	_ = s.a.Free(h)
}

func (s *ArenaStore[V, G]) Left(h arena.Handle) arena.Handle {
	rec, err := s.a.Deref(h)
	if err != nil {
		return arena.NilHandle
	}
	return rec.Left
}

func (s *ArenaStore[V, G]) Right(h arena.Handle) arena.Handle {
	rec, err := s.a.Deref(h)
	if err != nil {
		return arena.NilHandle
	}
	return rec.Right
}

func (s *ArenaStore[V, G]) SetLeft(h, child arena.Handle) {
	rec, err := s.a.Deref(h)
	if err != nil {
		return
	}
	rec.Left = child
}

func (s *ArenaStore[V, G]) SetRight(h, child arena.Handle) {
	rec, err := s.a.Deref(h)
	if err != nil {
		return
	}
	rec.Right = child
}

func (s *ArenaStore[V, G]) Value(h arena.Handle) V {
	rec, err := s.a.Deref(h)
	if err != nil {
		var zero V
		return zero
	}
	return rec.Value
}

func (s *ArenaStore[V, G]) SetValue(h arena.Handle, value V) {
	rec, err := s.a.Deref(h)
	if err != nil {
		return
	}
	rec.Value = value
}

func (s *ArenaStore[V, G]) GetTag(h arena.Handle) G {
	rec, err := s.a.Deref(h)
	if err != nil {
		var zero G
		return zero
	}
	return rec.Tag
}

func (s *ArenaStore[V, G]) SetTag(h arena.Handle, tag G) {
	rec, err := s.a.Deref(h)
	if err != nil {
		return
	}
	rec.Tag = tag
}
