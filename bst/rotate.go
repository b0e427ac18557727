package bst

import "treevec.dev/core/stats"

// retag recomputes h's tag from its current children and value. Callers
// must have already retagged both children if they were themselves
// rotated, so tags are always folded bottom-up — spec §4.3.
func retag[H comparable, V any, G Tag[V, G], S Store[H, V, G]](s S, h H) {
	lt := childTag[H, V, G, S](s, s.Left(h))
	rt := childTag[H, V, G, S](s, s.Right(h))
	var zero G
	s.SetTag(h, zero.Combine(lt, rt, s.Value(h)))
}

// childTag returns the identity tag for a nil child, else the child's
// stored tag.
func childTag[H comparable, V any, G Tag[V, G], S Store[H, V, G]](s S, h H) G {
	if h == s.Zero() {
		var zero G
		return zero
	}
	return s.GetTag(h)
}

func height[H comparable, V any, G Tag[V, G], S Store[H, V, G]](s S, h H) int8 {
	if h == s.Zero() {
		return 0
	}
	return s.GetTag(h).Height()
}

// balanceFactor is left height minus right height.
func balanceFactor[H comparable, V any, G Tag[V, G], S Store[H, V, G]](s S, h H) int8 {
	return height[H, V, G, S](s, s.Left(h)) - height[H, V, G, S](s, s.Right(h))
}

// rotateLeft pulls up h's right child as the new subtree root. h's tag
// is recomputed before the new root's, since the new root's tag folds
// in h's (now-shrunk) tag — spec §4.4.
func rotateLeft[H comparable, V any, G Tag[V, G], S Store[H, V, G]](s S, h H) H {
	newRoot := s.Right(h)
	s.SetRight(h, s.Left(newRoot))
	s.SetLeft(newRoot, h)
	retag[H, V, G, S](s, h)
	retag[H, V, G, S](s, newRoot)
	return newRoot
}

// rotateRight is the mirror of rotateLeft.
func rotateRight[H comparable, V any, G Tag[V, G], S Store[H, V, G]](s S, h H) H {
	newRoot := s.Left(h)
	s.SetLeft(h, s.Right(newRoot))
	s.SetRight(newRoot, h)
	retag[H, V, G, S](s, h)
	retag[H, V, G, S](s, newRoot)
	return newRoot
}

// rebalanceAt restores the AVL invariant at h, which is assumed to
// violate it by at most one rotation's worth (true immediately after a
// single insert or delete step, since only one subtree changed depth).
// It returns the (possibly new) root of the subtree at h.
func rebalanceAt[H comparable, V any, G Tag[V, G], S Store[H, V, G]](s S, h H, c *stats.Collector) H {
	bf := balanceFactor[H, V, G, S](s, h)
	switch {
	case bf > 1:
		if balanceFactor[H, V, G, S](s, s.Left(h)) < 0 {
			s.SetLeft(h, rotateLeft[H, V, G, S](s, s.Left(h)))
			c.Rotated(stats.RotationLeftRight)
			return rotateRight[H, V, G, S](s, h)
		}
		c.Rotated(stats.RotationRight)
		return rotateRight[H, V, G, S](s, h)
	case bf < -1:
		if balanceFactor[H, V, G, S](s, s.Right(h)) > 0 {
			s.SetRight(h, rotateRight[H, V, G, S](s, s.Right(h)))
			c.Rotated(stats.RotationRightLeft)
			return rotateLeft[H, V, G, S](s, h)
		}
		c.Rotated(stats.RotationLeft)
		return rotateLeft[H, V, G, S](s, h)
	default:
		retag[H, V, G, S](s, h)
		return h
	}
}
