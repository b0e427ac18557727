package trievec

// leaf is a leaf node in the trie: a chunk of values plus the ticket
// of the Transient allowed to write it in place.
type leaf[T any] struct {
	val    []T // length Parameters.leafSize()
	ticket uint64
}

// inode is an interior node: a fixed-fanout array of children, each
// either *inode[T] or *leaf[T] depending on the node's depth, plus the
// ticket of the Transient allowed to write it in place. A nil entry is
// a hole, read back as a chunk of zero values.
type inode[T any] struct {
	ptr    []any // length Parameters.fanout(), elements *inode[T] | *leaf[T] | nil
	ticket uint64
}

func newInode[T any](p Parameters, ticket uint64) *inode[T] {
	return &inode[T]{ptr: make([]any, p.fanout()), ticket: ticket}
}

func newLeaf[T any](p Parameters, ticket uint64) *leaf[T] {
	return &leaf[T]{val: make([]T, p.leafSize()), ticket: ticket}
}

func cloneInode[T any](p Parameters, src *inode[T], ticket uint64) *inode[T] {
	n := newInode[T](p, ticket)
	if src != nil {
		copy(n.ptr, src.ptr)
	}
	return n
}

func cloneLeaf[T any](p Parameters, src *leaf[T], ticket uint64) *leaf[T] {
	n := newLeaf[T](p, ticket)
	if src != nil {
		copy(n.val, src.val)
	}
	return n
}
