package trievec

import "sync/atomic"

// ticketSource mints the process-wide monotonically increasing tickets
// that mark which Transient a trie node currently belongs to. It is
// the one piece of genuinely shared state in this package — many
// Transients can be created concurrently from different Slices across
// goroutines — everything else a single Transient touches is private
// to that Transient, so no further synchronization is needed once a
// ticket has been minted (spec's single-writer-per-instance model).
//
// This plays the role of the persist package's transientID, but
// without the lazy-CAS-assign-on-first-use dance: MakeTransient mints
// its ticket eagerly at construction, so there is no race to retry
// against.
var ticketSource atomic.Uint64

func nextTicket() uint64 {
	return ticketSource.Add(1)
}
