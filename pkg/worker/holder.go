package worker

import (
	"errors"
	"sync"
)

// ErrBusy is returned when an update_dijkstra round is requested for a
// query whose previous round on this worker has not finished yet
// (spec.md §4.2.3, §7 kind 1: protocol violation).
var ErrBusy = errors.New("another round of this query is already pending on this worker")

// requestTable is the worker's Absent|Busy|Ready tri-state map
// (spec.md §4.2.3, §9 "Process-wide state for the per-query table").
// Absence from the map IS the Absent state; presence with a nil server
// is Busy; presence with a non-nil server is Ready. The mutex only ever
// guards the map itself — the Dijkstra step runs after the
// *RequestServer has been swapped out, so long steps never hold it.
type requestTable struct {
	mu      sync.Mutex
	entries map[uint32]*RequestServer // nil entry == Busy
}

func newRequestTable() *requestTable {
	return &requestTable{entries: make(map[uint32]*RequestServer)}
}

// Acquire takes ownership of the RequestServer for queryID, creating one
// via newFn if this is the first round for this query, and marks the
// entry Busy so a concurrent round for the same query is rejected.
func (t *requestTable) Acquire(queryID uint32, newFn func() *RequestServer) (*RequestServer, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	server, present := t.entries[queryID]
	switch {
	case !present:
		t.entries[queryID] = nil // Busy
		return newFn(), nil
	case server == nil:
		return nil, ErrBusy
	default:
		t.entries[queryID] = nil // Busy
		return server, nil
	}
}

// Release hands a RequestServer back as Ready after a successful round.
func (t *requestTable) Release(queryID uint32, server *RequestServer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[queryID] = server
}

// Forget unconditionally removes queryID's entry, Busy or Ready.
// Idempotent: a no-op if the entry is already Absent.
func (t *requestTable) Forget(queryID uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, queryID)
}

// Len reports the number of live entries (Busy + Ready), used for the
// graphworker_worker_active_queries gauge.
func (t *requestTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
