package graph

import "fmt"

// Mapping is the injective NodeId -> LocalIndex map a worker maintains for
// its domestic nodes. Every domestic node appears exactly once.
type Mapping struct {
	byID map[NodeId]LocalIndex
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{byID: make(map[NodeId]LocalIndex)}
}

// Insert records the mapping for a freshly added domestic node. Callers
// must not insert the same id twice.
func (m *Mapping) Insert(id NodeId, idx LocalIndex) {
	m.byID[id] = idx
}

// Lookup returns the local index for id and whether id is domestic here.
func (m *Mapping) Lookup(id NodeId) (LocalIndex, bool) {
	idx, ok := m.byID[id]
	return idx, ok
}

// MustLookup is Lookup but returns an error carrying id instead of a bool,
// for call sites where a miss is a hard failure.
func (m *Mapping) MustLookup(id NodeId) (LocalIndex, error) {
	idx, ok := m.byID[id]
	if !ok {
		return 0, fmt.Errorf("graph: node id %d is not domestic to this worker", id)
	}
	return idx, nil
}

// Contains reports whether id is domestic to this worker.
func (m *Mapping) Contains(id NodeId) bool {
	_, ok := m.byID[id]
	return ok
}

// Len returns the number of mapped nodes.
func (m *Mapping) Len() int { return len(m.byID) }
