package worker

import (
	"container/heap"

	"github.com/allvpv/GraphWorker/pkg/graph"
)

// RequestServer holds one query's Dijkstra frontier on this worker: the
// tentative distance of every domestic node reached so far, the settled
// set, and a lazy min-heap frontier used to find the next node to settle
// in O(log n) rather than scanning all domestic nodes every round.
//
// Grounded on original_source's worker_service.rs / graph_receiver.rs
// description of a per-(QueryId) RequestServer; the step algorithm
// itself follows spec.md §4.2.2.
type RequestServer struct {
	graph   *graph.Graph
	mapping *graph.Mapping

	tentative map[graph.LocalIndex]graph.PathLen
	settled   map[graph.LocalIndex]bool
	frontier  frontierHeap
}

// NewRequestServer creates an empty per-query frontier over the given
// (shared, read-only) graph and mapping.
func NewRequestServer(g *graph.Graph, m *graph.Mapping) *RequestServer {
	return &RequestServer{
		graph:     g,
		mapping:   m,
		tentative: make(map[graph.LocalIndex]graph.PathLen),
		settled:   make(map[graph.LocalIndex]bool),
	}
}

// ApplyUpdate relaxes a single (domestic_node_id, new_distance) update
// reported by the executer. Unknown node ids (not domestic here) are
// ignored: the executer is responsible for routing updates to the
// correct worker, so this is defensive, not expected in practice.
func (r *RequestServer) ApplyUpdate(nodeID uint64, newDistance uint64) {
	idx, ok := r.mapping.Lookup(graph.NodeId(nodeID))
	if !ok {
		return
	}
	r.relax(idx, graph.PathLen(newDistance))
}

func (r *RequestServer) relax(idx graph.LocalIndex, d graph.PathLen) {
	if r.settled[idx] {
		return
	}
	if cur, ok := r.tentative[idx]; !ok || d < cur {
		r.tentative[idx] = d
		heap.Push(&r.frontier, frontierEntry{idx: idx, dist: d})
	}
}

// Step runs exactly one Dijkstra round: settle the unsettled domestic
// node of smallest tentative distance, relax its out-edges, and report
// the round's outcome per spec.md §4.2.2.
//
// destination is the query's global target node id; it may or may not
// be domestic to this worker.
func (r *RequestServer) Step(destination graph.NodeId) StepResult {
	idx, d, ok := r.popMin()
	if !ok {
		return StepResult{SmallestDomestic: graph.Infinity}
	}

	r.settled[idx] = true

	var foreign []ForeignRelaxation
	for _, e := range r.graph.OutEdges(idx) {
		nd := d + graph.PathLen(e.Weight)
		if nd < d {
			nd = graph.Infinity // saturate instead of wrapping around
		}
		if e.To.IsDomestic() {
			r.relax(e.To.Local(), nd)
			continue
		}
		foreign = append(foreign, ForeignRelaxation{
			NodeID:   e.To.NodeID(),
			WorkerID: e.To.WorkerID(),
			Tentative: nd,
		})
	}

	settledID := r.graph.NodeID(idx)
	if settledID == destination {
		return StepResult{Success: true, SettledNodeID: settledID, SettledLen: d}
	}

	_, nextD, hasNext := r.peekMin()
	smallest := graph.Infinity
	if hasNext {
		smallest = nextD
	}

	return StepResult{
		ForeignRelaxations: foreign,
		SmallestDomestic:   smallest,
	}
}

// popMin pops entries off the lazy heap until it finds one that is
// still unsettled and whose distance matches the current best-known
// tentative value (earlier, now-stale heap entries are discarded).
func (r *RequestServer) popMin() (graph.LocalIndex, graph.PathLen, bool) {
	for r.frontier.Len() > 0 {
		e := heap.Pop(&r.frontier).(frontierEntry)
		if r.settled[e.idx] {
			continue
		}
		if cur, ok := r.tentative[e.idx]; !ok || cur != e.dist {
			continue // stale entry, a cheaper one was pushed later
		}
		return e.idx, e.dist, true
	}
	return 0, 0, false
}

// peekMin is popMin without removing the entry from the frontier: it
// must restore the state it temporarily perturbs so a later popMin
// still observes it.
func (r *RequestServer) peekMin() (graph.LocalIndex, graph.PathLen, bool) {
	var popped []frontierEntry
	var result *frontierEntry

	for r.frontier.Len() > 0 {
		e := heap.Pop(&r.frontier).(frontierEntry)
		if r.settled[e.idx] {
			continue
		}
		if cur, ok := r.tentative[e.idx]; !ok || cur != e.dist {
			continue
		}
		result = &e
		popped = append(popped, e)
		break
	}

	for _, e := range popped {
		heap.Push(&r.frontier, e)
	}

	if result == nil {
		return 0, 0, false
	}
	return result.idx, result.dist, true
}

// StepResult is the outcome of one RequestServer.Step call.
type StepResult struct {
	Success       bool
	SettledNodeID graph.NodeId
	SettledLen    graph.PathLen

	ForeignRelaxations []ForeignRelaxation
	SmallestDomestic   graph.PathLen
}

// ForeignRelaxation is one NewForeignNode event produced by settling a
// domestic node with an edge leaving the partition.
type ForeignRelaxation struct {
	NodeID    graph.NodeId
	WorkerID  graph.WorkerId
	Tentative graph.PathLen
}

type frontierEntry struct {
	idx  graph.LocalIndex
	dist graph.PathLen
}

type frontierHeap []frontierEntry

func (h frontierHeap) Len() int            { return len(h) }
func (h frontierHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h frontierHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *frontierHeap) Push(x interface{}) { *h = append(*h, x.(frontierEntry)) }
func (h *frontierHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
