package graph

import "container/heap"

// RefEdge is one out-edge in the merged, unpartitioned graph used by tests
// as a reference implementation to check the distributed search against.
type RefEdge struct {
	To     NodeId
	Weight Weight
}

// ReferenceShortestPath runs a plain single-process Dijkstra over a merged
// graph (adjacency given as edges[from] = out-edges). It exists only to
// give tests a ground-truth oracle; it is exercised by this package's
// own tests.
func ReferenceShortestPath(edges map[NodeId][]RefEdge, from, to NodeId) (PathLen, bool) {
	if from == to {
		return 0, true
	}

	dist := map[NodeId]PathLen{from: 0}
	settled := map[NodeId]bool{}

	pq := &refHeap{{id: from, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		top := heap.Pop(pq).(refItem)
		if settled[top.id] {
			continue
		}
		settled[top.id] = true

		if top.id == to {
			return top.dist, true
		}

		for _, e := range edges[top.id] {
			nd := top.dist + PathLen(e.Weight)
			if cur, ok := dist[e.To]; !ok || nd < cur {
				dist[e.To] = nd
				heap.Push(pq, refItem{id: e.To, dist: nd})
			}
		}
	}

	return Infinity, false
}

type refItem struct {
	id   NodeId
	dist PathLen
}

type refHeap []refItem

func (h refHeap) Len() int            { return len(h) }
func (h refHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h refHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *refHeap) Push(x interface{}) { *h = append(*h, x.(refItem)) }
func (h *refHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
