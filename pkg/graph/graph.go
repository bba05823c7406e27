// Package graph implements the partitioned graph store held by a single
// worker: the domestic node set, its out-edges, and the domestic/foreign
// edge-destination split described by the distributed Dijkstra protocol.
package graph

import "fmt"

// NodeId is an externally assigned identifier, unique graph-wide.
type NodeId uint64

// WorkerId is assigned by the manager, dense starting at 0.
type WorkerId uint32

// Weight is an edge weight.
type Weight uint64

// PathLen is a tentative or final shortest-path length.
type PathLen uint64

// LocalIndex addresses a domestic node within a single worker's Graph.
type LocalIndex uint32

// Infinity is the sentinel "no known path" tentative distance.
const Infinity PathLen = 1<<64 - 1

// Pointer is an edge destination: either Domestic (same worker, addressed
// by local index) or Foreign (another worker, addressed by NodeId+WorkerId).
type Pointer struct {
	domestic bool
	local    LocalIndex
	nodeID   NodeId
	workerID WorkerId
}

// Domestic builds a Pointer to a node local to this worker.
func Domestic(idx LocalIndex) Pointer {
	return Pointer{domestic: true, local: idx}
}

// Foreign builds a Pointer to a node owned by another worker.
func Foreign(id NodeId, worker WorkerId) Pointer {
	return Pointer{domestic: false, nodeID: id, workerID: worker}
}

// IsDomestic reports whether the pointer targets this worker.
func (p Pointer) IsDomestic() bool { return p.domestic }

// Local returns the local index of a domestic pointer. Only valid when
// IsDomestic() is true.
func (p Pointer) Local() LocalIndex { return p.local }

// NodeID returns the global node id of a foreign pointer. Only valid when
// IsDomestic() is false.
func (p Pointer) NodeID() NodeId { return p.nodeID }

// WorkerID returns the owning worker of a foreign pointer. Only valid when
// IsDomestic() is false.
func (p Pointer) WorkerID() WorkerId { return p.workerID }

func (p Pointer) String() string {
	if p.domestic {
		return fmt.Sprintf("Domestic(%d)", p.local)
	}
	return fmt.Sprintf("Foreign(node=%d, worker=%d)", p.nodeID, p.workerID)
}

// Edge is one out-edge of a domestic node.
type Edge struct {
	To     Pointer
	Weight Weight
}

type node struct {
	id  NodeId
	out []Edge
}

// Graph is one worker's slice of the global graph: its domestic nodes and
// their out-edges. It is built once at startup by the loader and is
// immutable thereafter, so it can be shared read-only across every
// concurrent query without locking.
type Graph struct {
	nodes []node
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{}
}

// AddNode allocates a fresh local index for id and appends it to the node
// array. Callers (the loader) are responsible for recording the id->index
// mapping in a Mapping.
func (g *Graph) AddNode(id NodeId) LocalIndex {
	idx := LocalIndex(len(g.nodes))
	g.nodes = append(g.nodes, node{id: id})
	return idx
}

// AddEdge appends an out-edge to the domestic node at from.
func (g *Graph) AddEdge(from LocalIndex, to Pointer, weight Weight) error {
	if int(from) >= len(g.nodes) {
		return fmt.Errorf("graph: AddEdge: from-index %d out of range (%d nodes)", from, len(g.nodes))
	}
	g.nodes[from].out = append(g.nodes[from].out, Edge{To: to, Weight: weight})
	return nil
}

// Len returns the number of domestic nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// NodeID returns the global id of the domestic node at idx.
func (g *Graph) NodeID(idx LocalIndex) NodeId { return g.nodes[idx].id }

// OutEdges returns the out-edges of the domestic node at idx.
func (g *Graph) OutEdges(idx LocalIndex) []Edge { return g.nodes[idx].out }
