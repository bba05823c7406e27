package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// edges mirror the worked example in spec.md §4.3: W0 holds {1,2,3}, W1
// holds {4,5}; 3->4, 2->4, 5->1 and 3->5 are the cross-partition edges.
func sampleEdges() map[NodeId][]RefEdge {
	return map[NodeId][]RefEdge{
		1: {{To: 2, Weight: 1}},
		2: {{To: 3, Weight: 2}, {To: 4, Weight: 10}},
		3: {{To: 4, Weight: 5}, {To: 5, Weight: 100}},
		4: {{To: 5, Weight: 1}},
		5: {{To: 1, Weight: 1}},
	}
}

func TestReferenceShortestPathSameNode(t *testing.T) {
	d, ok := ReferenceShortestPath(sampleEdges(), 1, 1)
	require.True(t, ok)
	require.Equal(t, PathLen(0), d)
}

func TestReferenceShortestPathMultiHop(t *testing.T) {
	d, ok := ReferenceShortestPath(sampleEdges(), 1, 5)
	require.True(t, ok)
	require.Equal(t, PathLen(9), d)
}

func TestReferenceShortestPathThreeHop(t *testing.T) {
	d, ok := ReferenceShortestPath(sampleEdges(), 1, 4)
	require.True(t, ok)
	require.Equal(t, PathLen(8), d)
}

func TestReferenceShortestPathThroughCycle(t *testing.T) {
	d, ok := ReferenceShortestPath(sampleEdges(), 3, 1)
	require.True(t, ok)
	require.Equal(t, PathLen(101), d)
}

func TestReferenceShortestPathNoPath(t *testing.T) {
	edges := map[NodeId][]RefEdge{
		1: {{To: 2, Weight: 1}},
	}
	_, ok := ReferenceShortestPath(edges, 2, 1)
	require.False(t, ok)
}
