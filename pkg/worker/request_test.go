package worker

import (
	"testing"

	"github.com/allvpv/GraphWorker/pkg/graph"
	"github.com/stretchr/testify/require"
)

// buildPartitionW0 builds worker 0's slice of the spec.md §4.3 worked
// example: nodes {1,2,3}, edges 1->2(1), 2->3(2), 3->4(5, foreign W1),
// 2->4(10, foreign W1), 3->5(100, foreign W1).
func buildPartitionW0(t *testing.T) (*graph.Graph, *graph.Mapping) {
	t.Helper()
	g := graph.New()
	m := graph.NewMapping()

	i1 := g.AddNode(1)
	i2 := g.AddNode(2)
	i3 := g.AddNode(3)
	m.Insert(1, i1)
	m.Insert(2, i2)
	m.Insert(3, i3)

	require.NoError(t, g.AddEdge(i1, graph.Domestic(i2), 1))
	require.NoError(t, g.AddEdge(i2, graph.Domestic(i3), 2))
	require.NoError(t, g.AddEdge(i2, graph.Foreign(4, 1), 10))
	require.NoError(t, g.AddEdge(i3, graph.Foreign(4, 1), 5))
	require.NoError(t, g.AddEdge(i3, graph.Foreign(5, 1), 100))

	return g, m
}

func TestRequestServerSettlesSourceFirst(t *testing.T) {
	g, m := buildPartitionW0(t)
	rs := NewRequestServer(g, m)
	rs.ApplyUpdate(1, 0)

	res := rs.Step(graph.NodeId(99)) // destination not domestic here
	require.False(t, res.Success)
	require.Equal(t, graph.PathLen(1), res.SmallestDomestic) // node 2 now at distance 1
}

func TestRequestServerFullLocalRun(t *testing.T) {
	g, m := buildPartitionW0(t)
	rs := NewRequestServer(g, m)
	rs.ApplyUpdate(1, 0)

	// Round 1: settle node 1 (dist 0), relax node 2 -> 1.
	r1 := rs.Step(3)
	require.False(t, r1.Success)
	require.Equal(t, graph.PathLen(1), r1.SmallestDomestic)

	// Round 2: settle node 2 (dist 1), relax node 3 -> 3, emit foreign
	// relaxation to node 4 (worker 1) at distance 11.
	r2 := rs.Step(3)
	require.False(t, r2.Success)
	require.Len(t, r2.ForeignRelaxations, 1)
	require.Equal(t, graph.NodeId(4), r2.ForeignRelaxations[0].NodeID)
	require.Equal(t, graph.PathLen(11), r2.ForeignRelaxations[0].Tentative)
	require.Equal(t, graph.PathLen(3), r2.SmallestDomestic)

	// Round 3: settle node 3 (dist 3) == destination.
	r3 := rs.Step(3)
	require.True(t, r3.Success)
	require.Equal(t, graph.NodeId(3), r3.SettledNodeID)
	require.Equal(t, graph.PathLen(3), r3.SettledLen)
}

func TestRequestServerExhaustion(t *testing.T) {
	g, m := buildPartitionW0(t)
	rs := NewRequestServer(g, m)
	// No update applied: no finite-distance node exists.
	res := rs.Step(3)
	require.False(t, res.Success)
	require.Equal(t, graph.Infinity, res.SmallestDomestic)
}

func TestRequestServerNeverLowersSettledNode(t *testing.T) {
	g, m := buildPartitionW0(t)
	rs := NewRequestServer(g, m)
	rs.ApplyUpdate(1, 0)
	rs.Step(99) // settles node 1 at distance 0, relaxes node 2 to 1
	rs.Step(99) // settles node 2 at distance 1

	// A later, bogus update proposing a smaller distance for the already
	// settled node must not change it.
	rs.ApplyUpdate(2, 0)
	require.True(t, rs.settled[1])
	require.Equal(t, graph.PathLen(1), rs.tentative[1])
}
