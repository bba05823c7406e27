package managerclient

import (
	"context"
	"io"
	"testing"

	"github.com/allvpv/GraphWorker/api/proto"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
)

type fakeGraphFragmentStream struct {
	grpc.ClientStream
	pieces []*proto.GraphPiece
	idx    int
}

func (f *fakeGraphFragmentStream) Recv() (*proto.GraphPiece, error) {
	if f.idx >= len(f.pieces) {
		return nil, io.EOF
	}
	p := f.pieces[f.idx]
	f.idx++
	return p, nil
}

type fakeManagerClient struct {
	assignedWorkerID uint32
	fragment         []*proto.GraphPiece
}

func (f *fakeManagerClient) RegisterWorker(ctx context.Context, in *proto.WorkerProperties, opts ...grpc.CallOption) (*proto.WorkerIdMsg, error) {
	return &proto.WorkerIdMsg{WorkerId: f.assignedWorkerID}, nil
}

func (f *fakeManagerClient) GetGraphFragment(ctx context.Context, in *proto.WorkerMetadata, opts ...grpc.CallOption) (proto.ManagerService_GetGraphFragmentClient, error) {
	return &fakeGraphFragmentStream{pieces: f.fragment}, nil
}

func (f *fakeManagerClient) GetWorkersList(ctx context.Context, in *proto.WorkersListRequest, opts ...grpc.CallOption) (*proto.WorkersList, error) {
	return &proto.WorkersList{}, nil
}

func nodePiece(id uint64) *proto.GraphPiece {
	return &proto.GraphPiece{GraphElement: &proto.GraphPiece_Node{Node: &proto.GraphNode{NodeId: id}}}
}

func edgePiece(from, to, weight uint64, foreignWorker *uint32) *proto.GraphPiece {
	return &proto.GraphPiece{GraphElement: &proto.GraphPiece_Edge{Edge: &proto.GraphEdge{
		NodeFromId: from, NodeToId: to, Weight: weight, NodeToWorkerId: foreignWorker,
	}}}
}

func TestLoaderRegisterAssignsWorkerID(t *testing.T) {
	fake := &fakeManagerClient{assignedWorkerID: 3}
	l := NewLoader(fake, zerolog.Nop())

	id, err := l.Register(context.Background(), "127.0.0.1:9000")
	require.NoError(t, err)
	require.EqualValues(t, 3, id)
}

func TestLoaderReceivesDomesticAndForeignEdges(t *testing.T) {
	foreignWorker := uint32(1)
	fake := &fakeManagerClient{fragment: []*proto.GraphPiece{
		nodePiece(1),
		nodePiece(2),
		edgePiece(1, 2, 5, nil),
		edgePiece(2, 99, 7, &foreignWorker),
	}}
	l := NewLoader(fake, zerolog.Nop())

	g, m, err := l.ReceiveGraph(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, 2, g.Len())
	require.True(t, m.Contains(1))
	require.True(t, m.Contains(2))

	idx1, _ := m.Lookup(1)
	edges := g.OutEdges(idx1)
	require.Len(t, edges, 1)
	require.True(t, edges[0].To.IsDomestic())

	idx2, _ := m.Lookup(2)
	edges2 := g.OutEdges(idx2)
	require.Len(t, edges2, 1)
	require.False(t, edges2[0].To.IsDomestic())
	require.EqualValues(t, 99, edges2[0].To.NodeID())
	require.EqualValues(t, 1, edges2[0].To.WorkerID())
}

func TestLoaderRejectsEdgeFromUnknownNode(t *testing.T) {
	fake := &fakeManagerClient{fragment: []*proto.GraphPiece{
		edgePiece(1, 2, 5, nil),
	}}
	l := NewLoader(fake, zerolog.Nop())

	_, _, err := l.ReceiveGraph(context.Background(), 0)
	require.Error(t, err)
}
