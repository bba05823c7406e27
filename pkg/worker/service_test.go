package worker

import (
	"io"
	"testing"

	"github.com/allvpv/GraphWorker/api/proto"
	"github.com/allvpv/GraphWorker/pkg/graph"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type fakeStream struct {
	grpc.ServerStream
	in  []*proto.RequestDjikstra
	idx int
	out []*proto.ResponseDjikstra
}

func (f *fakeStream) Recv() (*proto.RequestDjikstra, error) {
	if f.idx >= len(f.in) {
		return nil, io.EOF
	}
	m := f.in[f.idx]
	f.idx++
	return m, nil
}

func (f *fakeStream) Send(m *proto.ResponseDjikstra) error {
	f.out = append(f.out, m)
	return nil
}

func requestID(id uint32, to uint64) *proto.RequestDjikstra {
	return &proto.RequestDjikstra{RequestType: &proto.RequestDjikstra_RequestId{RequestId: id, NodeIdTo: to}}
}

func stateUpdate(entries ...proto.StateUpdateEntry) *proto.RequestDjikstra {
	return &proto.RequestDjikstra{RequestType: &proto.RequestDjikstra_StateUpdate{
		StateUpdate: &proto.StateUpdateBatch{Updates: entries},
	}}
}

func twoNodeService(t *testing.T) *Service {
	t.Helper()
	g := graph.New()
	m := graph.NewMapping()
	i1 := g.AddNode(1)
	i2 := g.AddNode(2)
	m.Insert(1, i1)
	m.Insert(2, i2)
	require.NoError(t, g.AddEdge(i1, graph.Domestic(i2), 5))
	return NewService(g, m, zerolog.Nop())
}

func TestUpdateDijkstraRejectsNonRequestIDFirstMessage(t *testing.T) {
	s := twoNodeService(t)
	stream := &fakeStream{in: []*proto.RequestDjikstra{stateUpdate()}}

	err := s.UpdateDijkstra(stream)
	require.Error(t, err)
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestUpdateDijkstraTwoRoundsToSuccess(t *testing.T) {
	s := twoNodeService(t)

	round1 := &fakeStream{in: []*proto.RequestDjikstra{
		requestID(1, 2),
		stateUpdate(proto.StateUpdateEntry{NodeId: 1, Tentative: 0}),
	}}
	require.NoError(t, s.UpdateDijkstra(round1))
	require.Len(t, round1.out, 1)
	require.NotNil(t, round1.out[0].GetSmallestDomesticNode())
	require.Equal(t, uint64(5), round1.out[0].GetSmallestDomesticNode().ShortestPathLen)

	round2 := &fakeStream{in: []*proto.RequestDjikstra{requestID(1, 2)}}
	require.NoError(t, s.UpdateDijkstra(round2))
	require.Len(t, round2.out, 1)
	succ := round2.out[0].GetSuccess()
	require.NotNil(t, succ)
	require.Equal(t, uint64(2), succ.NodeId)
	require.Equal(t, uint64(5), succ.ShortestPathLen)

	// Success forgets the entry.
	require.Equal(t, 0, s.table.Len())
}

func TestUpdateDijkstraRejectsConcurrentRound(t *testing.T) {
	s := twoNodeService(t)
	_, err := s.table.Acquire(9, func() *RequestServer { return NewRequestServer(s.graph, s.mapping) })
	require.NoError(t, err)

	stream := &fakeStream{in: []*proto.RequestDjikstra{requestID(9, 2)}}
	err = s.UpdateDijkstra(stream)
	require.Error(t, err)
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestIsNodePresent(t *testing.T) {
	s := twoNodeService(t)
	present, err := s.IsNodePresent(nil, &proto.NodeIdRequest{NodeId: 1})
	require.NoError(t, err)
	require.True(t, present.Present)

	absent, err := s.IsNodePresent(nil, &proto.NodeIdRequest{NodeId: 99})
	require.NoError(t, err)
	require.False(t, absent.Present)
}

func TestForgetIsIdempotent(t *testing.T) {
	s := twoNodeService(t)
	_, err := s.Forget(nil, &proto.ForgetRequest{QueryId: 5})
	require.NoError(t, err)
	_, err = s.Forget(nil, &proto.ForgetRequest{QueryId: 5})
	require.NoError(t, err)
}
