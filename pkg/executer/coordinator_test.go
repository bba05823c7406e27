package executer

import (
	"context"
	"io"
	"testing"

	"github.com/allvpv/GraphWorker/api/proto"
	"github.com/allvpv/GraphWorker/pkg/graph"
	workerpkg "github.com/allvpv/GraphWorker/pkg/worker"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
)

// pipeClientStream and pipeServerStream connect an in-process
// *workerpkg.Service directly to a Coordinator through channels,
// without any real network transport. Only the methods the production
// code actually calls (Send/Recv/CloseSend) are overridden; the rest of
// grpc.ClientStream/grpc.ServerStream are left nil, same technique as
// pkg/worker's own fakeStream.
type pipeClientStream struct {
	grpc.ClientStream
	toServer chan *proto.RequestDjikstra
	toClient chan *proto.ResponseDjikstra
}

func (p *pipeClientStream) Send(m *proto.RequestDjikstra) error { p.toServer <- m; return nil }
func (p *pipeClientStream) CloseSend() error                    { close(p.toServer); return nil }
func (p *pipeClientStream) Recv() (*proto.ResponseDjikstra, error) {
	m, ok := <-p.toClient
	if !ok {
		return nil, io.EOF
	}
	return m, nil
}

type pipeServerStream struct {
	grpc.ServerStream
	toServer chan *proto.RequestDjikstra
	toClient chan *proto.ResponseDjikstra
}

func (p *pipeServerStream) Send(m *proto.ResponseDjikstra) error { p.toClient <- m; return nil }
func (p *pipeServerStream) Recv() (*proto.RequestDjikstra, error) {
	m, ok := <-p.toServer
	if !ok {
		return nil, io.EOF
	}
	return m, nil
}

// inProcessWorkerClient implements proto.WorkerServiceClient by calling
// straight into a *workerpkg.Service, used to exercise the full
// Coordinator round loop without a real gRPC server.
type inProcessWorkerClient struct {
	svc *workerpkg.Service
}

func (c *inProcessWorkerClient) IsNodePresent(ctx context.Context, in *proto.NodeIdRequest, opts ...grpc.CallOption) (*proto.IsPresent, error) {
	return c.svc.IsNodePresent(ctx, in)
}

func (c *inProcessWorkerClient) Forget(ctx context.Context, in *proto.ForgetRequest, opts ...grpc.CallOption) (*proto.ForgetResponse, error) {
	return c.svc.Forget(ctx, in)
}

func (c *inProcessWorkerClient) UpdateDijkstra(ctx context.Context, opts ...grpc.CallOption) (proto.WorkerService_UpdateDijkstraClient, error) {
	toServer := make(chan *proto.RequestDjikstra)
	toClient := make(chan *proto.ResponseDjikstra)

	go func() {
		_ = c.svc.UpdateDijkstra(&pipeServerStream{toServer: toServer, toClient: toClient})
		close(toClient)
	}()

	return &pipeClientStream{toServer: toServer, toClient: toClient}, nil
}

// twoWorkerFleet reproduces spec.md §4.3's worked example split across
// two workers: W0 holds nodes {1,2,3}, W1 holds nodes {4,5}.
//
//	1 -> 2 (1)        [W0]
//	2 -> 3 (2)        [W0]
//	2 -> 4 (10, W1)   [W0 -> foreign]
//	3 -> 4 (5, W1)    [W0 -> foreign]
//	3 -> 5 (100, W1)  [W0 -> foreign]
//	4 -> 5 (1)        [W1]
//	5 -> 1 (1, W0)    [W1 -> foreign]
func twoWorkerFleet(t *testing.T) []*Worker {
	t.Helper()

	g0 := graph.New()
	m0 := graph.NewMapping()
	n1 := g0.AddNode(1)
	n2 := g0.AddNode(2)
	n3 := g0.AddNode(3)
	m0.Insert(1, n1)
	m0.Insert(2, n2)
	m0.Insert(3, n3)
	require.NoError(t, g0.AddEdge(n1, graph.Domestic(n2), 1))
	require.NoError(t, g0.AddEdge(n2, graph.Domestic(n3), 2))
	require.NoError(t, g0.AddEdge(n2, graph.Foreign(4, 1), 10))
	require.NoError(t, g0.AddEdge(n3, graph.Foreign(4, 1), 5))
	require.NoError(t, g0.AddEdge(n3, graph.Foreign(5, 1), 100))

	g1 := graph.New()
	m1 := graph.NewMapping()
	n4 := g1.AddNode(4)
	n5 := g1.AddNode(5)
	m1.Insert(4, n4)
	m1.Insert(5, n5)
	require.NoError(t, g1.AddEdge(n4, graph.Domestic(n5), 1))
	require.NoError(t, g1.AddEdge(n5, graph.Foreign(1, 0), 1))

	svc0 := workerpkg.NewService(g0, m0, zerolog.Nop())
	svc1 := workerpkg.NewService(g1, m1, zerolog.Nop())

	return []*Worker{
		{ID: 0, Client: &inProcessWorkerClient{svc: svc0}},
		{ID: 1, Client: &inProcessWorkerClient{svc: svc1}},
	}
}

func TestCoordinatorFindsShortestPathAcrossWorkers(t *testing.T) {
	workers := twoWorkerFleet(t)
	ctx := context.Background()

	coord, err := NewCoordinator(ctx, workers, 1, 5, 1)
	require.NoError(t, err)

	found, length, rounds, err := coord.Run(ctx)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, graph.PathLen(9), length) // 1->2->3->4->5 = 1+2+5+1
	require.Greater(t, rounds, 0)

	require.NoError(t, coord.Forget(ctx))
}

func TestCoordinatorRejectsAbsentSource(t *testing.T) {
	workers := twoWorkerFleet(t)
	ctx := context.Background()

	// Node 999 is domestic to neither worker: the source-discovery
	// invariant (exactly one worker answers true) must fail closed.
	_, err := NewCoordinator(ctx, workers, 999, 5, 2)
	require.Error(t, err)
}

// disconnectedFleet has no edges at all crossing between its two
// single-node partitions, so every cross-worker query is exhausted.
func disconnectedFleet(t *testing.T) []*Worker {
	t.Helper()

	g0 := graph.New()
	m0 := graph.NewMapping()
	m0.Insert(1, g0.AddNode(1))

	g1 := graph.New()
	m1 := graph.NewMapping()
	m1.Insert(2, g1.AddNode(2))

	return []*Worker{
		{ID: 0, Client: &inProcessWorkerClient{svc: workerpkg.NewService(g0, m0, zerolog.Nop())}},
		{ID: 1, Client: &inProcessWorkerClient{svc: workerpkg.NewService(g1, m1, zerolog.Nop())}},
	}
}

func TestCoordinatorNoPathReturnsFalse(t *testing.T) {
	workers := disconnectedFleet(t)
	ctx := context.Background()

	coord, err := NewCoordinator(ctx, workers, 1, 2, 3)
	require.NoError(t, err)

	found, _, rounds, err := coord.Run(ctx)
	require.NoError(t, err)
	require.False(t, found)
	require.Equal(t, 1, rounds)

	require.NoError(t, coord.Forget(ctx))
}
