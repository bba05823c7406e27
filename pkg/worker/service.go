// Package worker implements the worker side of the distributed Dijkstra
// protocol: the graph-partition-holding gRPC service (spec.md §4.2) and
// the per-query Dijkstra frontier it drives (request.go).
package worker

import (
	"context"
	"io"
	"time"

	"github.com/allvpv/GraphWorker/api/proto"
	"github.com/allvpv/GraphWorker/pkg/graph"
	"github.com/allvpv/GraphWorker/pkg/metrics"
	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Service implements proto.WorkerServiceServer. The graph and mapping
// are shared, read-only values handed to every RequestServer — no
// locking is needed for them after the loader finishes (spec.md §9).
type Service struct {
	graph   *graph.Graph
	mapping *graph.Mapping
	table   *requestTable
	steps   *stepPool
	log     zerolog.Logger
}

// NewService builds a worker's RPC surface over an already-loaded graph
// partition.
func NewService(g *graph.Graph, m *graph.Mapping, log zerolog.Logger) *Service {
	return &Service{
		graph:   g,
		mapping: m,
		table:   newRequestTable(),
		steps:   defaultStepPool(),
		log:     log,
	}
}

// IsNodePresent reports whether node_id is domestic to this worker.
func (s *Service) IsNodePresent(ctx context.Context, in *proto.NodeIdRequest) (*proto.IsPresent, error) {
	return &proto.IsPresent{Present: s.mapping.Contains(graph.NodeId(in.NodeId))}, nil
}

// Forget unconditionally releases a query's per-worker state. Best
// effort and idempotent per spec.md §4.2.4.
func (s *Service) Forget(ctx context.Context, in *proto.ForgetRequest) (*proto.ForgetResponse, error) {
	s.table.Forget(in.QueryId)
	metrics.ActiveQueries.Set(float64(s.table.Len()))
	return &proto.ForgetResponse{}, nil
}

// UpdateDijkstra processes exactly one Dijkstra round (spec.md §4.2.1).
func (s *Service) UpdateDijkstra(stream proto.WorkerService_UpdateDijkstraServer) (err error) {
	first, err := stream.Recv()
	if err != nil {
		return status.Errorf(codes.Internal, "reading first message: %v", err)
	}

	queryID, destination, ok := first.GetRequestId()
	if !ok {
		return status.Error(codes.InvalidArgument, "first message in UpdateDijkstra stream must be request_id")
	}

	server, acqErr := s.table.Acquire(queryID, func() *RequestServer {
		return NewRequestServer(s.graph, s.mapping)
	})
	if acqErr != nil {
		s.log.Warn().Uint32("query_id", queryID).Msg("rejected concurrent round for the same query")
		return status.Error(codes.InvalidArgument, acqErr.Error())
	}
	metrics.ActiveQueries.Set(float64(s.table.Len()))

	// Scope-guard (spec.md §9 Open Question 1): if this round aborts
	// abnormally after the entry was swapped to Busy, restore it to
	// Ready with whatever state it held, rather than leaving it Busy
	// forever.
	released := false
	defer func() {
		if !released {
			s.table.Release(queryID, server)
		}
	}()

	for {
		msg, recvErr := stream.Recv()
		if recvErr == io.EOF {
			break
		}
		if recvErr != nil {
			return status.Errorf(codes.Aborted, "reading round: %v", recvErr)
		}
		if _, _, isRequestID := msg.GetRequestId(); isRequestID {
			return status.Error(codes.InvalidArgument, "request_id must be the first and only such message in a round")
		}
		batch := msg.GetStateUpdate()
		if batch == nil {
			continue
		}
		for _, u := range batch.Updates {
			server.ApplyUpdate(u.NodeId, u.Tentative)
		}
	}

	var result StepResult
	stepStart := time.Now()
	s.steps.Run(func() {
		result = server.Step(graph.NodeId(destination))
	})
	metrics.RoundDuration.Observe(time.Since(stepStart).Seconds())

	if result.Success {
		s.log.Debug().Uint32("query_id", queryID).Uint64("node_id", uint64(result.SettledNodeID)).
			Uint64("shortest_path_len", uint64(result.SettledLen)).Msg("destination settled")
		metrics.RoundsTotal.WithLabelValues("settled").Inc()
		s.table.Forget(queryID)
		released = true
		metrics.ActiveQueries.Set(float64(s.table.Len()))
		return stream.Send(proto.SuccessResponse(uint64(result.SettledNodeID), uint64(result.SettledLen)))
	}

	metrics.RoundsTotal.WithLabelValues("continue").Inc()
	for _, fr := range result.ForeignRelaxations {
		if err := stream.Send(proto.NewForeignNodeResponse(uint64(fr.NodeID), uint32(fr.WorkerID), uint64(fr.Tentative))); err != nil {
			return err
		}
	}
	if err := stream.Send(proto.SmallestDomesticNodeResponse(uint64(result.SmallestDomestic))); err != nil {
		return err
	}

	s.table.Release(queryID, server)
	released = true
	return nil
}
