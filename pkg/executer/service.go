package executer

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/allvpv/GraphWorker/api/proto"
	"github.com/allvpv/GraphWorker/pkg/graph"
	"github.com/allvpv/GraphWorker/pkg/metrics"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
)

// Service implements proto.ExecuterServiceServer: the client-facing
// RPC that drives one QueryCoordinator per request to completion and
// fires a best-effort Forget to the whole fleet afterwards, grounded
// on original_source/executer/src/executer_service.rs's ExecuterService.
type Service struct {
	workers []*Worker
	nextID  uint32
	log     zerolog.Logger
}

// NewService builds the executer's client-facing RPC implementation
// over an already-connected, worker-id-sorted fleet.
func NewService(workers []*Worker, log zerolog.Logger) *Service {
	return &Service{workers: workers, log: log}
}

func (s *Service) newQueryID() uint32 {
	return atomic.AddUint32(&s.nextID, 1)
}

// ShortestPathQuery runs the full round loop for one (from, to) pair
// and returns once the destination settles or the fleet is exhausted
// (spec.md §4.2.4). The same-node fast path bypasses the fleet
// entirely: the distance from a node to itself is always zero.
func (s *Service) ShortestPathQuery(ctx context.Context, in *proto.QueryData) (*proto.QueryFinished, error) {
	start := time.Now()
	log := s.log.With().Uint64("from", in.NodeIdFrom).Uint64("to", in.NodeIdTo).Logger()

	if in.NodeIdFrom == in.NodeIdTo {
		metrics.QueriesTotal.WithLabelValues("same_node").Inc()
		return &proto.QueryFinished{Found: true, ShortestPathLen: 0}, nil
	}

	queryID := s.newQueryID()
	log = log.With().Uint32("query_id", queryID).Logger()

	coord, err := NewCoordinator(ctx, s.workers, graph.NodeId(in.NodeIdFrom), graph.NodeId(in.NodeIdTo), queryID)
	if err != nil {
		log.Error().Err(err).Msg("failed to start query")
		metrics.QueriesTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	found, length, rounds, err := coord.Run(ctx)
	metrics.QueryRounds.Observe(float64(rounds))
	metrics.QueryDuration.Observe(time.Since(start).Seconds())

	// Forget is best-effort and must not delay the response to the
	// caller: it runs fire-and-forget on a detached context, mirroring
	// send_forget_query's tokio::spawn in the source.
	go func() {
		forgetCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if ferr := coord.Forget(forgetCtx); ferr != nil {
			metrics.ForgetErrorsTotal.Inc()
			log.Warn().Err(ferr).Msg("forget dispatch reported errors")
		}
	}()

	if err != nil {
		log.Error().Err(err).Int("rounds", rounds).Msg("query failed")
		metrics.QueriesTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	if found {
		log.Debug().Int("rounds", rounds).Uint64("length", uint64(length)).Msg("query settled")
		metrics.QueriesTotal.WithLabelValues("found").Inc()
		return &proto.QueryFinished{Found: true, ShortestPathLen: uint64(length)}, nil
	}

	log.Debug().Int("rounds", rounds).Msg("query exhausted: no path")
	metrics.QueriesTotal.WithLabelValues("no_path").Inc()
	return &proto.QueryFinished{Found: false}, nil
}

// forgetAll dispatches Forget to every worker in parallel, aggregating
// per-worker failures into a single multierror rather than failing the
// whole dispatch on one bad worker (spec.md §4.2.4, §7).
func forgetAll(ctx context.Context, workers []*Worker, queryID uint32) error {
	var merr *multierror.Error
	errs := make(chan error, len(workers))

	for _, w := range workers {
		w := w
		go func() {
			_, err := w.Client.Forget(ctx, &proto.ForgetRequest{QueryId: queryID})
			errs <- err
		}()
	}

	for range workers {
		if err := <-errs; err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	return merr.ErrorOrNil()
}
