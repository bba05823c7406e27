package executer

import (
	"context"
	"fmt"
	"io"

	"github.com/allvpv/GraphWorker/api/proto"
	"github.com/allvpv/GraphWorker/pkg/graph"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Coordinator drives one distributed Dijkstra search to completion,
// following spec.md §4.3. It is constructed fresh for every query and
// discarded once the query finishes.
type Coordinator struct {
	workers   []*Worker
	queryID   uint32
	from, to  graph.NodeId
	srcWorker graph.WorkerId

	pending map[graph.WorkerId][]proto.StateUpdateEntry
}

// NewCoordinator discovers the source worker and seeds the first round.
// Exactly one worker must answer IsNodePresent(from) true; zero or more
// than one is a data-integrity violation (spec.md §7 kind 2).
func NewCoordinator(ctx context.Context, workers []*Worker, from, to graph.NodeId, queryID uint32) (*Coordinator, error) {
	present := make([]bool, len(workers))

	g, gctx := errgroup.WithContext(ctx)
	for i, w := range workers {
		i, w := i, w
		g.Go(func() error {
			resp, err := w.Client.IsNodePresent(gctx, &proto.NodeIdRequest{NodeId: uint64(from)})
			if err != nil {
				return fmt.Errorf("is_node_present on worker %d: %w", w.ID, err)
			}
			present[i] = resp.Present
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	srcIdx := -1
	count := 0
	for i, w := range workers {
		if present[i] {
			count++
			if srcIdx == -1 {
				srcIdx = i
			}
			_ = w
		}
	}
	if count != 1 {
		return nil, status.Errorf(codes.Internal, "partition invariant violated: node %d is domestic to %d workers, want exactly 1", from, count)
	}

	c := &Coordinator{
		workers:   workers,
		queryID:   queryID,
		from:      from,
		to:        to,
		srcWorker: workers[srcIdx].ID,
		pending:   make(map[graph.WorkerId][]proto.StateUpdateEntry),
	}
	c.pending[c.srcWorker] = []proto.StateUpdateEntry{{NodeId: uint64(from), Tentative: 0}}
	return c, nil
}

// Run executes round after round until the destination is settled
// (found=true) or the fleet is exhausted (found=false).
func (c *Coordinator) Run(ctx context.Context) (found bool, length graph.PathLen, rounds int, err error) {
	for {
		rounds++

		results := make([]workerRoundResult, len(c.workers))
		g, gctx := errgroup.WithContext(ctx)
		for i, w := range c.workers {
			i, w := i, w
			updates := c.pending[w.ID]
			g.Go(func() error {
				res, err := runRoundOnWorker(gctx, c.queryID, c.to, w, updates)
				if err != nil {
					return fmt.Errorf("round on worker %d: %w", w.ID, err)
				}
				results[i] = res
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return false, 0, rounds, err
		}

		c.pending = make(map[graph.WorkerId][]proto.StateUpdateEntry)

		var globalMin graph.PathLen = graph.Infinity
		anyForeign := false

		for _, r := range results {
			if r.success != nil {
				return true, graph.PathLen(r.success.ShortestPathLen), rounds, nil
			}
			if r.smallest < globalMin {
				globalMin = r.smallest
			}
			for _, f := range r.foreign {
				anyForeign = true
				c.pending[graph.WorkerId(f.WorkerId)] = append(c.pending[graph.WorkerId(f.WorkerId)], proto.StateUpdateEntry{
					NodeId:    f.NodeId,
					Tentative: f.ShortestPathLen,
				})
			}
		}

		if globalMin == graph.Infinity && !anyForeign && len(c.pending) == 0 {
			return false, 0, rounds, nil
		}
	}
}

// Forget dispatches a best-effort forget to every worker. Errors are
// aggregated but never fail the caller (spec.md §4.2.4, §7).
func (c *Coordinator) Forget(ctx context.Context) error {
	return forgetAll(ctx, c.workers, c.queryID)
}

type workerRoundResult struct {
	success  *proto.Success
	foreign  []*proto.NewForeignNode
	smallest graph.PathLen
}

// runRoundOnWorker drives one worker through exactly one round of the
// protocol: RequestId, then any pending StateUpdates, then half-close,
// then read the response sequence (spec.md §4.2.1).
func runRoundOnWorker(ctx context.Context, queryID uint32, to graph.NodeId, w *Worker, updates []proto.StateUpdateEntry) (workerRoundResult, error) {
	stream, err := w.Client.UpdateDijkstra(ctx)
	if err != nil {
		return workerRoundResult{}, fmt.Errorf("opening update_dijkstra stream: %w", err)
	}

	if err := stream.Send(&proto.RequestDjikstra{
		RequestType: &proto.RequestDjikstra_RequestId{RequestId: queryID, NodeIdTo: uint64(to)},
	}); err != nil {
		return workerRoundResult{}, fmt.Errorf("sending request_id: %w", err)
	}

	if len(updates) > 0 {
		if err := stream.Send(&proto.RequestDjikstra{
			RequestType: &proto.RequestDjikstra_StateUpdate{StateUpdate: &proto.StateUpdateBatch{Updates: updates}},
		}); err != nil {
			return workerRoundResult{}, fmt.Errorf("sending state_update: %w", err)
		}
	}

	if err := stream.CloseSend(); err != nil {
		return workerRoundResult{}, fmt.Errorf("closing send side: %w", err)
	}

	result := workerRoundResult{smallest: graph.Infinity}
	for {
		resp, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			return workerRoundResult{}, fmt.Errorf("reading response: %w", err)
		}
		if s := resp.GetSuccess(); s != nil {
			result.success = s
			return result, nil
		}
		if fn := resp.GetNewForeignNode(); fn != nil {
			result.foreign = append(result.foreign, fn)
			continue
		}
		if sd := resp.GetSmallestDomesticNode(); sd != nil {
			result.smallest = graph.PathLen(sd.ShortestPathLen)
		}
	}

	return result, nil
}
