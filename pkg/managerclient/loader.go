// Package managerclient implements a worker's view of the manager: it
// registers the worker's listening address and streams down the graph
// partition the manager assigns it, grounded on
// original_source/worker/src/graph_receiver.rs's GraphReceiver.
package managerclient

import (
	"context"
	"fmt"
	"io"

	"github.com/allvpv/GraphWorker/api/proto"
	"github.com/allvpv/GraphWorker/pkg/graph"
	"github.com/rs/zerolog"
)

// Loader registers a worker with the manager and pulls down its graph
// partition. It is used once at worker startup and then discarded: the
// resulting Graph/Mapping are handed to worker.NewService and never
// touched again.
type Loader struct {
	client proto.ManagerServiceClient
	log    zerolog.Logger
}

// NewLoader wraps an already-dialed manager connection.
func NewLoader(client proto.ManagerServiceClient, log zerolog.Logger) *Loader {
	return &Loader{client: client, log: log}
}

// Register assigns this worker a WorkerId from the manager, advertising
// the address other workers and the executer should dial to reach it.
func (l *Loader) Register(ctx context.Context, listeningAddress string) (graph.WorkerId, error) {
	l.log.Debug().Str("listening_address", listeningAddress).Msg("registering with manager")
	resp, err := l.client.RegisterWorker(ctx, &proto.WorkerProperties{ListeningAddress: listeningAddress})
	if err != nil {
		return 0, fmt.Errorf("register_worker: %w", err)
	}
	l.log.Debug().Uint32("worker_id", resp.WorkerId).Msg("assigned worker id")
	return graph.WorkerId(resp.WorkerId), nil
}

// ReceiveGraph streams this worker's partition from the manager and
// builds the domestic Graph/Mapping pair the worker serves for the
// lifetime of the process.
func (l *Loader) ReceiveGraph(ctx context.Context, workerID graph.WorkerId) (*graph.Graph, *graph.Mapping, error) {
	l.log.Info().Msg("requesting graph fragment")

	stream, err := l.client.GetGraphFragment(ctx, &proto.WorkerMetadata{WorkerId: uint32(workerID)})
	if err != nil {
		return nil, nil, fmt.Errorf("get_graph_fragment: %w", err)
	}

	g := graph.New()
	m := graph.NewMapping()

	for {
		piece, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("receiving graph fragment: %w", err)
		}

		switch {
		case piece.GetNode() != nil:
			n := piece.GetNode()
			idx := g.AddNode(graph.NodeId(n.NodeId))
			m.Insert(graph.NodeId(n.NodeId), idx)
			l.log.Debug().Uint64("node_id", n.NodeId).Uint32("local_index", uint32(idx)).Msg("received node")

		case piece.GetEdge() != nil:
			e := piece.GetEdge()
			fromIdx, ok := m.Lookup(graph.NodeId(e.NodeFromId))
			if !ok {
				return nil, nil, fmt.Errorf("edge references unknown domestic source node %d", e.NodeFromId)
			}

			var to graph.Pointer
			if e.NodeToWorkerId != nil {
				to = graph.Foreign(graph.NodeId(e.NodeToId), graph.WorkerId(*e.NodeToWorkerId))
			} else {
				toIdx, ok := m.Lookup(graph.NodeId(e.NodeToId))
				if !ok {
					return nil, nil, fmt.Errorf("domestic edge references unknown destination node %d", e.NodeToId)
				}
				to = graph.Domestic(toIdx)
			}

			if err := g.AddEdge(fromIdx, to, graph.Weight(e.Weight)); err != nil {
				return nil, nil, fmt.Errorf("adding edge %d->%d: %w", e.NodeFromId, e.NodeToId, err)
			}
			l.log.Debug().Uint64("from", e.NodeFromId).Uint64("to", e.NodeToId).Uint64("weight", e.Weight).Msg("received edge")

		default:
			l.log.Warn().Msg("received empty graph piece with neither node nor edge")
		}
	}

	l.log.Info().Int("nodes", g.Len()).Msg("finished receiving graph fragment")
	return g, m, nil
}
