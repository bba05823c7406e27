// Package executer implements the executer side of the distributed
// Dijkstra protocol: fleet bootstrap, the per-query QueryCoordinator
// (coordinator.go), and the client-facing gRPC service (service.go).
package executer

import (
	"context"
	"fmt"
	"sort"

	"github.com/allvpv/GraphWorker/api/proto"
	"github.com/allvpv/GraphWorker/pkg/graph"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Worker is the executer's handle on one connected worker, grounded on
// original_source/executer/src/workers_connection.rs's `Worker` struct.
type Worker struct {
	ID     graph.WorkerId
	Client proto.WorkerServiceClient
	conn   *grpc.ClientConn
}

// SortedWorkerAddresses returns the manager's worker list sorted by
// worker id (original_source/workers_connection.rs:
// get_sorted_workers_addresses).
func SortedWorkerAddresses(ctx context.Context, mgr proto.ManagerServiceClient) ([]proto.WorkerEntry, error) {
	list, err := mgr.GetWorkersList(ctx, &proto.WorkersListRequest{})
	if err != nil {
		return nil, fmt.Errorf("get_workers_list: %w", err)
	}
	entries := append([]proto.WorkerEntry(nil), list.Workers...)
	sort.Slice(entries, func(i, j int) bool { return entries[i].WorkerId < entries[j].WorkerId })
	return entries, nil
}

// ConnectToAllWorkers dials every worker address, preserving input
// order (original_source/workers_connection.rs: connect_to_all_workers).
func ConnectToAllWorkers(entries []proto.WorkerEntry) ([]*Worker, error) {
	workers := make([]*Worker, len(entries))
	for i, e := range entries {
		opts := append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, proto.DialOptions()...)
		conn, err := grpc.Dial(e.Address, opts...)
		if err != nil {
			return nil, fmt.Errorf("connecting to worker %d at %s: %w", e.WorkerId, e.Address, err)
		}
		workers[i] = &Worker{
			ID:     graph.WorkerId(e.WorkerId),
			Client: proto.NewWorkerServiceClient(conn),
			conn:   conn,
		}
	}
	return workers, nil
}

// Close tears down a worker's connection.
func (w *Worker) Close() error {
	if w.conn == nil {
		return nil
	}
	return w.conn.Close()
}
