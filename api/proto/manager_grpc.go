package proto

import (
	"context"

	"google.golang.org/grpc"
)

// ManagerServiceClient is the client side of the manager's three RPCs
// consumed by workers and the executer (spec.md §6). The manager itself
// is external and is not implemented in this module.
type ManagerServiceClient interface {
	RegisterWorker(ctx context.Context, in *WorkerProperties, opts ...grpc.CallOption) (*WorkerIdMsg, error)
	GetGraphFragment(ctx context.Context, in *WorkerMetadata, opts ...grpc.CallOption) (ManagerService_GetGraphFragmentClient, error)
	GetWorkersList(ctx context.Context, in *WorkersListRequest, opts ...grpc.CallOption) (*WorkersList, error)
}

type managerServiceClient struct {
	cc *grpc.ClientConn
}

// NewManagerServiceClient wraps an existing connection to the manager.
func NewManagerServiceClient(cc *grpc.ClientConn) ManagerServiceClient {
	return &managerServiceClient{cc: cc}
}

func (c *managerServiceClient) RegisterWorker(ctx context.Context, in *WorkerProperties, opts ...grpc.CallOption) (*WorkerIdMsg, error) {
	out := new(WorkerIdMsg)
	if err := c.cc.Invoke(ctx, "/graphworker.ManagerService/RegisterWorker", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *managerServiceClient) GetGraphFragment(ctx context.Context, in *WorkerMetadata, opts ...grpc.CallOption) (ManagerService_GetGraphFragmentClient, error) {
	stream, err := c.cc.NewStream(ctx, &managerServiceGetGraphFragmentStreamDesc, "/graphworker.ManagerService/GetGraphFragment", opts...)
	if err != nil {
		return nil, err
	}
	x := &managerServiceGetGraphFragmentClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

func (c *managerServiceClient) GetWorkersList(ctx context.Context, in *WorkersListRequest, opts ...grpc.CallOption) (*WorkersList, error) {
	out := new(WorkersList)
	if err := c.cc.Invoke(ctx, "/graphworker.ManagerService/GetWorkersList", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

var managerServiceGetGraphFragmentStreamDesc = grpc.StreamDesc{
	StreamName:    "GetGraphFragment",
	ServerStreams: true,
}

// ManagerService_GetGraphFragmentClient is the server-streaming response
// handle for GetGraphFragment.
type ManagerService_GetGraphFragmentClient interface {
	Recv() (*GraphPiece, error)
	grpc.ClientStream
}

type managerServiceGetGraphFragmentClient struct {
	grpc.ClientStream
}

func (x *managerServiceGetGraphFragmentClient) Recv() (*GraphPiece, error) {
	m := new(GraphPiece)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}
