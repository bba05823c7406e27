package proto

import (
	"context"

	"google.golang.org/grpc"
)

// WorkerServiceClient is the executer-side view of a worker (spec.md §6).
type WorkerServiceClient interface {
	IsNodePresent(ctx context.Context, in *NodeIdRequest, opts ...grpc.CallOption) (*IsPresent, error)
	UpdateDijkstra(ctx context.Context, opts ...grpc.CallOption) (WorkerService_UpdateDijkstraClient, error)
	Forget(ctx context.Context, in *ForgetRequest, opts ...grpc.CallOption) (*ForgetResponse, error)
}

type workerServiceClient struct {
	cc *grpc.ClientConn
}

// NewWorkerServiceClient wraps an existing connection to a worker.
func NewWorkerServiceClient(cc *grpc.ClientConn) WorkerServiceClient {
	return &workerServiceClient{cc: cc}
}

func (c *workerServiceClient) IsNodePresent(ctx context.Context, in *NodeIdRequest, opts ...grpc.CallOption) (*IsPresent, error) {
	out := new(IsPresent)
	if err := c.cc.Invoke(ctx, "/graphworker.WorkerService/IsNodePresent", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *workerServiceClient) Forget(ctx context.Context, in *ForgetRequest, opts ...grpc.CallOption) (*ForgetResponse, error) {
	out := new(ForgetResponse)
	if err := c.cc.Invoke(ctx, "/graphworker.WorkerService/Forget", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

var workerServiceUpdateDijkstraStreamDesc = grpc.StreamDesc{
	StreamName:    "UpdateDijkstra",
	ServerStreams: true,
	ClientStreams: true,
}

func (c *workerServiceClient) UpdateDijkstra(ctx context.Context, opts ...grpc.CallOption) (WorkerService_UpdateDijkstraClient, error) {
	stream, err := c.cc.NewStream(ctx, &workerServiceUpdateDijkstraStreamDesc, "/graphworker.WorkerService/UpdateDijkstra", opts...)
	if err != nil {
		return nil, err
	}
	return &workerServiceUpdateDijkstraClient{stream}, nil
}

// WorkerService_UpdateDijkstraClient is the executer's handle on one
// round's bidirectional stream: it Sends the RequestId then zero or more
// StateUpdates, CloseSends to trigger the step, then Recvs the response
// sequence until io.EOF.
type WorkerService_UpdateDijkstraClient interface {
	Send(*RequestDjikstra) error
	Recv() (*ResponseDjikstra, error)
	CloseSend() error
	grpc.ClientStream
}

type workerServiceUpdateDijkstraClient struct {
	grpc.ClientStream
}

func (x *workerServiceUpdateDijkstraClient) Send(m *RequestDjikstra) error {
	return x.ClientStream.SendMsg(m)
}

func (x *workerServiceUpdateDijkstraClient) Recv() (*ResponseDjikstra, error) {
	m := new(ResponseDjikstra)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// --- server side ---

// WorkerServiceServer is the interface a worker's RPC implementation
// satisfies (implemented by pkg/worker.Service).
type WorkerServiceServer interface {
	IsNodePresent(ctx context.Context, in *NodeIdRequest) (*IsPresent, error)
	UpdateDijkstra(stream WorkerService_UpdateDijkstraServer) error
	Forget(ctx context.Context, in *ForgetRequest) (*ForgetResponse, error)
}

// WorkerService_UpdateDijkstraServer is the worker's handle on one
// round's bidirectional stream.
type WorkerService_UpdateDijkstraServer interface {
	Send(*ResponseDjikstra) error
	Recv() (*RequestDjikstra, error)
	grpc.ServerStream
}

type workerServiceUpdateDijkstraServer struct {
	grpc.ServerStream
}

func (x *workerServiceUpdateDijkstraServer) Send(m *ResponseDjikstra) error {
	return x.ServerStream.SendMsg(m)
}

func (x *workerServiceUpdateDijkstraServer) Recv() (*RequestDjikstra, error) {
	m := new(RequestDjikstra)
	if err := x.ServerStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func RegisterWorkerServiceServer(s grpc.ServiceRegistrar, srv WorkerServiceServer) {
	s.RegisterService(&workerServiceServiceDesc, srv)
}

func workerServiceIsNodePresentHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(NodeIdRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(WorkerServiceServer).IsNodePresent(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/graphworker.WorkerService/IsNodePresent"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(WorkerServiceServer).IsNodePresent(ctx, req.(*NodeIdRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func workerServiceForgetHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ForgetRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(WorkerServiceServer).Forget(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/graphworker.WorkerService/Forget"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(WorkerServiceServer).Forget(ctx, req.(*ForgetRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func workerServiceUpdateDijkstraHandler(srv interface{}, stream grpc.ServerStream) error {
	return srv.(WorkerServiceServer).UpdateDijkstra(&workerServiceUpdateDijkstraServer{stream})
}

var workerServiceServiceDesc = grpc.ServiceDesc{
	ServiceName: "graphworker.WorkerService",
	HandlerType: (*WorkerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "IsNodePresent", Handler: workerServiceIsNodePresentHandler},
		{MethodName: "Forget", Handler: workerServiceForgetHandler},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "UpdateDijkstra",
			Handler:       workerServiceUpdateDijkstraHandler,
			ServerStreams: true,
			ClientStreams: true,
		},
	},
}
