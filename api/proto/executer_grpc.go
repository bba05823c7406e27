package proto

import (
	"context"

	"google.golang.org/grpc"
)

// ExecuterServiceClient is the client-facing view of the executer.
type ExecuterServiceClient interface {
	ShortestPathQuery(ctx context.Context, in *QueryData, opts ...grpc.CallOption) (*QueryFinished, error)
}

type executerServiceClient struct {
	cc *grpc.ClientConn
}

// NewExecuterServiceClient wraps an existing connection to the executer.
func NewExecuterServiceClient(cc *grpc.ClientConn) ExecuterServiceClient {
	return &executerServiceClient{cc: cc}
}

func (c *executerServiceClient) ShortestPathQuery(ctx context.Context, in *QueryData, opts ...grpc.CallOption) (*QueryFinished, error) {
	out := new(QueryFinished)
	if err := c.cc.Invoke(ctx, "/graphworker.ExecuterService/ShortestPathQuery", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// ExecuterServiceServer is the interface the executer's RPC
// implementation satisfies (implemented by pkg/executer.Service).
type ExecuterServiceServer interface {
	ShortestPathQuery(ctx context.Context, in *QueryData) (*QueryFinished, error)
}

func RegisterExecuterServiceServer(s grpc.ServiceRegistrar, srv ExecuterServiceServer) {
	s.RegisterService(&executerServiceServiceDesc, srv)
}

func executerServiceShortestPathQueryHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(QueryData)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ExecuterServiceServer).ShortestPathQuery(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/graphworker.ExecuterService/ShortestPathQuery"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ExecuterServiceServer).ShortestPathQuery(ctx, req.(*QueryData))
	}
	return interceptor(ctx, in, info, handler)
}

var executerServiceServiceDesc = grpc.ServiceDesc{
	ServiceName: "graphworker.ExecuterService",
	HandlerType: (*ExecuterServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ShortestPathQuery", Handler: executerServiceShortestPathQueryHandler},
	},
	Streams: []grpc.StreamDesc{},
}
