package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// Unary builds a grpc.MethodDesc for a method of service whose request type is Req.
// call receives the registered server implementation and the decoded request.
func Unary[Srv any, Req any, Resp any](service, method string, call func(Srv, context.Context, *Req) (Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + service + "/" + method

	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(Srv), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(Srv), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// Invoke calls a unary method on conn using the JSON codec.
func Invoke[Resp any](ctx context.Context, conn grpc.ClientConnInterface, service, method string, req any, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append(opts, grpc.CallContentSubtype(CodecName))
	if err := conn.Invoke(ctx, "/"+service+"/"+method, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// BidiStream builds a grpc.StreamDesc for a bidirectional streaming method.
func BidiStream[Srv any, Req any, Resp any](method string, call func(Srv, grpc.BidiStreamingServer[Req, Resp]) error) grpc.StreamDesc {
	return grpc.StreamDesc{
		StreamName: method,
		Handler: func(srv any, stream grpc.ServerStream) error {
			return call(srv.(Srv), &grpc.GenericServerStream[Req, Resp]{ServerStream: stream})
		},
		ServerStreams: true,
		ClientStreams: true,
	}
}

// OpenBidi opens a bidirectional stream on conn using the JSON codec.
func OpenBidi[Req any, Resp any](ctx context.Context, conn grpc.ClientConnInterface, service string, desc *grpc.StreamDesc, opts ...grpc.CallOption) (grpc.BidiStreamingClient[Req, Resp], error) {
	opts = append(opts, grpc.CallContentSubtype(CodecName))
	stream, err := conn.NewStream(ctx, desc, "/"+service+"/"+desc.StreamName, opts...)
	if err != nil {
		return nil, err
	}
	return &grpc.GenericClientStream[Req, Resp]{ClientStream: stream}, nil
}
