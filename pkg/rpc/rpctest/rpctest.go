// Package rpctest runs gRPC services over an in-memory listener for handler tests.
package rpctest

import (
	"context"
	"net"
	"testing"

	"github.com/fekuna/kiwi-storefront-service/pkg/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
)

const bufSize = 1 << 20

// Dial starts a server with the services installed by register and returns a client
// connection that speaks the JSON codec. Both are torn down with the test.
func Dial(t *testing.T, register func(s *grpc.Server), opts ...grpc.ServerOption) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(bufSize)
	srv := grpc.NewServer(opts...)
	register(srv)

	go func() {
		_ = srv.Serve(lis)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(rpc.CodecName)),
	)
	if err != nil {
		t.Fatalf("dial bufconn: %v", err)
	}

	t.Cleanup(func() {
		conn.Close()
		srv.Stop()
	})
	return conn
}
