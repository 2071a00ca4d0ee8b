package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"testing"
	"time"

	"booktrackr/internal/config"
	booksv1 "booktrackr/pkg/api/books/v1"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestDialTarget(t *testing.T) {
	assert.Equal(t, "localhost:50051", dialTarget("0.0.0.0:50051"))
	assert.Equal(t, "localhost:50051", dialTarget("[::]:50051"))
	assert.Equal(t, "localhost:50051", dialTarget(":50051"))
	assert.Equal(t, "127.0.0.1:50051", dialTarget("127.0.0.1:50051"))
}

func TestServer_RunAndShutdown(t *testing.T) {
	// Arrange
	cfg := &config.Config{
		Server: &config.ConfigServer{
			PortGRPC:                freePort(t),
			PortHTTP:                freePort(t),
			GracefulShutdownTimeout: 2,
		},
		Debug: &config.ConfigDebug{SeedBooks: 3, SeedValue: 42},
	}
	srv, err := NewServer(cfg, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, srv.Initialize(context.Background()))

	ctx, stop := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	// Act: gRPC клиент видит засеянные книги
	conn, err := grpc.NewClient(dialTarget(srv.GRPCAddr()), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()
	client := booksv1.NewBooksServiceClient(conn)

	callCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	list, err := client.ListBooks(callCtx, &booksv1.ListBooksRequest{Sort: "title"}, grpc.WaitForReady(true))
	require.NoError(t, err)
	assert.Len(t, list.Books, 3)

	// HTTP gateway отвечает на health
	resp, err := http.Get("http://" + dialTarget(srv.HTTPAddr()) + "/health")
	require.NoError(t, err)
	var health map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	resp.Body.Close()
	assert.Equal(t, "ok", health["status"])

	// Assert: отмена контекста завершает Run без ошибки
	stop()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
