package server

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-health-keeper/internal/config"
	"github.com/MKhiriev/go-health-keeper/internal/handler"
	"github.com/MKhiriev/go-health-keeper/internal/handler/grpc"
	"github.com/MKhiriev/go-health-keeper/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRunner struct {
	started atomic.Int32
	stopped chan struct{}
}

func (c *countingRunner) Run(ctx context.Context) {
	c.started.Add(1)
	go func() {
		<-ctx.Done()
		close(c.stopped)
	}()
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func TestNewServer_NoTransports(t *testing.T) {
	_, err := NewServer(&handler.Handlers{}, nil, config.Server{}, logger.Nop())

	assert.ErrorIs(t, err, errNoServersAreCreated)
}

func TestNewServer_BadGRPCAddress(t *testing.T) {
	handlers := &handler.Handlers{GRPC: grpc.NewHandler(okPinger{}, logger.Nop())}

	_, err := NewServer(handlers, nil, config.Server{GRPCAddress: "not-an-address"}, logger.Nop())

	assert.Error(t, err)
}

func TestRunServer_StopsWithContext(t *testing.T) {
	handlers := &handler.Handlers{GRPC: grpc.NewHandler(okPinger{}, logger.Nop())}
	runner := &countingRunner{stopped: make(chan struct{})}

	srv, err := NewServer(handlers, runner, config.Server{GRPCAddress: "127.0.0.1:0"}, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.RunServer(ctx) }()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("RunServer did not return after cancel")
	}

	assert.Equal(t, int32(1), runner.started.Load())
	select {
	case <-runner.stopped:
	case <-time.After(time.Second):
		t.Fatal("background jobs were not stopped")
	}

	// a second Shutdown is a no-op
	srv.Shutdown()
}
