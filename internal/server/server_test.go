package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(handler http.Handler) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(handler, 0, time.Second, time.Second, 2*time.Second, logger)
}

func TestServer_ServeAndShutdown(t *testing.T) {
	srv := newTestServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	var (
		mu    sync.Mutex
		order []string
	)
	record := func(name string) ShutdownFunc {
		return func(context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
			return nil
		}
	}
	srv.OnShutdown("store", record("store"))
	srv.OnShutdown("cache", record("cache"))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"cache", "store"}, order, "components stop in reverse registration order")
}

func TestServer_ShutdownErrorsAreReturned(t *testing.T) {
	srv := newTestServer(http.NotFoundHandler())

	errClose := errors.New("close failed")
	srv.OnShutdown("broken", func(context.Context) error { return errClose })
	srv.OnShutdown("fine", func(context.Context) error { return nil })

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = srv.Serve(ctx, ln)
	assert.ErrorIs(t, err, errClose)
}

func TestServer_Addr(t *testing.T) {
	srv := New(http.NotFoundHandler(), 5000, time.Second, time.Second, time.Second, slog.Default())
	assert.Equal(t, ":5000", srv.Addr())
}
