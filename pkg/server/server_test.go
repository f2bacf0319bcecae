package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Layr-Labs/solana-signer-go/pkg/config"
)

func Test_ServerLifecycle(t *testing.T) {
	t.Run("serves until shut down", func(t *testing.T) {
		s, _ := newTestServer(t, nil)
		s.httpServer.Addr = "127.0.0.1:0"

		require.NoError(t, s.Start(context.Background()))
		require.NotNil(t, s.Addr())

		resp, err := http.Get(fmt.Sprintf("http://%s/health", s.Addr().String()))
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		require.NoError(t, s.Shutdown(ctx))

		select {
		case err, ok := <-s.Errors():
			assert.False(t, ok, "unexpected serve error: %v", err)
		case <-time.After(5 * time.Second):
			t.Fatal("errors channel was not closed after shutdown")
		}
	})

	t.Run("reports a port that is already bound", func(t *testing.T) {
		occupied, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer occupied.Close()

		port := occupied.Addr().(*net.TCPAddr).Port
		s, _ := newTestServer(t, func(cfg *config.ServerConfig) { cfg.Port = port })
		s.httpServer.Addr = fmt.Sprintf("127.0.0.1:%d", port)

		err = s.Start(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to listen")
		assert.Nil(t, s.Addr())
	})
}
