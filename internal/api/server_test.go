package api_test

import (
	"bufio"
	"context"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/hvztracker/internal/api"
	"github.com/mcoot/hvztracker/internal/testutil"
)

func TestShutdownEndsLiveFeeds(t *testing.T) {
	ts := newTestServer(t)
	ts.startGame(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	cfg := api.DefaultServerConfig()
	cfg.ShutdownTimeout = 5 * time.Second
	server := api.NewServer(ts.handler, cfg, testutil.NopLogger())
	server.OnShutdown(ts.app.HubManager.CloseAll)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/v1/feed")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(line, "event: connected"), line)

	start := time.Now()
	require.NoError(t, server.Shutdown(context.Background()))
	assert.Less(t, time.Since(start), 2*time.Second)
	require.NoError(t, <-errCh)
}

func TestServerConfigDefaults(t *testing.T) {
	cfg := api.DefaultServerConfig()
	assert.Zero(t, cfg.WriteTimeout)
	assert.Positive(t, cfg.ReadTimeout)
	assert.Positive(t, cfg.IdleTimeout)
}
