package cli

import (
	"bytes"
	"context"
	"net"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/LegalSpend-Research/internal/bootstrap"
	"github.com/turtacn/LegalSpend-Research/internal/config"
	"github.com/turtacn/LegalSpend-Research/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/LegalSpend-Research/internal/testutil"
)

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return port
}

func TestServeCmd_Flags(t *testing.T) {
	cmd := NewServeCmd()

	assert.Equal(t, "serve", cmd.Name())
	assert.NotNil(t, cmd.Flags().Lookup("port"))
}

func TestServeCmd_StopsOnCancel(t *testing.T) {
	var got *config.Config
	root := NewRootCommand(func(cfg *config.Config, logger logging.Logger) (*bootstrap.Engine, error) {
		got = cfg
		return bootstrap.NewEngine(cfg, logger, bootstrap.WithGateway(new(testutil.MockGateway)))
	})
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"--log-level", "error", "serve", "--port", strconv.Itoa(freePort(t))})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, root.ExecuteContext(ctx))
	require.NotNil(t, got)
	assert.True(t, got.Metrics.Enabled, "serve keeps metrics from the config")
}

func TestServeCmd_RejectsArgs(t *testing.T) {
	r := run(t, new(testutil.MockGateway), "", "serve", "extra")

	assert.Error(t, r.err)
}
