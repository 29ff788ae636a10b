package server

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"minhttp/http"
	"minhttp/transport/pipe"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestServerServesConnections(t *testing.T) {
	defer goleak.VerifyNone(t)

	clk := clock.New()
	l := pipe.NewListener("server", clk)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	srv := New(l, logger, clk, echoHandler, Options{})
	srv.Start()

	client, err := l.Dial(context.Background())
	require.NoError(t, err)

	req := &http.Request{
		Method: http.MethodGet, Resource: "/hello", Version: http.Version11,
		Headers: http.Headers{},
	}
	_, err = client.Write(req.WireFormat())
	require.NoError(t, err)

	msg, err := http.NewMessageDecoder(client).Decode()
	require.NoError(t, err)

	res, ok := msg.(*http.Response)
	require.True(t, ok)
	assert.Equal(t, uint(200), res.Status)
	assert.Equal(t, "/hello", string(res.Body))

	require.NoError(t, client.Close())
	require.NoError(t, srv.Close())
}

func TestServerCloseStopsAccepting(t *testing.T) {
	defer goleak.VerifyNone(t)

	clk := clock.New()
	l := pipe.NewListener("server", clk)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	srv := New(l, logger, clk, echoHandler, Options{})
	srv.Start()
	require.NoError(t, srv.Close())
}
