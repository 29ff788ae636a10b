package server

import (
	"context"
	"log/slog"

	"minhttp/http"
	"minhttp/transport"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
)

type conn struct {
	con transport.Conn

	r *http.Reader
	w *http.Writer

	handle HandleFunc
	clock  clock.Clock
	logger *slog.Logger

	opts Options
}

func (c *conn) start(ctx context.Context) {
	defer func() {
		c.logger.Debug("closing connection")
		if err := c.con.Close(); err != nil {
			c.logger.Error("error when closing connection", "error", err)
		}
	}()

	err := c.serve(ctx)
	switch {
	case err == nil:
		c.logger.Debug("peer closed connection")
	case errors.Is(err, context.Canceled):
		// Server shutdown, no-op.
	case errors.Is(err, transport.ErrDeadLineExceeded):
		c.logger.Info("connection timed out")
	case errors.Is(err, http.ErrMalformedStartLine),
		errors.Is(err, http.ErrMalformedHeader),
		errors.Is(err, http.ErrMalformedContentLength):
		c.logger.Error("peer sent a malformed message", "error", err)
	default:
		c.logger.Error("connection failed", "error", err)
	}
}

// serve runs the decode/dispatch/reply loop until the peer closes the stream
// at a message boundary (nil) or the connection dies (non-nil). Replies go
// out in the order requests came in; there is one exchange in flight at a
// time.
func (c *conn) serve(ctx context.Context) error {
	for {
		msg, err := c.readMessage(ctx)
		if err != nil {
			if errors.Is(err, http.ErrConnectionClosed) {
				return nil
			}
			return err
		}

		var response *http.Response
		switch m := msg.(type) {
		case *http.Request:
			hctx := &HandleContext{ctx: ctx, remoteAddr: c.con.RemoteAddr()}
			response = c.handle(hctx, m)
			if response == nil {
				return errors.New("handler returned no response")
			}
		case *http.Response:
			// Only requests are expected inbound. Answer with a 400 and keep
			// the connection; the next message may be proper again.
			c.logger.Warn("peer sent a response message", "status", m.Status)
			response = badRequest()
		}

		if err := c.writeResponse(ctx, response); err != nil {
			return errors.Wrap(err, "writing response")
		}
	}
}

func (c *conn) readMessage(ctx context.Context) (http.Message, error) {
	if t := c.opts.Timeout.ReadTimeout; t > 0 {
		c.con.SetReadDeadLine(c.clock.Now().Add(t))
	}

	// Cancelling ctx closes the conn, which unblocks the decode.
	stop := context.AfterFunc(ctx, func() { _ = c.con.Close() })
	defer stop()

	msg, err := c.r.ReadMessage()
	if err != nil && ctx.Err() != nil {
		return nil, ctx.Err()
	}

	return msg, err
}

func (c *conn) writeResponse(ctx context.Context, res *http.Response) error {
	if t := c.opts.Timeout.WriteTimeout; t > 0 {
		c.con.SetWriteDeadLine(c.clock.Now().Add(t))
	}

	stop := context.AfterFunc(ctx, func() { _ = c.con.Close() })
	defer stop()

	err := c.w.WriteMessage(res)
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}

	return err
}

func badRequest() *http.Response {
	return &http.Response{
		Version: http.Version11,
		Status:  400,
		Reason:  http.Reason(400),
		Headers: http.Headers{"Content-Length": "0"},
	}
}
