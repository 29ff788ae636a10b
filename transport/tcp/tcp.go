// Package tcp adapts net-based sockets to the transport.Conn contract.
package tcp

import (
	"context"
	"net"
	"os"
	"time"

	"minhttp/transport"

	"github.com/pkg/errors"
)

type conn struct {
	nc net.Conn
}

var _ transport.Conn = (*conn)(nil)

// Wrap adapts a net.Conn, mapping its error values to the transport ones.
func Wrap(nc net.Conn) transport.Conn {
	return &conn{nc: nc}
}

func (c *conn) Read(p []byte) (int, error) {
	n, err := c.nc.Read(p)
	return n, mapErr(err)
}

func (c *conn) Write(p []byte) (int, error) {
	n, err := c.nc.Write(p)
	return n, mapErr(err)
}

func (c *conn) Close() error { return c.nc.Close() }

func (c *conn) LocalAddr() transport.Addr  { return c.nc.LocalAddr() }
func (c *conn) RemoteAddr() transport.Addr { return c.nc.RemoteAddr() }

func (c *conn) SetReadDeadLine(t time.Time)  { _ = c.nc.SetReadDeadline(t) }
func (c *conn) SetWriteDeadLine(t time.Time) { _ = c.nc.SetWriteDeadline(t) }

// mapErr translates net errors into transport sentinels. io.EOF passes
// through untouched: the peer closing its end is not a local fault.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, net.ErrClosed):
		return transport.ErrConnClosed
	case errors.Is(err, os.ErrDeadlineExceeded):
		return transport.ErrDeadLineExceeded
	}
	return err
}

type Listener struct {
	l net.Listener
}

var _ transport.ConnListener = (*Listener)(nil)

func Listen(addr string) (*Listener, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "listening on %s", addr)
	}

	return WrapListener(l), nil
}

// WrapListener adapts a net.Listener. Used directly by the TLS provider.
func WrapListener(l net.Listener) *Listener {
	return &Listener{l: l}
}

func (l *Listener) Accept(ctx context.Context) (transport.Conn, error) {
	// net.Listener has no context support; cancelling ctx closes the
	// listener, which unblocks Accept. Fine for us: the only caller cancels
	// when it is shutting the listener down anyway.
	stop := context.AfterFunc(ctx, func() { _ = l.l.Close() })
	defer stop()

	nc, err := l.l.Accept()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, net.ErrClosed) {
			return nil, transport.ErrConnListenerClosed
		}
		return nil, errors.Wrap(err, "accepting connection")
	}

	return Wrap(nc), nil
}

func (l *Listener) Close() error { return l.l.Close() }

func (l *Listener) Addr() transport.Addr { return l.l.Addr() }
