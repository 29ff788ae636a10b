// Package transport defines the duplex byte stream contract the HTTP engine
// runs over. A Conn may be a plain TCP socket, a TLS session, or an in-memory
// pipe; the protocol layer never cares which.
package transport

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrConnClosed         = errors.New("connection is closed")
	ErrConnListenerClosed = errors.New("conn listener is closed")
	ErrDeadLineExceeded   = errors.New("deadline exceeded")
)

// Addr identifies a connection endpoint. net.Addr satisfies it.
type Addr interface {
	Network() string
	String() string
}

// Conn is a duplex byte stream supporting sequential reads and ordered
// writes. A read on a stream whose peer has closed returns io.EOF; reads and
// writes on a locally closed Conn return ErrConnClosed.
type Conn interface {
	Read(p []byte) (n int, err error)
	Write(p []byte) (n int, err error)
	Close() error

	LocalAddr() Addr
	RemoteAddr() Addr

	SetReadDeadLine(t time.Time)
	SetWriteDeadLine(t time.Time)
}

type ConnListener interface {
	Accept(ctx context.Context) (Conn, error)
	Close() error
}
