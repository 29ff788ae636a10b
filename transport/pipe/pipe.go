// Package pipe provides a synchronous in-memory transport.Conn pair, used to
// exercise the protocol layer without sockets.
package pipe

import (
	"context"
	"io"
	"sync"
	"time"

	"minhttp/transport"

	"github.com/benbjohnson/clock"
)

type Addr struct {
	Name string
}

func (a Addr) Network() string { return "pipe" }
func (a Addr) String() string  { return a.Name }

var _ transport.Addr = Addr{}

type pipe struct {
	stream chan []byte // this end reads from here.
	nc     chan int    // counterpart reports how much it consumed.

	writeMu sync.Mutex

	closed chan struct{}
	once   sync.Once

	rdeadline *deadline
	wdeadline *deadline

	counterpart *pipe

	addr Addr
}

var _ transport.Conn = (*pipe)(nil)

// Pair creates two connected pipe ends. Transfers are synchronous and
// unbuffered: a Write blocks until the other end reads.
func Pair(name1, name2 string, clk clock.Clock) (c1, c2 transport.Conn) {
	p1 := newPipe(name1, clk)
	p2 := newPipe(name2, clk)
	p1.counterpart, p2.counterpart = p2, p1
	return p1, p2
}

func newPipe(name string, clk clock.Clock) *pipe {
	return &pipe{
		stream:    make(chan []byte),
		nc:        make(chan int),
		closed:    make(chan struct{}),
		rdeadline: newDeadline(clk),
		wdeadline: newDeadline(clk),
		addr:      Addr{Name: name},
	}
}

func (p *pipe) LocalAddr() transport.Addr  { return p.addr }
func (p *pipe) RemoteAddr() transport.Addr { return p.counterpart.addr }

func (p *pipe) Close() error {
	p.once.Do(func() { close(p.closed) })
	return nil
}

func (p *pipe) Read(b []byte) (n int, err error) {
	switch {
	case isClosed(p.closed):
		return 0, transport.ErrConnClosed
	case isClosed(p.counterpart.closed):
		return 0, io.EOF
	case isClosed(p.rdeadline.wait()):
		return 0, transport.ErrDeadLineExceeded
	}

	select {
	case received := <-p.stream:
		n := copy(b, received)
		p.counterpart.nc <- n
		return n, nil
	case <-p.closed:
		return 0, transport.ErrConnClosed
	case <-p.counterpart.closed:
		return 0, io.EOF
	case <-p.rdeadline.wait():
		return 0, transport.ErrDeadLineExceeded
	}
}

func (p *pipe) Write(b []byte) (n int, err error) {
	switch {
	case isClosed(p.closed), isClosed(p.counterpart.closed):
		return 0, transport.ErrConnClosed
	case isClosed(p.wdeadline.wait()):
		return 0, transport.ErrDeadLineExceeded
	}

	if len(b) == 0 {
		return 0, nil
	}

	// Serialize writers so concurrent writes don't interleave.
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	total := 0
	for len(b) > 0 {
		select {
		case p.counterpart.stream <- b:
			n := <-p.nc
			b = b[n:]
			total += n
		case <-p.closed:
			return total, transport.ErrConnClosed
		case <-p.counterpart.closed:
			return total, transport.ErrConnClosed
		case <-p.wdeadline.wait():
			return total, transport.ErrDeadLineExceeded
		}
	}

	return total, nil
}

func (p *pipe) SetReadDeadLine(t time.Time)  { p.rdeadline.set(t) }
func (p *pipe) SetWriteDeadLine(t time.Time) { p.wdeadline.set(t) }

// deadline turns an absolute time into a channel that closes when the time
// passes. Resettable, like net.Conn deadlines.
type deadline struct {
	clk clock.Clock

	timer *clock.Timer
	mu    sync.Mutex

	expired chan struct{}
}

func newDeadline(clk clock.Clock) *deadline {
	return &deadline{clk: clk, expired: make(chan struct{})}
}

func (d *deadline) set(t time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if isClosed(d.expired) {
		d.expired = make(chan struct{})
	}

	if t.IsZero() {
		// Zero means no deadline.
		return
	}

	expired := d.expired
	d.timer = d.clk.AfterFunc(d.clk.Until(t), func() {
		close(expired)
	})
}

func (d *deadline) wait() <-chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.expired
}

func isClosed(c <-chan struct{}) bool {
	select {
	case <-c:
		return true
	default:
		return false
	}
}

// Listener hands out the server halves of dialed pipe pairs.
type Listener struct {
	clk clock.Clock

	addr     Addr
	incoming chan transport.Conn
	closed   chan struct{}
	once     sync.Once
}

var _ transport.ConnListener = (*Listener)(nil)

func NewListener(name string, clk clock.Clock) *Listener {
	return &Listener{
		clk:      clk,
		addr:     Addr{Name: name},
		incoming: make(chan transport.Conn),
		closed:   make(chan struct{}),
	}
}

// Dial creates a pair, queues the server half for Accept, and returns the
// client half.
func (l *Listener) Dial(ctx context.Context) (transport.Conn, error) {
	client, server := Pair("client", l.addr.Name, l.clk)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-l.closed:
		return nil, transport.ErrConnListenerClosed
	case l.incoming <- server:
		return client, nil
	}
}

func (l *Listener) Accept(ctx context.Context) (transport.Conn, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-l.closed:
		return nil, transport.ErrConnListenerClosed
	case conn := <-l.incoming:
		return conn, nil
	}
}

func (l *Listener) Close() error {
	l.once.Do(func() { close(l.closed) })
	return nil
}
