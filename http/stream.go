package http

import (
	"io"

	"github.com/pkg/errors"
)

// Reader decodes messages from the read half of a stream.
type Reader struct {
	dec *MessageDecoder
}

func NewReader(r io.Reader) *Reader {
	return &Reader{dec: NewMessageDecoder(r)}
}

func (r *Reader) ReadMessage() (Message, error) {
	return r.dec.Decode()
}

// Writer encodes messages onto the write half of a stream. A message is
// serialized first and handed to the stream in a single Write call; a short
// write is fatal to the connection rather than retried.
type Writer struct {
	w io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) WriteMessage(m Message) error {
	raw := m.WireFormat()

	n, err := w.w.Write(raw)
	if err != nil {
		return errors.Wrap(err, "writing message")
	}
	if n < len(raw) {
		return errors.Errorf("short write: %d of %d bytes", n, len(raw))
	}

	return nil
}

// Split binds a duplex stream to one Reader and one Writer. The halves hold
// disjoint capability over rw: all read buffering lives in the Reader, the
// Writer only ever calls Write, so a connection loop can interleave them
// without synchronization.
func Split(rw io.ReadWriter) (*Reader, *Writer) {
	return NewReader(rw), NewWriter(rw)
}
