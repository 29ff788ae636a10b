package iolib

import (
	"bytes"
	"io"
)

// UntilReader buffers reads from r so that delimiter-bounded reads and raw
// reads can be interleaved on the same stream. Bytes fetched past a delimiter
// are kept and served by the next call.
type UntilReader struct {
	r   io.Reader
	buf bytes.Buffer
}

func NewUntilReader(r io.Reader) *UntilReader {
	return &UntilReader{r: r}
}

func (ur *UntilReader) Read(p []byte) (n int, err error) {
	if ur.buf.Len() > 0 {
		n, _ = ur.buf.Read(p)
		return n, nil
	}

	return ur.r.Read(p)
}

// ReadUntilByte reads until delim and returns everything read, delim
// included. If the underlying reader fails first, the bytes collected so far
// are returned along with its error.
func (ur *UntilReader) ReadUntilByte(delim byte) ([]byte, error) {
	var out []byte
	for {
		b, err := ur.buf.ReadBytes(delim)
		out = append(out, b...)
		if err == nil {
			return out, nil
		}

		tmp := make([]byte, 512)
		n, rerr := ur.r.Read(tmp)
		ur.buf.Write(tmp[:n])

		if rerr != nil {
			// The last read may still have completed the line.
			b, err := ur.buf.ReadBytes(delim)
			out = append(out, b...)
			if err == nil {
				return out, nil
			}
			return out, rerr
		}
	}
}
