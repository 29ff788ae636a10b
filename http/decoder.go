package http

import (
	"io"
	"strconv"
	"strings"

	iolib "minhttp/lib/io"

	"github.com/pkg/errors"
)

// Decode errors, kept distinct so the connection loop can tell a peer that
// went away from a peer that sent garbage.
var (
	ErrConnectionClosed       = errors.New("connection closed by peer")
	ErrMalformedStartLine     = errors.New("malformed start line")
	ErrMalformedHeader        = errors.New("malformed header line")
	ErrMalformedContentLength = errors.New("malformed Content-Length value")
)

// MessageDecoder consumes a byte stream and produces one Message per Decode
// call. It owns all read buffering for the stream.
type MessageDecoder struct {
	r *iolib.UntilReader
}

func NewMessageDecoder(r io.Reader) *MessageDecoder {
	return &MessageDecoder{r: iolib.NewUntilReader(r)}
}

// Decode reads exactly one message.
//
// The message kind follows from the first start-line token: a Method token
// framed as a request, a Version token as a response. A resource path that
// literally equals a version token would misclassify; token shape is all the
// framing offers, so that limitation stands.
func (d *MessageDecoder) Decode() (Message, error) {
	line, err := d.readLine()
	if err != nil {
		return nil, err
	}

	start, err := parseStartLine(line)
	if err != nil {
		return nil, err
	}

	headers, err := d.readHeaders()
	if err != nil {
		return nil, err
	}

	body, err := d.readBody(headers)
	if err != nil {
		return nil, err
	}

	if start.isRequest {
		return &Request{
			Method:   start.method,
			Resource: start.resource,
			Version:  start.version,
			Headers:  headers,
			Body:     body,
		}, nil
	}

	return &Response{
		Version: start.version,
		Status:  start.status,
		Reason:  start.reason,
		Headers: headers,
		Body:    body,
	}, nil
}

// readLine returns the next line with its terminator stripped. Lines end at
// LF; a CR right before the LF is dropped, so CRLF and bare LF both delimit.
// End of stream maps to ErrConnectionClosed, whether it lands on a message
// boundary or cuts a line short.
func (d *MessageDecoder) readLine() (string, error) {
	b, err := d.r.ReadUntilByte('\n')
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return "", ErrConnectionClosed
		}
		return "", errors.Wrap(err, "reading line")
	}

	b = b[:len(b)-1]
	if len(b) > 0 && b[len(b)-1] == '\r' {
		b = b[:len(b)-1]
	}

	return string(b), nil
}

func (d *MessageDecoder) readHeaders() (Headers, error) {
	headers := make(Headers)
	for {
		line, err := d.readLine()
		if err != nil {
			return nil, err
		}

		if len(line) == 0 {
			// Blank line ends the header block.
			return headers, nil
		}

		name, value, found := strings.Cut(line, ": ")
		if !found {
			return nil, errors.Wrapf(ErrMalformedHeader, "%q", line)
		}

		// Last write wins on duplicate names.
		headers[name] = value
	}
}

// readBody reads exactly Content-Length bytes, or nothing when the header is
// absent. A stream that ends mid-body is an I/O failure, not a parse error.
func (d *MessageDecoder) readBody(headers Headers) ([]byte, error) {
	value, ok := headers.Get("Content-Length")
	if !ok {
		return nil, nil
	}

	length, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedContentLength, "%q", value)
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(d.r, body); err != nil {
		return nil, errors.Wrap(err, "reading message body")
	}

	return body, nil
}

type startLine struct {
	version Version

	isRequest bool

	// Request fields.
	method   Method
	resource string

	// Response fields.
	status uint
	reason string
}

// parseStartLine splits line on its first two spaces and classifies it. The
// third field absorbs any remaining spaces so reason phrases survive.
func parseStartLine(line string) (startLine, error) {
	parts := strings.SplitN(line, " ", 3)
	if len(parts) != 3 {
		return startLine{}, errors.Wrapf(ErrMalformedStartLine, "%q", line)
	}

	if method, err := ParseMethod(parts[0]); err == nil {
		ver, err := ParseVersion(parts[2])
		if err != nil {
			return startLine{}, errors.Wrapf(ErrMalformedStartLine, "bad version in %q", line)
		}

		return startLine{
			isRequest: true,
			method:    method,
			resource:  parts[1],
			version:   ver,
		}, nil
	}

	if ver, err := ParseVersion(parts[0]); err == nil {
		status, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			return startLine{}, errors.Wrapf(ErrMalformedStartLine, "bad status code in %q", line)
		}

		return startLine{
			version: ver,
			status:  uint(status),
			reason:  parts[2],
		}, nil
	}

	// Neither a method nor a version; never guessed.
	return startLine{}, errors.Wrapf(ErrMalformedStartLine, "%q", line)
}
