package http

import (
	"bytes"
	"strconv"
)

// WireFormat serializes the request: request line, header block, blank line,
// body verbatim.
func (r *Request) WireFormat() []byte {
	var buf bytes.Buffer

	buf.WriteString(r.Method.Token())
	buf.WriteByte(' ')
	buf.WriteString(r.Resource)
	buf.WriteByte(' ')
	buf.WriteString(r.Version.Token())
	buf.WriteString("\r\n")

	appendHeaders(&buf, r.Headers)
	buf.Write(r.Body)

	return buf.Bytes()
}

// WireFormat serializes the response. Content-Length is emitted as stored;
// nothing is recomputed from the body.
func (r *Response) WireFormat() []byte {
	var buf bytes.Buffer

	buf.WriteString(r.Version.Token())
	buf.WriteByte(' ')
	buf.WriteString(strconv.FormatUint(uint64(r.Status), 10))
	buf.WriteByte(' ')
	buf.WriteString(r.Reason)
	buf.WriteString("\r\n")

	appendHeaders(&buf, r.Headers)
	buf.Write(r.Body)

	return buf.Bytes()
}

func appendHeaders(buf *bytes.Buffer, headers Headers) {
	for name, value := range headers {
		buf.WriteString(name)
		buf.WriteString(": ")
		buf.WriteString(value)
		buf.WriteString("\r\n")
	}

	buf.WriteString("\r\n")
}
