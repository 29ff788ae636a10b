// Package http implements HTTP/1.1 message framing: a typed value model for
// requests and responses, a streaming decoder, an encoder, and the adapters
// binding them to a duplex byte stream.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc9112
package http

import (
	"github.com/pkg/errors"
)

// Method is a request method token. Only the canonical tokens below parse;
// nothing is case-folded or trimmed.
type Method string

const (
	MethodGet     Method = "GET"
	MethodHead    Method = "HEAD"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodDelete  Method = "DELETE"
	MethodConnect Method = "CONNECT"
	MethodOptions Method = "OPTIONS"
	MethodTrace   Method = "TRACE"
	MethodPatch   Method = "PATCH"
)

var ErrUnknownMethod = errors.New("unknown method token")

// ParseMethod matches token against the canonical method tokens, exactly and
// case-sensitively.
func ParseMethod(token string) (Method, error) {
	switch m := Method(token); m {
	case MethodGet, MethodHead, MethodPost, MethodPut, MethodDelete,
		MethodConnect, MethodOptions, MethodTrace, MethodPatch:
		return m, nil
	}

	return "", errors.Wrapf(ErrUnknownMethod, "%q", token)
}

func (m Method) Token() string { return string(m) }

// Version is a protocol version label. Only HTTP/1.1 framing is implemented;
// the other tokens exist so their start lines still parse.
type Version string

const (
	Version11 Version = "HTTP/1.1"
	Version2  Version = "HTTP/2"
	Version3  Version = "HTTP/3"
)

var ErrUnknownVersion = errors.New("unknown version token")

func ParseVersion(token string) (Version, error) {
	switch v := Version(token); v {
	case Version11, Version2, Version3:
		return v, nil
	}

	return "", errors.Wrapf(ErrUnknownVersion, "%q", token)
}

func (v Version) Token() string { return string(v) }

// Headers maps field names to values, both kept exactly as they appeared on
// the wire. Decoding keeps the last value when a name repeats. Iteration
// order is unspecified; encoding emits every entry.
type Headers map[string]string

func (h Headers) Get(name string) (value string, ok bool) {
	value, ok = h[name]
	return
}

func (h Headers) Set(name, value string) { h[name] = value }

type Request struct {
	Method   Method
	Resource string // as sent: not normalized, not percent-decoded.
	Version  Version
	Headers  Headers
	Body     []byte
}

type Response struct {
	Version Version
	Status  uint
	Reason  string
	Headers Headers
	Body    []byte
}

// Message is a decoded HTTP message: either *Request or *Response, decided by
// the decoder from the shape of the start line.
type Message interface {
	WireFormat() []byte

	message()
}

func (*Request) message()  {}
func (*Response) message() {}
