package http

import (
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// Status codes this engine knows a reason phrase for.
// Reference: https://datatracker.ietf.org/doc/html/rfc9110#section-15
var statusText = map[uint]string{
	100: "Continue",
	101: "Switching Protocols",
	102: "Processing",
	103: "Early Hints",

	200: "OK",
	201: "Created",
	202: "Accepted",
	203: "Non-Authoritative Information",
	204: "No Content",
	205: "Reset Content",
	206: "Partial Content",
	207: "Multi-Status",
	208: "Already Reported",
	226: "IM Used",

	300: "Multiple Choices",
	301: "Moved Permanently",
	302: "Found",
	303: "See Other",
	304: "Not Modified",
	307: "Temporary Redirect",
	308: "Permanent Redirect",

	400: "Bad Request",
	401: "Unauthorized",
	403: "Forbidden",
	404: "Not Found",
	405: "Method Not Allowed",
	406: "Not Acceptable",
	407: "Proxy Authentication Required",
	408: "Request Timeout",
	409: "Conflict",
	410: "Gone",
	411: "Length Required",
	412: "Precondition Failed",
	413: "Payload Too Large",
	414: "URI Too Long",
	415: "Unsupported Media Type",
	416: "Range Not Satisfiable",
	417: "Expectation Failed",
	418: "I'm a teapot",
	421: "Misdirected Request",
	422: "Unprocessable Content",
	423: "Locked",
	424: "Failed Dependency",
	426: "Upgrade Required",
	428: "Precondition Required",
	429: "Too Many Requests",
	431: "Request Header Fields Too Large",
	451: "Unavailable For Legal Reasons",

	500: "Internal Server Error",
	501: "Not Implemented",
	502: "Bad Gateway",
	503: "Service Unavailable",
	504: "Gateway Timeout",
	505: "HTTP Version Not Supported",
	506: "Variant Also Negotiates",
	507: "Insufficient Storage",
	508: "Loop Detected",
	510: "Not Extended",
	511: "Network Authentication Required",
}

// Reason returns the reason phrase for code, or "Unknown Code".
func Reason(code uint) string {
	if reason, ok := statusText[code]; ok {
		return reason
	}
	return "Unknown Code"
}

// NewResponse builds a response from a byte source of known length. The
// reason phrase comes from the status table and Content-Length is set to
// length; the caller keeps header/body consistency from there.
func NewResponse(ver Version, code uint, body io.Reader, length uint64) (*Response, error) {
	buf := make([]byte, length)
	if _, err := io.ReadFull(body, buf); err != nil {
		return nil, errors.Wrap(err, "reading response body")
	}

	return &Response{
		Version: ver,
		Status:  code,
		Reason:  Reason(code),
		Headers: Headers{"Content-Length": strconv.FormatUint(length, 10)},
		Body:    buf,
	}, nil
}
