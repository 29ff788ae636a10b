package server

import (
	"context"

	"minhttp/http"
	"minhttp/transport"
)

// HandleFunc turns one decoded request into the response to send. Policy
// failures must come back as well-formed responses (a missing file is a 404,
// not an error); returning nil tears the connection down.
type HandleFunc func(c *HandleContext, req *http.Request) *http.Response

type HandleContext struct {
	ctx        context.Context
	remoteAddr transport.Addr
}

func (c *HandleContext) Context() context.Context   { return c.ctx }
func (c *HandleContext) RemoteAddr() transport.Addr { return c.remoteAddr }
