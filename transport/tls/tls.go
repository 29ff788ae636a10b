// Package tls upgrades accepted sockets to TLS sessions. The HTTP engine
// only ever sees the resulting duplex stream; certificates and cipher state
// stay in here.
package tls

import (
	tls "crypto/tls"
	"net"

	"minhttp/transport"
	"minhttp/transport/tcp"

	"github.com/pkg/errors"
)

type Provider struct {
	config *tls.Config
}

// NewProvider loads a certificate/key pair from disk.
func NewProvider(certFile, keyFile string) (*Provider, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, errors.Wrap(err, "loading key pair")
	}

	return &Provider{
		config: &tls.Config{Certificates: []tls.Certificate{cert}},
	}, nil
}

// Server wraps an accepted socket. The handshake runs lazily on first use.
func (p *Provider) Server(nc net.Conn) transport.Conn {
	return tcp.Wrap(tls.Server(nc, p.config))
}

// Listen opens a TCP listener whose accepted connections speak TLS.
func (p *Provider) Listen(addr string) (*tcp.Listener, error) {
	l, err := tls.Listen("tcp", addr, p.config)
	if err != nil {
		return nil, errors.Wrapf(err, "listening on %s", addr)
	}

	return tcp.WrapListener(l), nil
}
