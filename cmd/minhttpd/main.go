// minhttpd serves static file trees over HTTP/1.1, plain or TLS, as
// described by a minhttp.toml configuration.
package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"minhttp/config"
	"minhttp/fileserve"
	"minhttp/server"
	"minhttp/transport"
	"minhttp/transport/tcp"
	tlswrap "minhttp/transport/tls"

	"github.com/benbjohnson/clock"
)

func main() {
	configPath := flag.String("config", "minhttp.toml", "path to the server configuration")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	servers := startServers(cfg, logger)
	if len(servers) == 0 {
		logger.Error("no servers could be started")
		os.Exit(1)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	logger.Info("shutting down")
	for _, srv := range servers {
		if err := srv.Close(); err != nil {
			logger.Error("error while closing server", "error", err)
		}
	}
}

func startServers(cfg *config.Config, logger *slog.Logger) []*server.Server {
	clk := clock.New()

	var servers []*server.Server
	for _, sc := range cfg.Servers {
		if sc.HTTP == nil && sc.HTTPS == nil {
			logger.Warn("server has no listeners configured", "host", sc.Host)
			continue
		}

		if sc.HTTP != nil {
			l, err := tcp.Listen(sc.HTTP.Addr())
			if err != nil {
				logger.Error("failed to listen", "addr", sc.HTTP.Addr(), "error", err)
				continue
			}

			servers = append(servers, startServer(
				l, logger, clk, sc.Root, sc.Host, sc.HTTP.Port, sc.HTTP.Addr(),
			))
		}

		if sc.HTTPS != nil {
			provider, err := tlswrap.NewProvider(sc.HTTPS.Cert, sc.HTTPS.Key)
			if err != nil {
				logger.Error("failed to load TLS key pair", "host", sc.Host, "error", err)
				continue
			}

			l, err := provider.Listen(sc.HTTPS.Addr())
			if err != nil {
				logger.Error("failed to listen", "addr", sc.HTTPS.Addr(), "error", err)
				continue
			}

			servers = append(servers, startServer(
				l, logger, clk, sc.Root, sc.Host, sc.HTTPS.Port, sc.HTTPS.Addr(),
			))
		}
	}

	return servers
}

func startServer(
	l transport.ConnListener,
	logger *slog.Logger,
	clk clock.Clock,
	root, host string,
	port uint16,
	addr string,
) *server.Server {
	site := fileserve.New(root, host, port, logger)

	srv := server.New(l, logger.With("listen", addr), clk, site.Handle, server.Options{})
	srv.Start()

	logger.Info("listening", "addr", addr, "host", host, "root", root)

	return srv
}
