// Package fileserve is the response policy behind the connection loop: it
// maps decoded requests onto a static file tree for one configured host.
package fileserve

import (
	"log/slog"
	"os"
	"strconv"

	"minhttp/http"
	"minhttp/server"

	"github.com/pkg/errors"
)

// Site serves files for one host, rooted at a directory. Error pages live
// under <root>/.errors/<code>.html.
type Site struct {
	root string
	host string
	port uint16

	logger *slog.Logger
}

func New(root, host string, port uint16, logger *slog.Logger) *Site {
	return &Site{root: root, host: host, port: port, logger: logger}
}

// Handle implements server.HandleFunc. Lookup failures become status
// responses, never errors: a missing file is a normal protocol outcome.
func (s *Site) Handle(c *server.HandleContext, req *http.Request) *http.Response {
	host, ok := req.Headers.Get("Host")
	if !ok || !s.hostMatches(host) {
		return s.errorPage(400)
	}

	resource := req.Resource

	info, err := os.Stat(s.path(resource))
	if err != nil {
		return s.errorPage(404)
	}

	if info.IsDir() {
		resource += "/index.html"
	}

	res, err := serveFile(200, s.path(resource))
	if err != nil {
		return s.errorPage(404)
	}

	return res
}

// hostMatches accepts the bare host or host:port forms.
func (s *Site) hostMatches(host string) bool {
	return host == s.host ||
		host == s.host+":"+strconv.FormatUint(uint64(s.port), 10)
}

// path joins the resource onto the root. Resources arrive raw; whatever the
// path says is looked up verbatim.
func (s *Site) path(resource string) string {
	return s.root + "/" + resource
}

// errorPage serves the configured page for code. When the page itself is
// missing the response degrades to an empty body, so a policy failure still
// produces well-formed HTTP.
func (s *Site) errorPage(code uint) *http.Response {
	name := s.path(".errors/" + strconv.FormatUint(uint64(code), 10) + ".html")

	res, err := serveFile(code, name)
	if err != nil {
		s.logger.Warn("error page not servable", "code", code, "error", err)
		return &http.Response{
			Version: http.Version11,
			Status:  code,
			Reason:  http.Reason(code),
			Headers: http.Headers{"Content-Length": "0"},
		}
	}

	return res
}

// serveFile builds a response from a file, sizing Content-Length from its
// metadata.
func serveFile(code uint, name string) (*http.Response, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "inspecting file")
	}

	res, err := http.NewResponse(http.Version11, code, f, uint64(info.Size()))
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	return res, nil
}
