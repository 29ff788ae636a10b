package http

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReason(t *testing.T) {
	assert.Equal(t, "OK", Reason(200))
	assert.Equal(t, "Not Found", Reason(404))
	assert.Equal(t, "Bad Request", Reason(400))
	assert.Equal(t, "Internal Server Error", Reason(500))
	assert.Equal(t, "Unknown Code", Reason(299))
}

func TestNewResponse(t *testing.T) {
	body := "<html>missing</html>"

	res, err := NewResponse(Version11, 404, strings.NewReader(body), uint64(len(body)))
	require.NoError(t, err)

	assert.Equal(t, uint(404), res.Status)
	assert.Equal(t, "Not Found", res.Reason)
	assert.Equal(t, body, string(res.Body))

	v, ok := res.Headers.Get("Content-Length")
	require.True(t, ok)
	assert.Equal(t, "20", v)
}

func TestNewResponseShortSource(t *testing.T) {
	_, err := NewResponse(Version11, 200, strings.NewReader("abc"), 10)
	assert.Error(t, err)
}

func TestNewResponseUnknownCode(t *testing.T) {
	res, err := NewResponse(Version11, 299, strings.NewReader(""), 0)
	require.NoError(t, err)
	assert.Equal(t, "Unknown Code", res.Reason)
}
