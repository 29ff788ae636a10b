package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T, content string) (*Config, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "minhttp.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return Load(path)
}

func TestLoad(t *testing.T) {
	cfg, err := load(t, `
[[server]]
root = "/srv/www"
host = "example.com"

[server.http]
address = "0.0.0.0"
port = 8080

[server.https]
port = 8443
cert = "certs/example.pem"
key = "certs/example.key"

[[server]]
root = "/srv/other"
host = "other.example"

[server.http]
port = 80
`)
	require.NoError(t, err)
	require.Len(t, cfg.Servers, 2)

	first := cfg.Servers[0]
	assert.Equal(t, "/srv/www", first.Root)
	assert.Equal(t, "example.com", first.Host)
	require.NotNil(t, first.HTTP)
	assert.Equal(t, "0.0.0.0:8080", first.HTTP.Addr())
	require.NotNil(t, first.HTTPS)
	assert.Equal(t, "127.0.0.1:8443", first.HTTPS.Addr())
	assert.Equal(t, "certs/example.pem", first.HTTPS.Cert)
	assert.Equal(t, "certs/example.key", first.HTTPS.Key)

	second := cfg.Servers[1]
	assert.Nil(t, second.HTTPS)
	assert.Equal(t, "127.0.0.1:80", second.HTTP.Addr())
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(t, `
[[server]]
root = "."
host = "localhost"

[server.http]

[server.https]
cert = "c.pem"
key = "k.pem"
`)
	require.NoError(t, err)
	require.Len(t, cfg.Servers, 1)

	sc := cfg.Servers[0]
	assert.Equal(t, "127.0.0.1:80", sc.HTTP.Addr())
	assert.Equal(t, "127.0.0.1:443", sc.HTTPS.Addr())
}

func TestLoadNoListeners(t *testing.T) {
	cfg, err := load(t, `
[[server]]
root = "."
host = "localhost"
`)
	require.NoError(t, err)
	assert.Nil(t, cfg.Servers[0].HTTP)
	assert.Nil(t, cfg.Servers[0].HTTPS)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)

	_, err = load(t, `[[server]`)
	assert.Error(t, err)
}
