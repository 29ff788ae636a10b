// Package config loads the minhttp.toml server configuration.
package config

import (
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

const (
	DefaultAddress   = "127.0.0.1"
	DefaultHTTPPort  = 80
	DefaultHTTPSPort = 443
)

type Config struct {
	Servers []ServerConfig `toml:"server"`
}

// ServerConfig describes one virtual server: a document root, the host it
// answers for, and up to two listeners.
type ServerConfig struct {
	Root  string        `toml:"root"`
	Host  string        `toml:"host"`
	HTTP  *ListenConfig `toml:"http"`
	HTTPS *TLSConfig    `toml:"https"`
}

type ListenConfig struct {
	Address string `toml:"address"`
	Port    uint16 `toml:"port"`
}

func (l ListenConfig) Addr() string {
	return l.Address + ":" + portString(l.Port)
}

type TLSConfig struct {
	Address string `toml:"address"`
	Port    uint16 `toml:"port"`
	Cert    string `toml:"cert"`
	Key     string `toml:"key"`
}

func (t TLSConfig) Addr() string {
	return t.Address + ":" + portString(t.Port)
}

// Load reads and decodes a TOML config file, filling in default addresses
// and ports.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}

	var cfg Config
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}

	for i := range cfg.Servers {
		applyDefaults(&cfg.Servers[i])
	}

	return &cfg, nil
}

func applyDefaults(sc *ServerConfig) {
	if sc.HTTP != nil {
		if sc.HTTP.Address == "" {
			sc.HTTP.Address = DefaultAddress
		}
		if sc.HTTP.Port == 0 {
			sc.HTTP.Port = DefaultHTTPPort
		}
	}
	if sc.HTTPS != nil {
		if sc.HTTPS.Address == "" {
			sc.HTTPS.Address = DefaultAddress
		}
		if sc.HTTPS.Port == 0 {
			sc.HTTPS.Port = DefaultHTTPSPort
		}
	}
}

func portString(port uint16) string {
	return strconv.FormatUint(uint64(port), 10)
}
