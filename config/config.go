// Package config loads the JSON runtime settings for the regui host.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"
)

const (
	defaultAddr       = "127.0.0.1"
	defaultPort       = ":8880"
	defaultBackendURL = "http://127.0.0.1:8080"
)

// ServerConfig configures the HTTP listener used by regui.
type ServerConfig struct {
	Addr string `json:"addr"`
	Port string `json:"port"`
}

// BackendConfig points at the registration service that owns
// /list-participants, /start-watch, /google-sheets and /read-startlista.
type BackendConfig struct {
	URL string `json:"url"`
}

// Config represents the combined runtime settings parsed from config.json.
type Config struct {
	Server  ServerConfig  `json:"server"`
	Backend BackendConfig `json:"backend"`
}

type fileConfig struct {
	ServerBlock  *ServerConfig  `json:"server"`
	BackendBlock *BackendConfig `json:"backend"`
	Addr         string         `json:"addr"`
	Port         string         `json:"port"`
	BackendURL   string         `json:"backend_url"`
}

// Load reads the JSON config at the given path and applies defaults for
// anything left blank.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var raw fileConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	server := ServerConfig{Addr: raw.Addr, Port: raw.Port}
	if raw.ServerBlock != nil {
		server = *raw.ServerBlock
		if server.Addr == "" {
			server.Addr = raw.Addr
		}
		if server.Port == "" {
			server.Port = raw.Port
		}
	}
	if server.Addr == "" {
		server.Addr = defaultAddr
	}
	if server.Port == "" {
		server.Port = defaultPort
	}

	backend := BackendConfig{URL: raw.BackendURL}
	if raw.BackendBlock != nil && strings.TrimSpace(raw.BackendBlock.URL) != "" {
		backend = *raw.BackendBlock
	}
	backend.URL = strings.TrimSpace(backend.URL)
	if backend.URL == "" {
		backend.URL = defaultBackendURL
	}
	if _, err := backend.ParsedURL(); err != nil {
		return Config{}, err
	}

	return Config{Server: server, Backend: backend}, nil
}

// Default returns the settings used when no config file is present.
func Default() Config {
	return Config{
		Server:  ServerConfig{Addr: defaultAddr, Port: defaultPort},
		Backend: BackendConfig{URL: defaultBackendURL},
	}
}

// ParsedURL validates the backend URL and returns it parsed.
func (b BackendConfig) ParsedURL() (*url.URL, error) {
	u, err := url.Parse(b.URL)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend url %q must use http or https", b.URL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("backend url %q has no host", b.URL)
	}
	return u, nil
}
