// Package config loads rawcurl settings from a YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"github.com/nczempin/rawcurl/logging"
	"github.com/nczempin/rawcurl/protocol"
	"github.com/nczempin/rawcurl/transport"
)

// EnvPath names the environment variable that overrides the config location.
const EnvPath = "RAWCURL_CONFIG"

// Config holds everything outside the request itself.
type Config struct {
	Transport       string `yaml:"transport"`
	UnixSocket      string `yaml:"unix_socket"`
	ReadChunkSize   int    `yaml:"read_chunk_size"`
	MaxResponseSize int    `yaml:"max_response_size"`
	LogLevel        string `yaml:"log_level"`
	LogFormat       string `yaml:"log_format"`
}

// Default returns the settings used when no file exists.
func Default() Config {
	return Config{
		Transport:       string(transport.KindTcp),
		ReadChunkSize:   protocol.DefaultReadChunkSize,
		MaxResponseSize: 0,
		LogLevel:        "warn",
		LogFormat:       "text",
	}
}

// DefaultPath resolves the config file location.
func DefaultPath() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "rawcurl", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "rawcurl", "config.yaml")
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err = Parse(data)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks field values and combinations.
func (c Config) Validate() error {
	kind, err := transport.ParseKind(c.Transport)
	if err != nil {
		return err
	}
	if kind == transport.KindUnix && c.UnixSocket == "" {
		return fmt.Errorf("transport %q requires unix_socket", kind)
	}
	if c.ReadChunkSize <= 0 {
		return fmt.Errorf("read_chunk_size must be positive, got %d", c.ReadChunkSize)
	}
	if c.MaxResponseSize < 0 {
		return fmt.Errorf("max_response_size must not be negative, got %d", c.MaxResponseSize)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log_format %q", c.LogFormat)
	}
	return nil
}

// TransportKind returns the validated transport kind.
func (c Config) TransportKind() transport.Kind {
	kind, err := transport.ParseKind(c.Transport)
	if err != nil {
		return transport.KindTcp
	}
	return kind
}

// Logging converts the log settings into a logger configuration.
func (c Config) Logging() logging.Config {
	lc := logging.DefaultConfig()
	if level, err := logging.ParseLevel(c.LogLevel); err == nil {
		lc.Level = level
	}
	lc.JSON = c.LogFormat == "json"
	return lc
}
