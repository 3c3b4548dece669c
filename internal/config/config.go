// Package config loads the client configuration file.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lawnchairsociety/mcpi/connection"
	"github.com/lawnchairsociety/mcpi/internal/journal"
)

// Transport names accepted in ServerConfig.Transport.
const (
	TransportTCP       = "tcp"
	TransportWebSocket = "websocket"
)

// ClientConfig holds everything the mcpi tool reads from its config file.
type ClientConfig struct {
	Server     ServerConfig     `yaml:"server"`
	Connection ConnectionConfig `yaml:"connection"`
	Journal    JournalConfig    `yaml:"journal"`

	// Palette is an optional YAML file of named blocks.
	Palette string `yaml:"palette"`
}

// ServerConfig says where the game is.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`

	// Transport is "tcp" (default) or "websocket".
	Transport string `yaml:"transport"`

	// Path is the URL path of a WebSocket bridge.
	Path string `yaml:"path"`
}

// ConnectionConfig tunes the request/response layer.
type ConnectionConfig struct {
	AutoFlush        bool          `yaml:"auto_flush"`
	DrainBeforeQuery bool          `yaml:"drain_before_query"`
	DrainWindow      time.Duration `yaml:"drain_window"`
	DialTimeout      time.Duration `yaml:"dial_timeout"`
}

// JournalConfig enables recording of sent commands.
type JournalConfig struct {
	Enabled        bool `yaml:"enabled"`
	journal.Config `yaml:",inline"`
}

// DefaultConfig returns a ClientConfig for a game on the local machine.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		Server: ServerConfig{
			Host:      "127.0.0.1",
			Port:      4711,
			Transport: TransportTCP,
		},
		Connection: ConnectionConfig{
			AutoFlush:   true,
			DrainWindow: connection.DefaultDrainWindow,
			DialTimeout: 5 * time.Second,
		},
		Journal: JournalConfig{
			Config: journal.DefaultConfig("data/journal.db"),
		},
	}
}

// LoadConfig loads configuration from a YAML file. A missing file yields
// the defaults. Environment overrides are applied last.
func LoadConfig(path string) (*ClientConfig, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return cfg, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return DefaultConfig(), fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// applyEnv reads MCPI_HOST, MCPI_PORT and MCPI_TRANSPORT.
func (c *ClientConfig) applyEnv() error {
	if host := os.Getenv("MCPI_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("MCPI_PORT"); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("MCPI_PORT: %w", err)
		}
		c.Server.Port = n
	}
	if transport := os.Getenv("MCPI_TRANSPORT"); transport != "" {
		c.Server.Transport = strings.ToLower(transport)
	}
	return nil
}

// Validate checks the settings that cannot be defaulted.
func (c *ClientConfig) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	switch c.Server.Transport {
	case TransportTCP, TransportWebSocket:
	default:
		return fmt.Errorf("unknown transport %q", c.Server.Transport)
	}
	if c.Connection.DrainWindow < 0 {
		return fmt.Errorf("drain window must not be negative")
	}
	if c.Connection.DialTimeout <= 0 {
		return fmt.Errorf("dial timeout must be positive, got %v", c.Connection.DialTimeout)
	}
	return nil
}

// Address renders the dial address: host:port for TCP or a ws:// URL.
func (c *ClientConfig) Address() string {
	hostPort := net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
	if c.Server.Transport != TransportWebSocket {
		return hostPort
	}
	path := c.Server.Path
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return "ws://" + hostPort + path
}

// ConnectionOptions converts the connection settings to connection options.
func (c *ClientConfig) ConnectionOptions() []connection.Option {
	return []connection.Option{
		connection.WithAutoFlush(c.Connection.AutoFlush),
		connection.WithDrainBeforeQuery(c.Connection.DrainBeforeQuery),
		connection.WithDrainWindow(c.Connection.DrainWindow),
	}
}
