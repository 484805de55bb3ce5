package server

import (
	"net"
	"os"
)

// DefaultPort is the port the broker binds when nothing else is configured.
const DefaultPort = "5000"

// Config holds configuration for the HTTP server.
type Config struct {
	// Host is the interface the server binds to.
	Host string `mapstructure:"host" default:"0.0.0.0"`
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"5000"`
	// ApiKey is the secret key required to access the API. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
}

// ResolvePort returns the port the server should bind.
//
// A bare PORT environment variable (the convention of PaaS platforms such as
// Render or Heroku) wins over the configured value. The result is resolved once
// at startup and passed explicitly to the listener; nothing deeper in the stack
// reads the environment.
func (c Config) ResolvePort() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	if c.Port != "" {
		return c.Port
	}
	return DefaultPort
}

// Addr returns the host:port address to listen on, with PORT resolution applied.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.ResolvePort())
}
