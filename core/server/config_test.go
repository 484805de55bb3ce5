package server_test

import (
	"testing"

	"duplicate-monitor/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_ResolvePort(t *testing.T) {
	tests := []struct {
		name    string
		envPort string
		cfgPort string
		want    string
	}{
		{"Default", "", "", "5000"},
		{"Configured", "", "9090", "9090"},
		{"EnvOverride", "8080", "5000", "8080"},
		{"EnvOverridesConfigured", "8080", "9090", "8080"},
		{"EmptyEnvIgnored", "", "5000", "5000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PORT", tt.envPort)
			c := server.Config{Port: tt.cfgPort}
			assert.Equal(t, tt.want, c.ResolvePort())
		})
	}
}

func TestConfig_Addr(t *testing.T) {
	t.Setenv("PORT", "")

	c := server.Config{Host: "0.0.0.0", Port: "5000"}
	assert.Equal(t, "0.0.0.0:5000", c.Addr())

	t.Setenv("PORT", "8080")
	assert.Equal(t, "0.0.0.0:8080", c.Addr())
}
