package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		name     string
		args     []string
		expected *Config
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-a", "127.0.0.1:9090", "-t", "120", "-f", "accounts.yaml"},
			expected: &Config{
				EndpointAddrHTTP: "127.0.0.1:9090",
				SessionTimeout:   120 * time.Minute,
				SeedFile:         "accounts.yaml",
			},
		},
		{
			name: "unrelated flags ignored",
			args: []string{"cmd", "-a", ":9999", "-x", "whatever", "-t", "30"},
			expected: &Config{
				EndpointAddrHTTP: ":9999",
				SessionTimeout:   30 * time.Minute,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Equal(t, tt.expected, config)
		})
	}
}
