// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the contentgate server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the public HTTP endpoint.
//   - SessionTimeout: how long an issued session token stays valid.
//   - SeedFile: path to a YAML account table; empty means the built-in
//     development seed.
type Config struct {
	EndpointAddrHTTP string
	SessionTimeout   time.Duration
	SeedFile         string
}

// LoadDefaults populates Config with development defaults. The session
// timeout is intentionally short so expiry edge cases surface often during
// development.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.SessionTimeout = 2 * time.Hour
	c.SeedFile = ""
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
