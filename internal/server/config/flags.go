package config

import (
	"flag"
	"os"
	"time"

	"github.com/contentgate/contentgate/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-t int      session timeout, minutes
//	-f string   path to the YAML account seed file
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. The timeout
// flag is accepted as an integer in minutes and converted to a
// time.Duration.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-f"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.SeedFile, "f", config.SeedFile, "path to YAML account seed file")

	sessionTimeout := fs.Int("t", int(config.SessionTimeout.Minutes()), "session timeout (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionTimeout = time.Duration(*sessionTimeout) * time.Minute
}
