// Package cli implements the interactive paywall CLI.
//
// The REPL loop (see App.Root) reads commands from stdin, authenticates
// against the paywall proxy and lets the user validate the issued session
// key per product. Network access goes through the client.Client interface
// so tests can substitute a fake.
package cli
