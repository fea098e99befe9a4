package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	s := ""
	if a.userName != "" {
		s = a.userName
	}
	if a.hasSession() {
		s = s + " session"
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to the paywall CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("pwcli %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			fmt.Println("Available commands: auth <product>, validate <product>, products, ping, logout, exit")

		case "auth":
			if len(args) == 0 {
				fmt.Println("Usage: auth <product>")
				continue
			}
			a.Auth(ctx, args[0])
		case "validate":
			if len(args) == 0 {
				fmt.Println("Usage: validate <product>")
				continue
			}
			a.Validate(ctx, args[0])
		case "products":
			if len(a.products) == 0 {
				fmt.Println("No entitlements known, run 'auth <product>' first")
			} else {
				fmt.Println("Entitled products:", a.products)
			}
		case "ping":
			if err := a.api.Ping(ctx); err != nil {
				fmt.Println("Server unreachable:", err)
			} else {
				fmt.Println("Server is up")
			}
		case "logout":
			a.Logout(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}

}
