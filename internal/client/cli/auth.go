package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/contentgate/contentgate/internal/client/client"
	"github.com/contentgate/contentgate/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Auth prompts the user for credentials and requests a session key for the
// given product. On success the key and the entitled product list are kept
// on the App for later validate calls. The password byte slice is wiped
// before returning.
func (a *App) Auth(ctx context.Context, product string) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
	defer cancel()

	res, err := a.api.Authenticate(ctx, product, userName, password)
	if err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			log.Printf("Server unavailable: %s", err.Error())
			return err
		}
		fmt.Println("Authentication failed:", authFailureReason(err))
		return err
	}

	a.userName = userName
	a.sessionKey = res.SessionKey
	a.products = res.Products

	fmt.Println("Success! Entitled products:", a.products)
	return nil
}

// Validate checks the stored session key against the given product.
func (a *App) Validate(ctx context.Context, product string) error {
	if !a.hasSession() {
		fmt.Println("No session key, run 'auth <product>' first")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
	defer cancel()

	products, err := a.api.Validate(ctx, product, a.sessionKey)
	if err != nil {
		if errors.Is(err, common.ErrSessionExpired) {
			// The server dropped the session, forget the key locally too.
			a.sessionKey = ""
			a.products = nil
			fmt.Println("Session expired, run 'auth <product>' again")
			return err
		}
		fmt.Println("Validation failed:", authFailureReason(err))
		return err
	}

	a.products = products
	fmt.Println("Session is valid. Entitled products:", products)
	return nil
}

// Logout forgets the session key. The server keeps its copy until the
// session times out, there is no revocation call in the API.
func (a *App) Logout(ctx context.Context) {
	a.userName = ""
	a.sessionKey = ""
	a.products = nil
}

func authFailureReason(err error) string {
	switch {
	case errors.Is(err, common.ErrUnknownCredentials):
		return "unknown username or password"
	case errors.Is(err, common.ErrAccountDisabled):
		return "account is disabled"
	case errors.Is(err, common.ErrProductNotFound):
		return "no such product"
	case errors.Is(err, common.ErrSessionExpired):
		return "session expired"
	}
	return err.Error()
}
