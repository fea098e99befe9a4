package paywall

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// SeedAccount describes one account in the seed table consumed at registry
// construction. Passwords are stored as supplied; hashing them is a policy
// decision left to the deployment (see the project README).
type SeedAccount struct {
	Username string   `yaml:"username"`
	Password string   `yaml:"password"`
	Valid    bool     `yaml:"valid"`
	Products []string `yaml:"products"`
}

type seedFile struct {
	Accounts []SeedAccount `yaml:"accounts"`
}

// LoadSeedFile reads a YAML account table:
//
//	accounts:
//	  - username: user01
//	    password: test
//	    valid: true
//	    products: [product01, product02]
func LoadSeedFile(path string) ([]SeedAccount, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}

	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	if len(f.Accounts) == 0 {
		return nil, fmt.Errorf("seed file %s contains no accounts", path)
	}

	return f.Accounts, nil
}

// DefaultSeed returns the built-in development account table. The disabled
// user02 account exists so that the AccountProblem path can be exercised
// without editing a seed file.
//
// NOTE: these credentials are for development only.
func DefaultSeed() []SeedAccount {
	return []SeedAccount{
		{
			Username: "user01",
			Password: "test",
			Valid:    true,
			Products: []string{"product01", "product02"},
		},
		{
			Username: "user02",
			Password: "test",
			Valid:    false,
			Products: []string{"product01", "product02"},
		},
	}
}

// account is the registry's internal record for one user. All access goes
// through the registry mutex.
type account struct {
	username string
	password string
	valid    bool
	products []string
	sessions map[string]session
}

// session is one live token issued to an account, scoped to the product it
// was issued for.
type session struct {
	product  string
	issuedAt time.Time
}

func (a *account) entitledTo(product string) bool {
	for _, p := range a.products {
		if p == product {
			return true
		}
	}
	return false
}

// entitlementList returns a copy of the account's product list so callers
// cannot mutate registry state through the result.
func (a *account) entitlementList() []string {
	out := make([]string, len(a.products))
	copy(out, a.products)
	return out
}
