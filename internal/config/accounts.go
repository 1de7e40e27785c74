package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	perrors "github.com/zhubert/parley/internal/errors"
	"gopkg.in/yaml.v3"
)

// Account is one IM account served by a protocol add-on.
type Account struct {
	Name     string            `yaml:"name"`
	Protocol string            `yaml:"protocol"` // Protocol signature, e.g. "loopback"
	Disabled bool              `yaml:"disabled,omitempty"`
	Settings map[string]string `yaml:"settings,omitempty"` // Protocol-specific settings
}

// Accounts is the set of configured accounts, stored as YAML next to the preferences.
type Accounts struct {
	Accounts []Account `yaml:"accounts"`

	mu       sync.RWMutex
	filePath string
}

// accountsPath returns the path to the accounts file
func accountsPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "accounts.yaml"), nil
}

// LoadAccounts reads the accounts file from the config directory.
func LoadAccounts() (*Accounts, error) {
	path, err := accountsPath()
	if err != nil {
		return nil, err
	}
	return LoadAccountsFrom(path)
}

// LoadAccountsFrom reads accounts from path. A missing file yields an empty set.
func LoadAccountsFrom(path string) (*Accounts, error) {
	a := &Accounts{Accounts: []Account{}, filePath: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return a, nil
	}
	if err != nil {
		return nil, perrors.AccountLoadFailed(path, err)
	}

	if err := yaml.Unmarshal(data, a); err != nil {
		return nil, perrors.AccountLoadFailed(path, err)
	}
	if a.Accounts == nil {
		a.Accounts = []Account{}
	}

	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate checks for empty names, duplicate names and missing protocols.
func (a *Accounts) Validate() error {
	a.mu.RLock()
	defer a.mu.RUnlock()

	seen := make(map[string]bool)
	for _, acc := range a.Accounts {
		if acc.Name == "" {
			return perrors.AccountInvalid("account with empty name found")
		}
		if seen[acc.Name] {
			return perrors.AccountInvalid(fmt.Sprintf("duplicate account name: %s", acc.Name))
		}
		seen[acc.Name] = true
		if acc.Protocol == "" {
			return perrors.AccountInvalid(fmt.Sprintf("account %s has no protocol", acc.Name))
		}
	}
	return nil
}

// Save writes the accounts file
func (a *Accounts) Save() error {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(a.filePath), 0755); err != nil {
		return perrors.ConfigSaveFailed(a.filePath, err)
	}

	data, err := yaml.Marshal(a)
	if err != nil {
		return perrors.ConfigSaveFailed(a.filePath, err)
	}
	if err := os.WriteFile(a.filePath, data, 0600); err != nil {
		return perrors.ConfigSaveFailed(a.filePath, err)
	}
	return nil
}

// Path returns the file the accounts are saved to
func (a *Accounts) Path() string {
	return a.filePath
}

// Add adds an account. Returns false if an account with the same name exists.
func (a *Accounts) Add(acc Account) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, existing := range a.Accounts {
		if existing.Name == acc.Name {
			return false
		}
	}
	a.Accounts = append(a.Accounts, acc)
	return true
}

// Remove removes an account by name. Returns false if it was not found.
func (a *Accounts) Remove(name string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i, acc := range a.Accounts {
		if acc.Name == name {
			a.Accounts = append(a.Accounts[:i], a.Accounts[i+1:]...)
			return true
		}
	}
	return false
}

// All returns a copy of every configured account
func (a *Accounts) All() []Account {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]Account, len(a.Accounts))
	copy(out, a.Accounts)
	return out
}

// Enabled returns the accounts that are not disabled
func (a *Accounts) Enabled() []Account {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var out []Account
	for _, acc := range a.Accounts {
		if !acc.Disabled {
			out = append(out, acc)
		}
	}
	return out
}
