package store

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"quip/internal/domain"
)

const accountsFile = "accounts.json"

// AccountFileStore persists the account directory to disk, keyed by
// case-folded username.
type AccountFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewAccountFileStore returns an AccountFileStore rooted at dir.
func NewAccountFileStore(dir string) *AccountFileStore {
	return &AccountFileStore{dir: dir}
}

// SaveAccount stores or replaces the given account.
func (s *AccountFileStore) SaveAccount(account domain.Account) error {
	if account.Identity.Username == "" {
		return fmt.Errorf("account username is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, accountsFile)
	accounts := make(map[string]domain.Account)
	if err := readJSON(path, &accounts); err != nil {
		return err
	}
	accounts[accountKey(account.Identity.Username)] = account
	return writeJSON(path, accounts, 0o600)
}

// LoadAccount retrieves the account registered under username.
func (s *AccountFileStore) LoadAccount(username domain.Username) (domain.Account, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, accountsFile)
	accounts := make(map[string]domain.Account)
	if err := readJSON(path, &accounts); err != nil {
		return domain.Account{}, false, err
	}
	account, ok := accounts[accountKey(username)]
	return account, ok, nil
}

func accountKey(username domain.Username) string {
	return strings.ToLower(username.String())
}

// Compile-time assertion that AccountFileStore implements domain.AccountStore.
var _ domain.AccountStore = (*AccountFileStore)(nil)
