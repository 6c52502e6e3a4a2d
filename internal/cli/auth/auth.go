// Package auth persists the CLI's signed-in credential in the OS
// keychain/credential manager.
package auth

import (
	"encoding/json"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/eniola256/Blog/internal/session"
)

const (
	service = "blogctl"
	account = "credential"
)

// Keyring stores the token/user pair as a single keychain entry, so the
// two can never go out of step: one Set writes both, one Delete removes
// both.
type Keyring struct{}

// Default is the store commands use unless a test injects its own.
var Default session.TokenStore = Keyring{}

func (Keyring) Read() (session.Credential, bool) {
	raw, err := keyring.Get(service, account)
	if err != nil {
		return session.Credential{}, false
	}

	var cred session.Credential
	if err := json.Unmarshal([]byte(raw), &cred); err != nil || cred.Token == "" {
		// Corrupt entry. Remove it rather than serve half a credential.
		_ = keyring.Delete(service, account)
		return session.Credential{}, false
	}
	return cred, true
}

func (Keyring) Write(cred session.Credential) error {
	raw, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("failed to encode credential: %w", err)
	}
	if err := keyring.Set(service, account, string(raw)); err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}
	return nil
}

func (Keyring) Clear() {
	// A missing entry is fine; Clear is idempotent.
	_ = keyring.Delete(service, account)
}
