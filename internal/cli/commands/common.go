// Package commands implements the blogctl subcommands.
package commands

import (
	"fmt"

	"github.com/eniola256/Blog/internal/apiclient"
	"github.com/eniola256/Blog/internal/cli/userconfig"
	"github.com/eniola256/Blog/internal/session"
)

// newClient builds an API client pointed at the configured backend.
func newClient() (*apiclient.Client, error) {
	cfg, err := userconfig.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return apiclient.New(cfg.BaseURL()), nil
}

// tokenSource reads the keychain entry at call time, so a logout in
// another terminal is picked up on the next request.
func tokenSource(store session.TokenStore) apiclient.TokenSource {
	return apiclient.TokenSourceFunc(func() (string, bool) {
		cred, ok := store.Read()
		if !ok {
			return "", false
		}
		return cred.Token, true
	})
}

// currentCredential loads the stored credential or tells the user to log in.
func currentCredential(store session.TokenStore) (session.Credential, error) {
	cred, ok := store.Read()
	if !ok {
		return session.Credential{}, fmt.Errorf("not logged in. Run 'blogctl login' first")
	}
	return cred, nil
}
