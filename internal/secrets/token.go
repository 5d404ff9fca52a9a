// Package secrets keeps the admin API token in the OS keychain instead of a
// config file.
package secrets

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "jobboard-engine"
	tokenAccount   = "api-token"
)

// GetAPIToken returns the stored admin token, or "" when none is set (the
// HTTP API then runs unauthenticated, which is fine for local use).
func GetAPIToken() string {
	tok, err := keyring.Get(keyringService, tokenAccount)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(tok)
}

func SetAPIToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("token is empty")
	}
	return keyring.Set(keyringService, tokenAccount, token)
}

func DeleteAPIToken() error {
	return keyring.Delete(keyringService, tokenAccount)
}
