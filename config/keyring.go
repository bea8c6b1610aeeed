package config

import (
	"errors"

	"github.com/zalando/go-keyring"
)

const keyringService = "osu-api"

// Keys that may be stored in the OS keyring instead of the config file.
const (
	KeyV1APIKey       = "v1.api_key"
	KeyV2ClientSecret = "v2.client_secret"
)

// ErrKeyringUnavailable indicates the OS keyring is not accessible.
var ErrKeyringUnavailable = errors.New("keyring unavailable")

// IsSecretKey reports whether key names a secret.
func IsSecretKey(key string) bool {
	return key == KeyV1APIKey || key == KeyV2ClientSecret
}

// keyringGet retrieves a secret from the OS keyring. A missing entry is
// not an error.
func keyringGet(key string) (string, error) {
	secret, err := keyring.Get(keyringService, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", ErrKeyringUnavailable
	}
	return secret, nil
}

// keyringSet stores a secret in the OS keyring.
func keyringSet(key, secret string) error {
	if err := keyring.Set(keyringService, key, secret); err != nil {
		return ErrKeyringUnavailable
	}
	return nil
}

// keyringDelete removes a secret from the OS keyring.
func keyringDelete(key string) error {
	err := keyring.Delete(keyringService, key)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return ErrKeyringUnavailable
	}
	return nil
}
