package config

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const keyringService = "hueprompt"

// SetAPIKey stores a provider API key in the system keyring
func SetAPIKey(providerName, key string) error {
	if err := keyring.Set(keyringService, providerName, key); err != nil {
		return fmt.Errorf("store %s key in keyring: %w", providerName, err)
	}
	return nil
}

// DeleteAPIKey removes a provider API key from the system keyring.
// Deleting a key that was never stored is not an error.
func DeleteAPIKey(providerName string) error {
	err := keyring.Delete(keyringService, providerName)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("delete %s key from keyring: %w", providerName, err)
	}
	return nil
}

// keyringAPIKey returns the stored key or "" when missing or the keyring is unavailable
func keyringAPIKey(providerName string) string {
	key, err := keyring.Get(keyringService, providerName)
	if err != nil {
		return ""
	}
	return key
}
