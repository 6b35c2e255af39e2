package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Get returns the stored secret for service/account, or "" when unset.
func (c *implCredentials) Get(service, account string) (string, error) {
	secrets, err := c.load()
	if err != nil {
		return "", err
	}
	return secrets[credentialKey(service, account)], nil
}

// Set stores or, when secret is empty, removes an entry. The credential
// file is written with owner-only permissions.
func (c *implCredentials) Set(service, account, secret string) error {
	secrets, err := c.load()
	if err != nil {
		return err
	}
	if secrets == nil {
		secrets = map[string]string{}
	}

	key := credentialKey(service, account)
	if secret == "" {
		delete(secrets, key)
	} else {
		secrets[key] = secret
	}

	data, err := json.MarshalIndent(secrets, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

func (c *implCredentials) load() (map[string]string, error) {
	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	var secrets map[string]string
	if err := json.Unmarshal(data, &secrets); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	return secrets, nil
}

func credentialKey(service, account string) string {
	return service + "/" + account
}
