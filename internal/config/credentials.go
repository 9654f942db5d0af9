package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const credFileName = "credentials.json"

// Credentials holds the redis backend password.
type Credentials struct {
	RedisPassword string    `json:"redis_password"`
	Source        string    `json:"source"`     // "env" | "file"
	CreatedAt     time.Time `json:"created_at"` // when we saved to file
}

func credFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config dir: %w", err)
	}
	return filepath.Join(dir, "claro", credFileName), nil
}

// LoadCredentials returns credentials from CLARO_REDIS_PASSWORD, then the
// credentials file. It returns nil, nil when neither is set.
func LoadCredentials() (*Credentials, error) {
	if env := strings.TrimSpace(os.Getenv("CLARO_REDIS_PASSWORD")); env != "" {
		return &Credentials{RedisPassword: env, Source: "env"}, nil
	}

	p, err := credFilePath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	var c Credentials
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	c.Source = "file"
	return &c, nil
}

// SaveCredentials writes the password to an owner-only file.
func SaveCredentials(password string) error {
	password = strings.TrimSpace(password)
	if password == "" {
		return fmt.Errorf("empty password")
	}
	p, err := credFilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	b, err := json.MarshalIndent(Credentials{
		RedisPassword: password,
		Source:        "file",
		CreatedAt:     time.Now().UTC(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.WriteFile(p, b, 0o600); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// DeleteCredentials removes the credentials file if present.
func DeleteCredentials() error {
	p, err := credFilePath()
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}
