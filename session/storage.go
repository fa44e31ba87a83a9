package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopsphere/storefront/models"
)

// Storage keys, fixed: the credential and the serialized identity are kept
// under separate entries the way the browser client kept them.
const (
	TokenKey    = "token"
	IdentityKey = "user"
)

// Storage persists the identity between runs. Load returns (nil, nil) when
// nothing is stored. Written on login/register, deleted on logout, read once
// at bootstrap.
type Storage interface {
	Load(ctx context.Context) (*models.Identity, error)
	Save(ctx context.Context, identity *models.Identity) error
	Clear(ctx context.Context) error
}

// FileStorage is the local-storage analog: one JSON file holding the token
// and identity entries.
type FileStorage struct {
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (f *FileStorage) Load(_ context.Context) (*models.Identity, error) {

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to read session file %s: %w", f.path, err)
	}

	var entries map[string]json.RawMessage

	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse session file %s: %w", f.path, err)
	}

	rawIdentity, ok := entries[IdentityKey]
	if !ok {
		return nil, nil
	}

	var identity models.Identity

	if err := json.Unmarshal(rawIdentity, &identity); err != nil {
		return nil, fmt.Errorf("failed to parse stored identity: %w", err)
	}

	var token string
	if rawToken, ok := entries[TokenKey]; ok {
		if err := json.Unmarshal(rawToken, &token); err != nil {
			return nil, fmt.Errorf("failed to parse stored token: %w", err)
		}
	}

	if token != "" {
		identity.Token = token
	}

	return &identity, nil
}

func (f *FileStorage) Save(_ context.Context, identity *models.Identity) error {

	rawIdentity, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("failed to encode identity: %w", err)
	}

	rawToken, err := json.Marshal(identity.Token)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}

	data, err := json.MarshalIndent(map[string]json.RawMessage{
		TokenKey:    rawToken,
		IdentityKey: rawIdentity,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session file: %w", err)
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create session directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file %s: %w", f.path, err)
	}

	return nil
}

func (f *FileStorage) Clear(_ context.Context) error {

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file %s: %w", f.path, err)
	}

	return nil
}
