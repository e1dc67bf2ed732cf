package auth

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrNoConfigPersister = errors.New("no config persister configured")
)

// ConfigPersister defines the interface for persisting token changes.
type ConfigPersister interface {
	PersistToken(token string, expiresAt time.Time) error
}

// ConfigTokenManager wraps SessionTokenManager and persists every change of
// the slot, so a later process can resume the session.
type ConfigTokenManager struct {
	*SessionTokenManager

	configPersister ConfigPersister
	onError         func(error)
}

// NewConfigTokenManager creates a config-persisting token manager. onError
// receives persistence failures; they never fail the request itself.
func NewConfigTokenManager(initialToken string, configPersister ConfigPersister, onError func(error)) *ConfigTokenManager {
	return &ConfigTokenManager{
		SessionTokenManager: NewSessionTokenManager(initialToken),
		configPersister:     configPersister,
		onError:             onError,
	}
}

// GetToken returns the stored token.
func (m *ConfigTokenManager) GetToken(ctx context.Context) (string, error) {
	return m.SessionTokenManager.GetToken(ctx)
}

// SetToken stores and persists the token.
func (m *ConfigTokenManager) SetToken(token string) {
	m.SessionTokenManager.SetToken(token)
	m.persist()
}

// Clear empties the slot and persists the empty token.
func (m *ConfigTokenManager) Clear() {
	m.SessionTokenManager.Clear()
	m.persist()
}

func (m *ConfigTokenManager) persist() {
	err := m.persistToken(m.Token(), m.Expiry())
	if err != nil && m.onError != nil {
		m.onError(err)
	}
}

// persistToken saves the token to config.
func (m *ConfigTokenManager) persistToken(token string, expiresAt time.Time) error {
	if m.configPersister == nil {
		return ErrNoConfigPersister
	}

	err := m.configPersister.PersistToken(token, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}

	return nil
}
