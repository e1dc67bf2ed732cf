package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"
	"sync"
	"time"
)

// expiryBuffer treats tokens that are about to expire as already expired.
const expiryBuffer = 30 * time.Second

// TokenManager provides the bearer credential for outgoing requests. An
// empty token means the request is sent unauthenticated.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
}

// Token is a bearer credential issued by the authentication endpoint.
type Token struct {
	AccessToken string
	// ExpiresAt is read from the JWT "exp" claim; zero when unknown.
	ExpiresAt time.Time
}

// Valid reports whether the token is set and not about to expire.
func (t *Token) Valid() bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	if t.ExpiresAt.IsZero() {
		return true
	}

	return time.Now().Add(expiryBuffer).Before(t.ExpiresAt)
}

// NewToken wraps a raw bearer string, reading its expiry when it is a JWT.
func NewToken(accessToken string) *Token {
	return &Token{
		AccessToken: accessToken,
		ExpiresAt:   JWTExpiry(accessToken),
	}
}

// JWTExpiry returns the "exp" claim of a JWT, or the zero time when the
// token is not a JWT or carries no expiry. The signature is not checked.
func JWTExpiry(token string) time.Time {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return time.Time{}
	}

	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return time.Time{}
	}

	var claims struct {
		Exp int64 `json:"exp"`
	}

	if err := json.Unmarshal(payload, &claims); err != nil || claims.Exp == 0 {
		return time.Time{}
	}

	return time.Unix(claims.Exp, 0)
}

// TokenStore holds the current token. It is safe for concurrent use.
type TokenStore struct {
	mu    sync.RWMutex
	token *Token
}

// NewTokenStore creates an empty token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns the current token or nil.
func (s *TokenStore) Get() *Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// Set replaces the current token.
func (s *TokenStore) Set(token *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
}

// Clear removes the current token.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = nil
}

// SessionTokenManager is the credential slot of a connection. It is written
// by login, logout and manual assignment and read by every request.
type SessionTokenManager struct {
	store *TokenStore
}

// NewSessionTokenManager creates a slot holding initialToken, if any.
func NewSessionTokenManager(initialToken string) *SessionTokenManager {
	m := &SessionTokenManager{store: NewTokenStore()}
	if initialToken != "" {
		m.store.Set(NewToken(initialToken))
	}

	return m
}

// GetToken returns the stored token, or "" when none is set. Expired tokens
// are still sent so that the server can answer with 401.
func (m *SessionTokenManager) GetToken(ctx context.Context) (string, error) {
	return m.Token(), nil
}

// Token returns the stored token string.
func (m *SessionTokenManager) Token() string {
	token := m.store.Get()
	if token == nil {
		return ""
	}

	return token.AccessToken
}

// SetToken stores token; an empty token clears the slot.
func (m *SessionTokenManager) SetToken(token string) {
	if token == "" {
		m.store.Clear()

		return
	}

	m.store.Set(NewToken(token))
}

// Clear empties the slot.
func (m *SessionTokenManager) Clear() {
	m.store.Clear()
}

// Expiry returns the stored token's expiration time, zero when unknown.
func (m *SessionTokenManager) Expiry() time.Time {
	token := m.store.Get()
	if token == nil {
		return time.Time{}
	}

	return token.ExpiresAt
}

// Slot is a mutable credential slot.
type Slot interface {
	TokenManager
	Token() string
	SetToken(token string)
	Clear()
}
