package auth

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/fivetwenty-io/gitlab-client/internal/constants"
	"github.com/fivetwenty-io/gitlab-client/pkg/gitlab"
)

// expiryBuffer treats tokens as expired slightly before their deadline.
const expiryBuffer = 30 * time.Second

// Static errors for err113 compliance.
var (
	ErrTokenExpired     = errors.New("access token expired")
	ErrUnknownTokenType = errors.New("unknown token type")
)

// Token is an access token and the way it is presented to the API.
type Token struct {
	AccessToken string
	TokenType   gitlab.TokenType
	// ExpiresAt is zero for tokens without an expiry.
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

// TokenStore holds a token for concurrent readers.
type TokenStore struct {
	mutex sync.RWMutex
	token *Token
}

func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

func (s *TokenStore) Get() *Token {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.token
}

func (s *TokenStore) Set(token *Token) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.token = token
}

func (s *TokenStore) Clear() {
	s.Set(nil)
}

// Authorizer adds credentials to outgoing request headers.
type Authorizer interface {
	Authorize(ctx context.Context, header http.Header) error
}

// TokenManager authorizes requests with a stored token.
type TokenManager struct {
	store *TokenStore
}

// NewTokenManager stores token; an empty tokenType means a personal access token.
func NewTokenManager(token string, tokenType gitlab.TokenType) *TokenManager {
	if tokenType == "" {
		tokenType = gitlab.TokenTypePrivate
	}

	store := NewTokenStore()
	store.Set(&Token{AccessToken: token, TokenType: tokenType})

	return &TokenManager{store: store}
}

// GetToken returns the current access token.
func (m *TokenManager) GetToken(ctx context.Context) (string, error) {
	token := m.store.Get()
	if !token.Valid() {
		return "", ErrTokenExpired
	}

	return token.AccessToken, nil
}

// SetToken replaces the access token, keeping its type.
func (m *TokenManager) SetToken(accessToken string, expiresAt time.Time) {
	tokenType := gitlab.TokenTypePrivate
	if current := m.store.Get(); current != nil {
		tokenType = current.TokenType
	}

	m.store.Set(&Token{AccessToken: accessToken, TokenType: tokenType, ExpiresAt: expiresAt})
}

// Authorize implements Authorizer.
func (m *TokenManager) Authorize(ctx context.Context, header http.Header) error {
	token := m.store.Get()
	if !token.Valid() {
		return ErrTokenExpired
	}

	switch token.TokenType {
	case gitlab.TokenTypePrivate:
		header.Set(constants.HeaderPrivateToken, token.AccessToken)
	case gitlab.TokenTypeOAuth:
		header.Set(constants.HeaderAuthorization, "Bearer "+token.AccessToken)
	case gitlab.TokenTypeJob:
		header.Set(constants.HeaderJobToken, token.AccessToken)
	default:
		return ErrUnknownTokenType
	}

	return nil
}
