package strava

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/oauth2"
)

var ErrNoToken = errors.New("no strava token for user")

// TokenStore keeps each user's Strava OAuth2 token.
type TokenStore interface {
	Get(ctx context.Context, userID string) (*oauth2.Token, error)
	Save(ctx context.Context, userID string, token *oauth2.Token) error
}

// MemoryTokenStore is a process-local TokenStore. Tokens are lost on restart.
type MemoryTokenStore struct {
	mu     sync.RWMutex
	tokens map[string]oauth2.Token
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{tokens: make(map[string]oauth2.Token)}
}

func (s *MemoryTokenStore) Get(_ context.Context, userID string) (*oauth2.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tok, ok := s.tokens[userID]
	if !ok {
		return nil, ErrNoToken
	}
	return &tok, nil
}

func (s *MemoryTokenStore) Save(_ context.Context, userID string, token *oauth2.Token) error {
	if token == nil {
		return errors.New("token is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[userID] = *token
	return nil
}
