package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/featurevote/internal/client/models"
)

// MemoryStore keeps the session for the lifetime of the process only.
type MemoryStore struct {
	mu   sync.Mutex
	sess *Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Get(_ context.Context) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sess == nil {
		return nil, nil
	}
	u := *m.sess.User
	return &Session{AccessToken: m.sess.AccessToken, TokenType: m.sess.TokenType, User: &u}, nil
}

func (m *MemoryStore) Set(_ context.Context, token models.AuthToken, user *models.User) error {
	if err := validate(token, user); err != nil {
		return err
	}
	u := *user

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = &Session{AccessToken: token.AccessToken, TokenType: tokenTypeOrDefault(token.TokenType), User: &u}
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = nil
	return nil
}
