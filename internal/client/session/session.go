// Package session persists the authenticated session of the client: the
// access token issued by the backend and the user it belongs to.
//
// A session is either fully present or absent. Stores never return a token
// without its user, and Clear removes both in one step. The backend is the
// only authority on expiry; the client forgets a session on logout or on
// the first 401 it receives.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/featurevote/internal/client/models"
)

const (
	keyAccessToken = "auth_token"
	keyTokenType   = "token_type"
	keyUser        = "user"

	defaultTokenType = "bearer"
)

var ErrIncompleteSession = errors.New("session needs both a token and a user")

type Session struct {
	AccessToken string
	TokenType   string
	User        *models.User
}

// Store is the session lifecycle used by the API client and the services.
// Get returns (nil, nil) when no session is stored.
type Store interface {
	Get(ctx context.Context) (*Session, error)
	Set(ctx context.Context, token models.AuthToken, user *models.User) error
	Clear(ctx context.Context) error
}

func validate(token models.AuthToken, user *models.User) error {
	if token.AccessToken == "" || user == nil {
		return ErrIncompleteSession
	}
	return nil
}

func tokenTypeOrDefault(t string) string {
	if t == "" {
		return defaultTokenType
	}
	return t
}

// PlaceholderUser stands in for the account after login. POST /auth/login
// only returns a token, so the user is built from the login email until the
// backend offers a way to fetch it.
func PlaceholderUser(email string) *models.User {
	return &models.User{
		ID:        1,
		Name:      "User",
		Email:     email,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
}
