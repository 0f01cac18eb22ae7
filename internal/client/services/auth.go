// Package services contains application services for the featurevote client.
// This file defines the authentication service: login, register with
// implicit login, logout, and access to the stored session.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/featurevote/internal/client/client"
	"github.com/dmitrijs2005/featurevote/internal/client/models"
	"github.com/dmitrijs2005/featurevote/internal/client/query"
	"github.com/dmitrijs2005/featurevote/internal/client/session"
	"github.com/dmitrijs2005/featurevote/internal/common"
	"github.com/dmitrijs2005/featurevote/internal/logging"
)

// ErrSessionNotEstablished matches a register call whose account was created
// but whose follow-up login failed.
var ErrSessionNotEstablished = errors.New("account created but session not established")

// RegistrationError is a failed POST /auth/register. No login was attempted.
type RegistrationError struct {
	Err error
}

func (e *RegistrationError) Error() string { return "registration failed: " + e.Err.Error() }
func (e *RegistrationError) Unwrap() error { return e.Err }

// SessionNotEstablishedError carries the created account together with the
// login failure that followed it.
type SessionNotEstablishedError struct {
	User *models.User
	Err  error
}

func (e *SessionNotEstablishedError) Error() string {
	return fmt.Sprintf("%s: %v", ErrSessionNotEstablished, e.Err)
}

func (e *SessionNotEstablishedError) Unwrap() []error {
	return []error{ErrSessionNotEstablished, e.Err}
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: exchange credentials for a token and persist the session.
//   - Register: create the account, then log in with the same credentials.
//   - Logout: forget the session and every cached read.
//   - Current: the stored session, nil when logged out.
//   - Ping: check backend liveness.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (*session.Session, error)
	Ping(ctx context.Context) error
}

type authService struct {
	client client.Client
	store  session.Store
	cache  query.Cache
	logger logging.Logger
}

func NewAuthService(c client.Client, store session.Store, cache query.Cache, logger logging.Logger) AuthService {
	return &authService{client: c, store: store, cache: cache, logger: logger}
}

// Login stores the token with a placeholder user built from email. Cached
// reads of the previous identity are dropped.
func (a *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if err := requireFields(map[string]string{"email": email, "password": password}); err != nil {
		return nil, err
	}

	tok, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	user := session.PlaceholderUser(email)
	if err := a.store.Set(ctx, *tok, user); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	if err := a.cache.Clear(ctx); err != nil {
		a.logger.Warn(ctx, "cache clear failed", "error", err)
	}
	a.logger.Info(ctx, "logged in", "email", email)
	return user, nil
}

func (a *authService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if err := requireFields(map[string]string{"name": name, "email": email, "password": password}); err != nil {
		return nil, err
	}

	created, err := a.client.Register(ctx, name, email, password)
	if err != nil {
		return nil, &RegistrationError{Err: err}
	}

	if _, err := a.Login(ctx, email, password); err != nil {
		a.logger.Warn(ctx, "login after register failed", "email", email, "error", err)
		return nil, &SessionNotEstablishedError{User: created, Err: err}
	}
	return created, nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	if err := a.cache.Clear(ctx); err != nil {
		a.logger.Warn(ctx, "cache clear failed", "error", err)
	}
	return nil
}

func (a *authService) Current(ctx context.Context) (*session.Session, error) {
	return a.store.Get(ctx)
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// requireFields is presence-only validation. Passwords are checked as typed,
// other fields after trimming.
func requireFields(fields map[string]string) error {
	var missing []string
	for _, name := range []string{"name", "email", "password"} {
		v, ok := fields[name]
		if !ok {
			continue
		}
		if name != "password" {
			v = strings.TrimSpace(v)
		}
		if v == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s required", common.ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}
