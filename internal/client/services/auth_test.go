package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/featurevote/internal/client/client"
	"github.com/dmitrijs2005/featurevote/internal/client/models"
	"github.com/dmitrijs2005/featurevote/internal/client/query"
	"github.com/dmitrijs2005/featurevote/internal/client/session"
	"github.com/dmitrijs2005/featurevote/internal/common"
	"github.com/dmitrijs2005/featurevote/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuth(fc *fakeClient) (AuthService, *session.MemoryStore, *query.MemoryCache) {
	store := session.NewMemoryStore()
	cache := query.NewMemoryCache(5 * time.Minute)
	return NewAuthService(fc, store, cache, logging.Nop()), store, cache
}

func TestLogin_PersistsPlaceholderUserAndClearsCache(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{LoginRet: &models.AuthToken{AccessToken: "tok", TokenType: "bearer"}}
	svc, store, cache := newAuth(fc)
	require.NoError(t, cache.Set(ctx, query.NewKey(query.OpFeatures, query.P("page", 1)), 1))

	u, err := svc.Login(ctx, "jane@x.com", "pw")
	require.NoError(t, err)

	assert.Equal(t, "jane@x.com", fc.LastLoginUser)
	assert.Equal(t, "pw", fc.LastLoginPass)
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "User", u.Name)
	assert.Equal(t, "jane@x.com", u.Email)

	sess, err := store.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "tok", sess.AccessToken)
	assert.Equal(t, "jane@x.com", sess.User.Email)
	assert.Equal(t, 0, cache.Len())
}

func TestLogin_FailureLeavesNoSession(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{LoginErr: &client.APIError{StatusCode: 401, Detail: "Incorrect email or password"}}
	svc, store, _ := newAuth(fc)

	_, err := svc.Login(ctx, "jane@x.com", "bad")
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Equal(t, "Incorrect email or password", err.Error())

	sess, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestLogin_BlankFieldsRejectedWithoutNetwork(t *testing.T) {
	fc := &fakeClient{}
	svc, _, _ := newAuth(fc)

	_, err := svc.Login(context.Background(), "  ", "")
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, err.Error(), "email, password")
	assert.Equal(t, 0, fc.LoginCalls)
}

func TestRegister_ThenLogin(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{
		RegisterRet: &models.User{ID: 9, Name: "Jane", Email: "jane@x.com"},
		LoginRet:    &models.AuthToken{AccessToken: "tok"},
	}
	svc, store, _ := newAuth(fc)

	u, err := svc.Register(ctx, "Jane", "jane@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, int64(9), u.ID)
	assert.Equal(t, models.RegisterRequest{Name: "Jane", Email: "jane@x.com", Password: "pw"}, fc.LastRegister)
	assert.Equal(t, 1, fc.LoginCalls)

	sess, err := store.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "bearer", sess.TokenType)
}

func TestRegister_FailureSkipsLogin(t *testing.T) {
	fc := &fakeClient{RegisterErr: &client.APIError{StatusCode: 400, Detail: "Email already registered"}}
	svc, _, _ := newAuth(fc)

	_, err := svc.Register(context.Background(), "Jane", "jane@x.com", "pw")

	var regErr *RegistrationError
	require.ErrorAs(t, err, &regErr)
	assert.Contains(t, err.Error(), "Email already registered")
	assert.False(t, errors.Is(err, ErrSessionNotEstablished))
	assert.Equal(t, 0, fc.LoginCalls)
}

func TestRegister_LoginFailureReportedDistinctly(t *testing.T) {
	ctx := context.Background()
	loginErr := errors.New("boom")
	fc := &fakeClient{
		RegisterRet: &models.User{ID: 9, Email: "jane@x.com"},
		LoginErr:    loginErr,
	}
	svc, store, _ := newAuth(fc)

	_, err := svc.Register(ctx, "Jane", "jane@x.com", "pw")
	require.ErrorIs(t, err, ErrSessionNotEstablished)
	require.ErrorIs(t, err, loginErr)

	var snErr *SessionNotEstablishedError
	require.ErrorAs(t, err, &snErr)
	assert.Equal(t, int64(9), snErr.User.ID)

	var regErr *RegistrationError
	assert.False(t, errors.As(err, &regErr))

	sess, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestRegister_PresenceValidation(t *testing.T) {
	fc := &fakeClient{}
	svc, _, _ := newAuth(fc)

	_, err := svc.Register(context.Background(), "", "jane@x.com", "pw")
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, err.Error(), "name")
	assert.Equal(t, 0, fc.RegisterCalls)
}

func TestLogout_ClearsSessionAndCache(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{LoginRet: &models.AuthToken{AccessToken: "tok"}}
	svc, _, cache := newAuth(fc)

	_, err := svc.Login(ctx, "jane@x.com", "pw")
	require.NoError(t, err)
	require.NoError(t, cache.Set(ctx, query.NewKey(query.OpFeature, query.P("id", 1)), "x"))

	require.NoError(t, svc.Logout(ctx))

	sess, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess)
	assert.Equal(t, 0, cache.Len())
}

func TestLogin_CacheFailureDoesNotFailLogin(t *testing.T) {
	fc := &fakeClient{LoginRet: &models.AuthToken{AccessToken: "tok"}}
	svc := NewAuthService(fc, session.NewMemoryStore(), failingCache{}, logging.Nop())

	_, err := svc.Login(context.Background(), "jane@x.com", "pw")
	require.NoError(t, err)
}

func TestPing(t *testing.T) {
	fc := &fakeClient{PingErr: client.ErrUnavailable}
	svc, _, _ := newAuth(fc)
	require.ErrorIs(t, svc.Ping(context.Background()), client.ErrUnavailable)
}
