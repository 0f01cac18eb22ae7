package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/featurevote/internal/client/models"
	"github.com/dmitrijs2005/featurevote/internal/client/query"
)

// fakeClient implements client.Client with canned results and captured
// arguments.
type fakeClient struct {
	LoginRet    *models.AuthToken
	LoginErr    error
	RegisterRet *models.User
	RegisterErr error
	ListRet     *models.PaginatedFeatures
	ListErr     error
	GetRet      *models.Feature
	GetErr      error
	CreateRet   *models.Feature
	CreateErr   error
	VoteRet     *models.Vote
	VoteErr     error
	UnvoteRet   *models.Ack
	UnvoteErr   error
	PingErr     error

	LoginCalls    int
	RegisterCalls int
	ListCalls     int
	GetCalls      int
	CreateCalls   int
	VoteCalls     int
	UnvoteCalls   int

	LastLoginUser    string
	LastLoginPass    string
	LastRegister     models.RegisterRequest
	LastListPage     int
	LastListLimit    int
	LastCreateTitle  string
	LastCreateDesc   *string
	LastVoteFeature  int64
	LastUnvoteFeatID int64
}

func (f *fakeClient) Login(_ context.Context, username, password string) (*models.AuthToken, error) {
	f.LoginCalls++
	f.LastLoginUser, f.LastLoginPass = username, password
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Register(_ context.Context, name, email, password string) (*models.User, error) {
	f.RegisterCalls++
	f.LastRegister = models.RegisterRequest{Name: name, Email: email, Password: password}
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeClient) ListFeatures(_ context.Context, page, limit int) (*models.PaginatedFeatures, error) {
	f.ListCalls++
	f.LastListPage, f.LastListLimit = page, limit
	return f.ListRet, f.ListErr
}

func (f *fakeClient) GetFeature(_ context.Context, id int64) (*models.Feature, error) {
	f.GetCalls++
	return f.GetRet, f.GetErr
}

func (f *fakeClient) CreateFeature(_ context.Context, title string, description *string) (*models.Feature, error) {
	f.CreateCalls++
	f.LastCreateTitle, f.LastCreateDesc = title, description
	return f.CreateRet, f.CreateErr
}

func (f *fakeClient) Vote(_ context.Context, featureID int64) (*models.Vote, error) {
	f.VoteCalls++
	f.LastVoteFeature = featureID
	return f.VoteRet, f.VoteErr
}

func (f *fakeClient) RemoveVote(_ context.Context, featureID int64) (*models.Ack, error) {
	f.UnvoteCalls++
	f.LastUnvoteFeatID = featureID
	return f.UnvoteRet, f.UnvoteErr
}

func (f *fakeClient) Ping(context.Context) error { return f.PingErr }

// failingCache errors on every call, like an unreachable Redis.
type failingCache struct{}

var errCacheDown = errors.New("cache down")

func (failingCache) Get(context.Context, query.Key, any) (bool, error)  { return false, errCacheDown }
func (failingCache) Set(context.Context, query.Key, any) error          { return errCacheDown }
func (failingCache) InvalidateOperation(context.Context, string) error { return errCacheDown }
func (failingCache) Clear(context.Context) error                       { return errCacheDown }
