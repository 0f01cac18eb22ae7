package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"

	"github.com/dmitrijs2005/featurevote/internal/client/models"
	"github.com/dmitrijs2005/featurevote/internal/client/services"
	"github.com/dmitrijs2005/featurevote/internal/client/session"
	"github.com/dmitrijs2005/featurevote/internal/logging"
)

func readerFromLines(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

type fakeAuth struct {
	sess *session.Session

	loginErr    error
	registerErr error
	logoutErr   error
	pingErr     error

	lastEmail    string
	lastPassword string
	lastName     string
	logouts      int
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (*models.User, error) {
	f.lastEmail, f.lastPassword = email, password
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	u := session.PlaceholderUser(email)
	f.sess = &session.Session{AccessToken: "tok", TokenType: "bearer", User: u}
	return u, nil
}

func (f *fakeAuth) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	f.lastName = name
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.Login(ctx, email, password)
}

func (f *fakeAuth) Logout(context.Context) error {
	f.logouts++
	if f.logoutErr != nil {
		return f.logoutErr
	}
	f.sess = nil
	return nil
}

func (f *fakeAuth) Current(context.Context) (*session.Session, error) { return f.sess, nil }
func (f *fakeAuth) Ping(context.Context) error                        { return f.pingErr }

type fakeFeatures struct {
	pages    map[int]*models.PaginatedFeatures
	feature  *models.Feature
	listErr  error
	getErr   error
	mutErr   error
	created  *models.Feature
	listArgs [][2]int

	lastTitle, lastDescription string
	votes, unvotes             []int64
}

func (f *fakeFeatures) List(_ context.Context, page, limit int) (*models.PaginatedFeatures, error) {
	f.listArgs = append(f.listArgs, [2]int{page, limit})
	if f.listErr != nil {
		return nil, f.listErr
	}
	if p, ok := f.pages[page]; ok {
		return p, nil
	}
	return &models.PaginatedFeatures{Page: page, Limit: limit}, nil
}

func (f *fakeFeatures) Get(context.Context, int64) (*models.Feature, error) {
	return f.feature, f.getErr
}

func (f *fakeFeatures) Create(ctx context.Context, title, description string) (*models.Feature, error) {
	f.lastTitle, f.lastDescription = title, description
	// Mirrors the blank-title rule of the real service.
	if strings.TrimSpace(title) == "" {
		return nil, services.ErrEmptyTitle
	}
	if f.mutErr != nil {
		return nil, f.mutErr
	}
	return f.created, nil
}

func (f *fakeFeatures) Vote(_ context.Context, id int64) (*models.Vote, error) {
	if f.mutErr != nil {
		return nil, f.mutErr
	}
	f.votes = append(f.votes, id)
	return &models.Vote{FeatureID: id}, nil
}

func (f *fakeFeatures) RemoveVote(_ context.Context, id int64) (*models.Ack, error) {
	if f.mutErr != nil {
		return nil, f.mutErr
	}
	f.unvotes = append(f.unvotes, id)
	return &models.Ack{Message: "Vote removed successfully"}, nil
}

func newTestApp(as *fakeAuth, fs *fakeFeatures, in *bufio.Reader) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{
		authService:    as,
		featureService: fs,
		logger:         logging.Nop(),
		reader:         in,
		out:            &out,
		page:           services.DefaultPage,
		limit:          services.DefaultLimit,
	}, &out
}
