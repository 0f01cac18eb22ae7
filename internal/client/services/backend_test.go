package services

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/featurevote/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const backendSecret = "test-secret"

type backendUser struct {
	models.User
	password string
}

// fakeBackend is an in-memory rendition of the featurevote REST API.
type fakeBackend struct {
	mu        sync.Mutex
	users     map[string]*backendUser
	features  map[int64]*models.Feature
	votes     map[int64]models.Vote
	revoked   map[string]bool
	nextID    int64
	failLogin bool
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	t.Helper()
	b := &fakeBackend{
		users:    make(map[string]*backendUser),
		features: make(map[int64]*models.Feature),
		votes:    make(map[int64]models.Vote),
		revoked:  make(map[string]bool),
	}

	e := echo.New()
	e.HideBanner = true
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "healthy"})
	})
	e.POST("/auth/register", b.register)
	e.POST("/auth/login", b.login)
	e.GET("/features/", b.listFeatures)
	e.GET("/features/:id", b.getFeature)
	e.POST("/features/", b.createFeature, b.auth)
	e.POST("/votes/", b.vote, b.auth)
	e.DELETE("/votes/:id", b.unvote, b.auth)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return b, srv
}

func detail(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"detail": msg})
}

// seed adds n features authored by a system user.
func (b *fakeBackend) seed(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := 0; i < n; i++ {
		b.nextID++
		b.features[b.nextID] = &models.Feature{
			ID:     b.nextID,
			Title:  "Feature " + strconv.FormatInt(b.nextID, 10),
			Author: models.User{ID: 100, Name: "Seeder"},
		}
	}
}

func (b *fakeBackend) revokeAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, u := range b.users {
		b.revoked[u.Email] = true
	}
}

func (b *fakeBackend) setFailLogin(v bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failLogin = v
}

func (b *fakeBackend) feature(id int64) models.Feature {
	b.mu.Lock()
	defer b.mu.Unlock()
	return *b.features[id]
}

func (b *fakeBackend) register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusUnprocessableEntity, "invalid body")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.users[req.Email]; ok {
		return detail(c, http.StatusBadRequest, "Email already registered")
	}
	u := &backendUser{
		User:     models.User{ID: int64(len(b.users) + 1), Name: req.Name, Email: req.Email, CreatedAt: time.Now().UTC().Format(time.RFC3339)},
		password: req.Password,
	}
	b.users[req.Email] = u
	return c.JSON(http.StatusOK, u.User)
}

func (b *fakeBackend) login(c echo.Context) error {
	email, password := c.FormValue("username"), c.FormValue("password")

	b.mu.Lock()
	defer b.mu.Unlock()
	u, ok := b.users[email]
	if b.failLogin || !ok || u.password != password {
		return detail(c, http.StatusUnauthorized, "Incorrect email or password")
	}
	delete(b.revoked, email)

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": email,
		"exp": time.Now().Add(30 * time.Minute).Unix(),
	})
	signed, err := tok.SignedString([]byte(backendSecret))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, models.AuthToken{AccessToken: signed, TokenType: "bearer"})
}

func (b *fakeBackend) auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := c.Request().Header.Get("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			return detail(c, http.StatusUnauthorized, "Not authenticated")
		}
		tok, err := jwt.Parse(strings.TrimPrefix(h, "Bearer "), func(*jwt.Token) (any, error) {
			return []byte(backendSecret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil {
			return detail(c, http.StatusUnauthorized, "Could not validate credentials")
		}
		sub, _ := tok.Claims.GetSubject()

		b.mu.Lock()
		u, ok := b.users[sub]
		revoked := b.revoked[sub]
		b.mu.Unlock()
		if !ok || revoked {
			return detail(c, http.StatusUnauthorized, "Could not validate credentials")
		}
		c.Set("user", u.User)
		return next(c)
	}
}

func (b *fakeBackend) listFeatures(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if page < 1 || limit < 1 || limit > 100 {
		return detail(c, http.StatusUnprocessableEntity, "invalid paging")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	all := make([]models.Feature, 0, len(b.features))
	for _, f := range b.features {
		all = append(all, *f)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	start := (page - 1) * limit
	end := min(start+limit, len(all))
	items := []models.Feature{}
	if start < len(all) {
		items = all[start:end]
	}
	return c.JSON(http.StatusOK, models.PaginatedFeatures{
		Items: items,
		Total: len(all),
		Page:  page,
		Limit: limit,
		Pages: (len(all) + limit - 1) / limit,
	})
}

func (b *fakeBackend) getFeature(c echo.Context) error {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	b.mu.Lock()
	defer b.mu.Unlock()
	f, ok := b.features[id]
	if !ok {
		return detail(c, http.StatusNotFound, "Feature not found")
	}
	return c.JSON(http.StatusOK, f)
}

func (b *fakeBackend) createFeature(c echo.Context) error {
	var req models.CreateFeatureRequest
	if err := c.Bind(&req); err != nil || req.Title == "" {
		return detail(c, http.StatusUnprocessableEntity, "title required")
	}
	author := c.Get("user").(models.User)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	f := &models.Feature{
		ID:          b.nextID,
		Title:       req.Title,
		Description: req.Description,
		AuthorID:    author.ID,
		Author:      author,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	b.features[f.ID] = f
	return c.JSON(http.StatusOK, f)
}

func voteKey(userID, featureID int64) int64 { return userID<<32 | featureID }

func (b *fakeBackend) vote(c echo.Context) error {
	var req models.VoteRequest
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusUnprocessableEntity, "invalid body")
	}
	u := c.Get("user").(models.User)

	b.mu.Lock()
	defer b.mu.Unlock()
	f, ok := b.features[req.FeatureID]
	if !ok {
		return detail(c, http.StatusNotFound, "Feature not found")
	}
	k := voteKey(u.ID, f.ID)
	if _, dup := b.votes[k]; dup {
		return detail(c, http.StatusBadRequest, "You have already voted for this feature")
	}
	v := models.Vote{ID: int64(len(b.votes) + 1), UserID: u.ID, FeatureID: f.ID, CreatedAt: time.Now().UTC().Format(time.RFC3339)}
	b.votes[k] = v
	f.VoteCount++
	return c.JSON(http.StatusOK, v)
}

func (b *fakeBackend) unvote(c echo.Context) error {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	u := c.Get("user").(models.User)

	b.mu.Lock()
	defer b.mu.Unlock()
	k := voteKey(u.ID, id)
	if _, ok := b.votes[k]; !ok {
		return detail(c, http.StatusNotFound, "Vote not found")
	}
	delete(b.votes, k)
	b.features[id].VoteCount--
	return c.JSON(http.StatusOK, models.Ack{Message: "Vote removed successfully"})
}
