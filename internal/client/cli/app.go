package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/featurevote/internal/client/client"
	"github.com/dmitrijs2005/featurevote/internal/client/config"
	"github.com/dmitrijs2005/featurevote/internal/client/models"
	"github.com/dmitrijs2005/featurevote/internal/client/query"
	"github.com/dmitrijs2005/featurevote/internal/client/services"
	"github.com/dmitrijs2005/featurevote/internal/client/session"
	"github.com/dmitrijs2005/featurevote/internal/logging"
)

type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

type App struct {
	config         *config.Config
	authService    services.AuthService
	featureService services.FeatureService
	logger         logging.Logger
	reader         *bufio.Reader
	out            io.Writer
	closers        []func() error

	mu       sync.Mutex
	user     *models.User
	expired  bool
	Mode     Mode
	mutation Mutation

	page     int
	limit    int
	lastPage *models.PaginatedFeatures
}

// NewApp wires the session store, cache, API client and services described
// by c. Resources opened here are released by Close.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewTextLogger(os.Stderr, c.LogLevel)

	app := &App{
		config: c,
		logger: logger,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		page:   services.DefaultPage,
		limit:  services.DefaultLimit,
	}

	store, err := app.openStore(ctx)
	if err != nil {
		return nil, err
	}

	cache := app.openCache(ctx)

	apiClient, err := client.NewHTTPClient(c.APIBaseURL, store,
		client.WithLogger(logger.With("component", "api")),
		client.WithTimeout(c.RequestTimeout),
		client.WithUnauthorizedHandler(app.onUnauthorized),
	)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	app.authService = services.NewAuthService(apiClient, store, cache, logger)
	app.featureService = services.NewFeatureService(apiClient, cache, logger)
	return app, nil
}

func (a *App) openStore(ctx context.Context) (session.Store, error) {
	if a.config.Ephemeral {
		return session.NewMemoryStore(), nil
	}

	db, err := client.InitDatabase(ctx, a.config.DatabasePath)
	if err != nil {
		a.logger.Error(ctx, "error initializing database", "path", a.config.DatabasePath, "error", err)
		return nil, err
	}
	a.closers = append(a.closers, db.Close)
	return session.NewSQLiteStore(db), nil
}

// openCache prefers the shared Redis cache and falls back to process memory
// when Redis is not configured or not reachable.
func (a *App) openCache(ctx context.Context) query.Cache {
	if a.config.RedisAddr == "" {
		return query.NewMemoryCache(a.config.CacheTTL)
	}

	rc, err := query.NewRedisCache(ctx, query.RedisOptions{Addr: a.config.RedisAddr, TTL: a.config.CacheTTL})
	if err != nil {
		a.logger.Warn(ctx, "redis unavailable, using in-memory cache", "addr", a.config.RedisAddr, "error", err)
		return query.NewMemoryCache(a.config.CacheTTL)
	}
	a.closers = append(a.closers, rc.Close)
	return rc
}

// onUnauthorized runs after the API client dropped the session on a 401.
func (a *App) onUnauthorized(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.user != nil {
		a.logger.Info(ctx, "session expired", "email", a.user.Email)
		a.expired = true
	}
	a.user = nil
}

// dropUser returns to the guest state and reports whether a session was
// active, including one already dropped by onUnauthorized.
func (a *App) dropUser() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	had := a.user != nil || a.expired
	a.user = nil
	a.expired = false
	return had
}

func (a *App) setUser(u *models.User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.user = u
	a.expired = false
}

func (a *App) currentUser() *models.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user
}

func (a *App) isLoggedIn() bool {
	return a.currentUser() != nil
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Mode != mode {
		a.Mode = mode
		a.logger.Info(ctx, "backend status changed", "mode", string(mode))
	}
}

func (a *App) mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Mode
}

// Run resumes a stored session, starts the health watcher and blocks in the
// REPL until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.Close() }()

	a.resume(ctx)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if a.config != nil && a.config.HealthCheckInterval > 0 {
		go a.StartOnlineStatusWatcher(ctx, a.config.HealthCheckInterval)
	}

	a.Root(ctx)
}

func (a *App) resume(ctx context.Context) {
	sess, err := a.authService.Current(ctx)
	if err != nil {
		a.logger.Warn(ctx, "stored session unreadable", "error", err)
		return
	}
	if sess != nil {
		a.setUser(sess.User)
		fmt.Fprintf(a.out, "Welcome back, %s\n", sess.User.Email)
	}
}

// StartOnlineStatusWatcher probes the backend every interval and records
// whether it answered.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	a.probe(ctx)
	for {
		select {
		case <-ticker.C:
			a.probe(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) probe(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.authService.Ping(pctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			a.setMode(ctx, ModeOffline)
		}
		return
	}
	a.setMode(ctx, ModeOnline)
}

// Close releases the database and cache connections.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
