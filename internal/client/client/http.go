package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/featurevote/internal/client/models"
	"github.com/dmitrijs2005/featurevote/internal/client/session"
	"github.com/dmitrijs2005/featurevote/internal/common"
	"github.com/dmitrijs2005/featurevote/internal/logging"
	"github.com/google/uuid"
)

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
)

type HTTPClient struct {
	baseURL        string
	http           *http.Client
	timeout        time.Duration
	store          session.Store
	logger         logging.Logger
	onUnauthorized func(ctx context.Context)
}

type Option func(*HTTPClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

// WithUnauthorizedHandler registers fn to run after the session has been
// cleared because of a 401.
func WithUnauthorizedHandler(fn func(ctx context.Context)) Option {
	return func(c *HTTPClient) { c.onUnauthorized = fn }
}

// WithTimeout bounds every request. Zero keeps the client's own timeout.
// It applies on top of WithHTTPClient regardless of option order.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

func NewHTTPClient(baseURL string, store session.Store, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", baseURL)
	}

	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		store:   store,
		logger:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c, nil
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*models.AuthToken, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var out models.AuthToken
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, strings.NewReader(form.Encode()), contentTypeForm, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	var out models.User
	req := models.RegisterRequest{Name: name, Email: email, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ListFeatures(ctx context.Context, page, limit int) (*models.PaginatedFeatures, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var out models.PaginatedFeatures
	if err := c.doJSON(ctx, http.MethodGet, "/features/", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetFeature(ctx context.Context, id int64) (*models.Feature, error) {
	var out models.Feature
	if err := c.doJSON(ctx, http.MethodGet, "/features/"+strconv.FormatInt(id, 10), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateFeature(ctx context.Context, title string, description *string) (*models.Feature, error) {
	var out models.Feature
	req := models.CreateFeatureRequest{Title: title, Description: description}
	if err := c.doJSON(ctx, http.MethodPost, "/features/", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Vote(ctx context.Context, featureID int64) (*models.Vote, error) {
	var out models.Vote
	if err := c.doJSON(ctx, http.MethodPost, "/votes/", nil, models.VoteRequest{FeatureID: featureID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) RemoveVote(ctx context.Context, featureID int64) (*models.Ack, error) {
	var out models.Ack
	if err := c.doJSON(ctx, http.MethodDelete, "/votes/"+strconv.FormatInt(featureID, 10), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	var out models.Health
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, nil, &out); err != nil {
		return err
	}
	if out.Status != "healthy" {
		return ErrUnavailable
	}
	return nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, query url.Values, in any, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	return c.do(ctx, method, path, query, body, contentTypeJSON, out)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return err
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	c.authorize(ctx, req)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.logger.Debug(ctx, "request done",
		"method", method, "path", path, "status", resp.StatusCode,
		"request_id", requestID, "duration", time.Since(start))

	return c.decodeResponse(ctx, resp, out)
}

func (c *HTTPClient) authorize(ctx context.Context, req *http.Request) {
	if c.store == nil {
		return
	}
	sess, err := c.store.Get(ctx)
	if err != nil {
		c.logger.Warn(ctx, "session read failed, sending request without token", "error", err)
		return
	}
	if sess == nil {
		return
	}
	req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+sess.AccessToken)
}

func (c *HTTPClient) decodeResponse(ctx context.Context, resp *http.Response, out any) error {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %w", ErrUnavailable, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var eb models.APIErrorBody
		if json.Unmarshal(raw, &eb) == nil {
			apiErr.Detail = eb.Detail
		}
		if resp.StatusCode == http.StatusUnauthorized {
			c.handleUnauthorized(ctx)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}

// handleUnauthorized forgets the session. It runs for every 401 no matter
// which endpoint produced it.
func (c *HTTPClient) handleUnauthorized(ctx context.Context) {
	if c.store != nil {
		if err := c.store.Clear(ctx); err != nil {
			c.logger.Error(ctx, "session clear failed", "error", err)
		}
	}
	c.logger.Info(ctx, "session cleared after 401")
	if c.onUnauthorized != nil {
		c.onUnauthorized(ctx)
	}
}
