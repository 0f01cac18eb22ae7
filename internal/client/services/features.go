package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/featurevote/internal/client/client"
	"github.com/dmitrijs2005/featurevote/internal/client/models"
	"github.com/dmitrijs2005/featurevote/internal/client/query"
	"github.com/dmitrijs2005/featurevote/internal/common"
	"github.com/dmitrijs2005/featurevote/internal/logging"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

var ErrEmptyTitle = errors.New("title is required")

// FeatureService reads and mutates features through the query cache.
// Successful mutations invalidate every cached listing page; detail
// entries are left to expire.
type FeatureService interface {
	List(ctx context.Context, page, limit int) (*models.PaginatedFeatures, error)
	Get(ctx context.Context, id int64) (*models.Feature, error)
	Create(ctx context.Context, title, description string) (*models.Feature, error)
	Vote(ctx context.Context, featureID int64) (*models.Vote, error)
	RemoveVote(ctx context.Context, featureID int64) (*models.Ack, error)
}

type featureService struct {
	client client.Client
	cache  query.Cache
	logger logging.Logger
}

func NewFeatureService(c client.Client, cache query.Cache, logger logging.Logger) FeatureService {
	return &featureService{client: c, cache: cache, logger: logger}
}

// NormalizePage applies listing defaults: values below 1 fall back to the
// defaults and limit is capped at the backend maximum.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

func (s *featureService) List(ctx context.Context, page, limit int) (*models.PaginatedFeatures, error) {
	page, limit = NormalizePage(page, limit)
	key := query.NewKey(query.OpFeatures, query.P("page", page), query.P("limit", limit))

	return query.Fetch(ctx, s.cache, key, func(ctx context.Context) (*models.PaginatedFeatures, error) {
		return s.client.ListFeatures(ctx, page, limit)
	})
}

func (s *featureService) Get(ctx context.Context, id int64) (*models.Feature, error) {
	key := query.NewKey(query.OpFeature, query.P("id", id))

	return query.Fetch(ctx, s.cache, key, func(ctx context.Context) (*models.Feature, error) {
		return s.client.GetFeature(ctx, id)
	})
}

// Create trims both fields. A blank title is rejected without a network
// call; a blank description is sent as absent.
func (s *featureService) Create(ctx context.Context, title, description string) (*models.Feature, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.Join(common.ErrValidation, ErrEmptyTitle)
	}

	var desc *string
	if d := strings.TrimSpace(description); d != "" {
		desc = &d
	}

	f, err := s.client.CreateFeature(ctx, title, desc)
	if err != nil {
		return nil, err
	}
	s.invalidateListing(ctx)
	return f, nil
}

func (s *featureService) Vote(ctx context.Context, featureID int64) (*models.Vote, error) {
	v, err := s.client.Vote(ctx, featureID)
	if err != nil {
		return nil, err
	}
	s.invalidateListing(ctx)
	return v, nil
}

func (s *featureService) RemoveVote(ctx context.Context, featureID int64) (*models.Ack, error) {
	ack, err := s.client.RemoveVote(ctx, featureID)
	if err != nil {
		return nil, err
	}
	s.invalidateListing(ctx)
	return ack, nil
}

// invalidateListing runs after the mutation succeeded, so a cache failure is
// only logged.
func (s *featureService) invalidateListing(ctx context.Context) {
	if err := s.cache.InvalidateOperation(ctx, query.OpFeatures); err != nil {
		s.logger.Warn(ctx, "listing invalidation failed", "error", err)
	}
}
