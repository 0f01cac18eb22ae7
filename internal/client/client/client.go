package client

import (
	"context"

	"github.com/dmitrijs2005/featurevote/internal/client/models"
)

type Client interface {
	Login(ctx context.Context, username, password string) (*models.AuthToken, error)
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	ListFeatures(ctx context.Context, page, limit int) (*models.PaginatedFeatures, error)
	GetFeature(ctx context.Context, id int64) (*models.Feature, error)
	CreateFeature(ctx context.Context, title string, description *string) (*models.Feature, error)
	Vote(ctx context.Context, featureID int64) (*models.Vote, error)
	RemoveVote(ctx context.Context, featureID int64) (*models.Ack, error)
	Ping(ctx context.Context) error
}
