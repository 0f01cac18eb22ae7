package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/featurevote/internal/client/models"
	"github.com/dmitrijs2005/featurevote/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/featurevote/internal/dbx"
)

// SQLiteStore keeps the session in the metadata table of the local
// database so it survives restarts.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Get(ctx context.Context) (*Session, error) {
	var sess *Session

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)

		token, err := repo.Get(ctx, keyAccessToken)
		if err != nil {
			return err
		}
		rawUser, err := repo.Get(ctx, keyUser)
		if err != nil {
			return err
		}
		if len(token) == 0 || len(rawUser) == 0 {
			return nil
		}
		tokenType, err := repo.Get(ctx, keyTokenType)
		if err != nil {
			return err
		}

		var user models.User
		if err := json.Unmarshal(rawUser, &user); err != nil {
			return fmt.Errorf("decode stored user: %w", err)
		}

		sess = &Session{
			AccessToken: string(token),
			TokenType:   tokenTypeOrDefault(string(tokenType)),
			User:        &user,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *SQLiteStore) Set(ctx context.Context, token models.AuthToken, user *models.User) error {
	if err := validate(token, user); err != nil {
		return err
	}

	rawUser, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyAccessToken, []byte(token.AccessToken)); err != nil {
			return err
		}
		if err := repo.Set(ctx, keyTokenType, []byte(tokenTypeOrDefault(token.TokenType))); err != nil {
			return err
		}
		return repo.Set(ctx, keyUser, rawUser)
	})
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Delete(ctx, keyAccessToken, keyTokenType, keyUser)
	})
}
