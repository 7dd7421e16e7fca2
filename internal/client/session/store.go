package session

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/AnandRajBind/Task-Management/internal/client/models"
	"github.com/AnandRajBind/Task-Management/internal/dbx"
)

// Keys under which session data is stored locally.
const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyUser         = "user"
)

// Store is the typed session facade over the key-value repository.
// Writes that span multiple keys happen in a single transaction so the
// stored token pair is never half-updated.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) repo(db dbx.DBTX) Repository {
	return NewSQLiteRepository(db)
}

func (s *Store) AccessToken(ctx context.Context) (string, error) {
	v, err := s.repo(s.db).Get(ctx, keyAccessToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *Store) RefreshToken(ctx context.Context) (string, error) {
	v, err := s.repo(s.db).Get(ctx, keyRefreshToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// User returns the stored user, or nil if nobody is logged in.
func (s *Store) User(ctx context.Context) (*models.User, error) {
	v, err := s.repo(s.db).Get(ctx, keyUser)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	var u models.User
	if err := json.Unmarshal(v, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Save stores the user together with a fresh token pair.
func (s *Store) Save(ctx context.Context, user *models.User, accessToken, refreshToken string) error {
	encoded, err := json.Marshal(user)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, keyUser, encoded); err != nil {
			return err
		}
		if err := repo.Set(ctx, keyAccessToken, []byte(accessToken)); err != nil {
			return err
		}
		return repo.Set(ctx, keyRefreshToken, []byte(refreshToken))
	})
}

// SaveTokens replaces the stored token pair, keeping the user record.
// Used after a silent refresh rotates the tokens.
func (s *Store) SaveTokens(ctx context.Context, accessToken, refreshToken string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, keyAccessToken, []byte(accessToken)); err != nil {
			return err
		}
		return repo.Set(ctx, keyRefreshToken, []byte(refreshToken))
	})
}

// Clear wipes the stored session (e.g., on logout or when a refresh fails).
func (s *Store) Clear(ctx context.Context) error {
	return s.repo(s.db).Clear(ctx)
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
