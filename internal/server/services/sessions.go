// Package services contains the application services of the server:
// session lifecycle (registration, login, refresh rotation, logout) and
// task management.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AnandRajBind/Task-Management/internal/common"
	"github.com/AnandRajBind/Task-Management/internal/dbx"
	"github.com/AnandRajBind/Task-Management/internal/server/auth"
	"github.com/AnandRajBind/Task-Management/internal/server/models"
	"github.com/AnandRajBind/Task-Management/internal/server/repositories/repomanager"
)

// AuthTokens is a freshly signed access/refresh pair. The refresh token is
// also persisted server-side for rotation.
type AuthTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// SessionService orchestrates the token lifecycle against the credential
// store. It holds no per-session state; the store is the single source of
// truth for refresh-token validity.
type SessionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	codec       *auth.Codec
	hasher      PasswordHasher
}

func NewSessionService(db *sql.DB, m repomanager.RepositoryManager, codec *auth.Codec) *SessionService {
	return &SessionService{
		db:          db,
		repomanager: m,
		codec:       codec,
		hasher:      BcryptHasher{},
	}
}

// Register creates a new account and signs it in. A user with the same
// email yields common.ErrEmailTaken.
func (s *SessionService) Register(ctx context.Context, email, password, name string) (*models.User, *AuthTokens, error) {

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
	}

	repo := s.repomanager.Users(s.db)

	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, nil, common.ErrEmailTaken
		}
		return nil, nil, fmt.Errorf("error creating user: %w", err)
	}

	tokens, err := s.issueTokens(ctx, s.db, user)
	if err != nil {
		return nil, nil, err
	}

	return user.Sanitized(), tokens, nil
}

// Login verifies credentials and signs a fresh token pair. A missing user
// and a wrong password both yield common.ErrInvalidCredentials so the
// response does not reveal which check failed.
func (s *SessionService) Login(ctx context.Context, email, password string) (*models.User, *AuthTokens, error) {

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil, common.ErrInvalidCredentials
		}
		return nil, nil, common.ErrInternal
	}

	if !s.hasher.Compare(user.PasswordHash, password) {
		return nil, nil, common.ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(ctx, s.db, user)
	if err != nil {
		return nil, nil, err
	}

	return user.Sanitized(), tokens, nil
}

// Refresh rotates a refresh token: the presented token is verified, looked
// up in the store, deleted, and replaced by a brand-new pair. A token that
// verifies but has no row (already rotated or logged out) is invalid; the
// store, not the signature, is the authority.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (*AuthTokens, error) {

	// Malformed tokens never reach a store lookup.
	if _, err := s.codec.VerifyRefresh(refreshToken); err != nil {
		return nil, common.ErrInvalidRefreshToken
	}

	repo := s.repomanager.RefreshTokens(s.db)

	stored, err := repo.FindWithUser(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}

	if stored.Expires.Before(time.Now()) {
		if _, err := repo.Delete(ctx, refreshToken); err != nil {
			return nil, fmt.Errorf("error deleting refresh token: %w", err)
		}
		return nil, common.ErrRefreshTokenExpired
	}

	var tokens *AuthTokens

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		// The delete is the rotation point: of two concurrent refreshes
		// with the same token, only one removes the row, the other sees
		// zero rows and fails.
		n, err := s.repomanager.RefreshTokens(tx).Delete(ctx, refreshToken)
		if err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		if n == 0 {
			return common.ErrInvalidRefreshToken
		}

		tokens, err = s.issueTokens(ctx, tx, stored.User)
		return err
	})

	if err != nil {
		return nil, err
	}

	return tokens, nil
}

// Logout deletes any stored rows for the given refresh token. Absence of a
// matching row is not an error.
func (s *SessionService) Logout(ctx context.Context, refreshToken string) error {
	repo := s.repomanager.RefreshTokens(s.db)
	if _, err := repo.Delete(ctx, refreshToken); err != nil {
		return fmt.Errorf("error deleting refresh token: %w", err)
	}
	return nil
}

func (s *SessionService) issueTokens(ctx context.Context, db dbx.DBTX, user *models.User) (*AuthTokens, error) {

	payload := auth.TokenPayload{UserID: user.ID, Email: user.Email}

	accessToken, err := s.codec.SignAccess(payload)
	if err != nil {
		return nil, common.ErrInternal
	}

	refreshToken, err := s.codec.SignRefresh(payload)
	if err != nil {
		return nil, common.ErrInternal
	}

	repo := s.repomanager.RefreshTokens(db)
	if err := repo.Create(ctx, user.ID, refreshToken, s.codec.RefreshExpiry()); err != nil {
		return nil, common.ErrInternal
	}

	return &AuthTokens{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
