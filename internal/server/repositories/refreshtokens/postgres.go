package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AnandRajBind/Task-Management/internal/common"
	"github.com/AnandRajBind/Task-Management/internal/dbx"
	"github.com/AnandRajBind/Task-Management/internal/server/models"
	"github.com/google/uuid"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, userID string, token string, expiresAt time.Time) error {
	query := `
		INSERT INTO refresh_tokens (id, user_id, token, expires_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.ExecContext(ctx, query, uuid.NewString(), userID, token, expiresAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) FindWithUser(ctx context.Context, token string) (*models.StoredRefreshToken, error) {
	query := `
		SELECT rt.id, rt.user_id, rt.expires_at,
		       u.id, u.email, u.password_hash, u.name, u.created_at
		FROM refresh_tokens rt
		JOIN users u ON u.id = rt.user_id
		WHERE rt.token = $1
	`

	stored := &models.StoredRefreshToken{User: &models.User{}}
	stored.Token = token
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&stored.ID, &stored.UserID, &stored.Expires,
		&stored.User.ID, &stored.User.Email, &stored.User.PasswordHash,
		&stored.User.Name, &stored.User.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return stored, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, token string) (int64, error) {
	query := `
		DELETE FROM refresh_tokens
		WHERE token = $1
	`
	res, err := r.db.ExecContext(ctx, query, token)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
