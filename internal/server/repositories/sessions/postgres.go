package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/useraccounts/internal/common"
	"github.com/dmitrijs2005/useraccounts/internal/dbx"
	"github.com/dmitrijs2005/useraccounts/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, s *models.Session) error {
	query :=
		`INSERT INTO sessions (user_id, access_token, created_at, expires_at)
		 VALUES ($1, $2, $3, $4)`

	if _, err := r.db.ExecContext(ctx, query, s.UserID, s.AccessToken, s.CreatedAt, s.ExpiresAt); err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}

	return nil
}

func (r *PostgresRepository) FindValid(ctx context.Context, token string, now time.Time) (*models.Session, error) {
	query :=
		`SELECT user_id, access_token, created_at, expires_at FROM sessions
		 WHERE access_token = $1 AND expires_at >= $2`

	s := &models.Session{}
	err := r.db.QueryRowContext(ctx, query, token, now).Scan(&s.UserID, &s.AccessToken, &s.CreatedAt, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return s, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, token string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE access_token = $1`, token)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return n > 0, nil
}

func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
