package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/useraccounts/internal/common"
	"github.com/dmitrijs2005/useraccounts/internal/dbx"
	"github.com/dmitrijs2005/useraccounts/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

const selectUsers = `SELECT id, pseudo, email, firstname, lastname, password, created_at, updated_at FROM users`

// sortColumns is the only way a sort field reaches the statement text.
var sortColumns = map[models.SortField]string{
	models.SortByID:        "id",
	models.SortByPseudo:    "pseudo",
	models.SortByEmail:     "email",
	models.SortByFirstName: "firstname",
	models.SortByLastName:  "lastname",
	models.SortByCreatedAt: "created_at",
	models.SortByUpdatedAt: "updated_at",
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) error {
	query :=
		`INSERT INTO users (id, pseudo, email, firstname, lastname, password, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Pseudo, user.Email, user.FirstName, user.LastName, user.Password, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, selectUsers+` WHERE id = $1`, id)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) List(ctx context.Context, filter models.UserFilter) ([]*models.User, error) {
	query, args, err := buildListQuery(filter)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return users, nil
}

func (r *PostgresRepository) Update(ctx context.Context, user *models.User) error {
	query :=
		`UPDATE users SET pseudo = $1, email = $2, firstname = $3, lastname = $4, password = $5, updated_at = $6
		 WHERE id = $7`

	_, err := r.db.ExecContext(ctx, query,
		user.Pseudo, user.Email, user.FirstName, user.LastName, user.Password, user.UpdatedAt, user.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// buildListQuery renders filter into a statement where every client value
// is a bind parameter.
func buildListQuery(filter models.UserFilter) (string, []any, error) {
	var (
		conds []string
		args  []any
	)
	if filter.FirstName != "" {
		args = append(args, filter.FirstName)
		conds = append(conds, fmt.Sprintf("firstname LIKE '%%' || $%d || '%%'", len(args)))
	}
	if filter.LastName != "" {
		args = append(args, filter.LastName)
		conds = append(conds, fmt.Sprintf("lastname LIKE '%%' || $%d || '%%'", len(args)))
	}

	var sb strings.Builder
	sb.WriteString(selectUsers)
	if len(conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}

	if filter.Order != "" {
		col, ok := sortColumns[filter.Order]
		if !ok {
			return "", nil, fmt.Errorf("%w: unknown sort field %q", common.ErrorValidation, filter.Order)
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(col)
		switch filter.Direction {
		case models.SortAsc:
			sb.WriteString(" ASC")
		case models.SortDesc:
			sb.WriteString(" DESC")
		}
	}

	args = append(args, filter.Limit, filter.Offset)
	fmt.Fprintf(&sb, " LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return sb.String(), args, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*models.User, error) {
	u := &models.User{}
	var updated sql.NullTime
	if err := s.Scan(&u.ID, &u.Pseudo, &u.Email, &u.FirstName, &u.LastName, &u.Password, &u.CreatedAt, &updated); err != nil {
		return nil, err
	}
	if updated.Valid {
		t := updated.Time
		u.UpdatedAt = &t
	}
	return u, nil
}
