// Package services contains server-side business logic. It is independent
// of the transport: handlers call it and map its sentinel errors.
package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/useraccounts/internal/common"
	"github.com/dmitrijs2005/useraccounts/internal/dbx"
	"github.com/dmitrijs2005/useraccounts/internal/server/auth"
	"github.com/dmitrijs2005/useraccounts/internal/server/models"
	"github.com/dmitrijs2005/useraccounts/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// DefaultListLimit applies when a listing does not ask for a page size.
const DefaultListLimit = 100

// UserInput is the writable part of a user. Every field is required on both
// create and update.
type UserInput struct {
	Pseudo    string
	Email     string
	FirstName string
	LastName  string
	Password  string
}

func (in UserInput) validate() error {
	if in.Pseudo == "" || in.Email == "" || in.FirstName == "" || in.LastName == "" || in.Password == "" {
		return fmt.Errorf("%w: all fields must be given", common.ErrorValidation)
	}
	return nil
}

// UserService implements the user resource: listing, lookup, registration,
// update and removal.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.Hasher
	clock       Clock
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher *auth.Hasher) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		clock:       systemClock{},
	}
}

// List returns users matching filter. A zero Limit means DefaultListLimit.
func (s *UserService) List(ctx context.Context, filter models.UserFilter) ([]*models.User, error) {
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, fmt.Errorf("%w: limit and offset must not be negative", common.ErrorValidation)
	}
	if filter.Order != "" && !filter.Order.Valid() {
		return nil, fmt.Errorf("%w: unknown order field %q", common.ErrorValidation, filter.Order)
	}
	if filter.Limit == 0 {
		filter.Limit = DefaultListLimit
	}

	list, err := s.repomanager.Users(s.db).List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return list, nil
}

// Get returns the user with id or an error matching common.ErrorNotFound.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	return user, nil
}

// Create registers a new user with a hashed password and a fresh id.
func (s *UserService) Create(ctx context.Context, in UserInput) (*models.User, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	hashed, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:        uuid.NewString(),
		Pseudo:    in.Pseudo,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Password:  hashed,
		CreatedAt: s.clock.Now(),
	}

	if err := s.repomanager.Users(s.db).Create(ctx, user); err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return user, nil
}

// Update overwrites the user's fields. The password is hashed like on
// create. Updating an unknown id is a no-op.
func (s *UserService) Update(ctx context.Context, id string, in UserInput) error {
	if err := in.validate(); err != nil {
		return err
	}

	hashed, err := s.hashPassword(in.Password)
	if err != nil {
		return err
	}

	now := s.clock.Now()
	user := &models.User{
		ID:        id,
		Pseudo:    in.Pseudo,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Password:  hashed,
		UpdatedAt: &now,
	}

	if err := s.repomanager.Users(s.db).Update(ctx, user); err != nil {
		return fmt.Errorf("error updating user: %w", err)
	}
	return nil
}

// Delete removes the user and its sessions in one transaction. Deleting an
// unknown id succeeds.
func (s *UserService) Delete(ctx context.Context, id string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Sessions(tx).DeleteByUser(ctx, id); err != nil {
			return err
		}
		return s.repomanager.Users(tx).Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	return nil
}

func (s *UserService) hashPassword(plaintext string) (string, error) {
	hashed, err := s.hasher.Hash(plaintext)
	if err != nil {
		if auth.IsPasswordTooLong(err) {
			return "", fmt.Errorf("%w: password too long", common.ErrorValidation)
		}
		return "", fmt.Errorf("%w: hashing password: %v", common.ErrorInternal, err)
	}
	return hashed, nil
}
