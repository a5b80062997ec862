package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/useraccounts/internal/common"
	"github.com/dmitrijs2005/useraccounts/internal/server/auth"
	"github.com/dmitrijs2005/useraccounts/internal/server/models"
	"github.com/dmitrijs2005/useraccounts/internal/server/repositories/repomanager"
)

// SessionService issues, validates and revokes persisted login sessions.
// The session row is the only source of truth; transports just carry the token.
type SessionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.Hasher
	validity    time.Duration
	clock       Clock
}

func NewSessionService(db *sql.DB, m repomanager.RepositoryManager, hasher *auth.Hasher, validity time.Duration) *SessionService {
	return &SessionService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		validity:    validity,
		clock:       systemClock{},
	}
}

// Validity is the lifetime of sessions issued by Login.
func (s *SessionService) Validity() time.Duration {
	return s.validity
}

// Login checks the password of userID and opens a session. Unknown users and
// wrong passwords both yield common.ErrorUnauthorized and write nothing.
func (s *SessionService) Login(ctx context.Context, userID, password string) (*models.Session, error) {
	if userID == "" || password == "" {
		return nil, fmt.Errorf("%w: userId and password are required", common.ErrorValidation)
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if !s.hasher.Verify(password, user.Password) {
		return nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken()
	if err != nil {
		return nil, fmt.Errorf("%w: generating token: %v", common.ErrorInternal, err)
	}

	now := s.clock.Now()
	session := &models.Session{
		UserID:      user.ID,
		AccessToken: token,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.validity),
	}
	if err := s.repomanager.Sessions(s.db).Create(ctx, session); err != nil {
		return nil, fmt.Errorf("error creating session: %w", err)
	}

	return session, nil
}

// Authenticate returns the live session for token. Missing, unknown and
// expired tokens yield common.ErrorUnauthorized.
func (s *SessionService) Authenticate(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, common.ErrorUnauthorized
	}

	now := s.clock.Now()
	session, err := s.repomanager.Sessions(s.db).FindValid(ctx, token, now)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching session: %w", err)
	}

	if !session.ValidAt(now) {
		return nil, common.ErrorUnauthorized
	}
	return session, nil
}

// Logout deletes the session holding token and reports whether one existed.
// An empty token is a no-op.
func (s *SessionService) Logout(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	deleted, err := s.repomanager.Sessions(s.db).Delete(ctx, token)
	if err != nil {
		return false, fmt.Errorf("error deleting session: %w", err)
	}
	return deleted, nil
}
