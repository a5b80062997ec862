package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/useraccounts/internal/common"
	"github.com/dmitrijs2005/useraccounts/internal/dbx"
	"github.com/dmitrijs2005/useraccounts/internal/server/auth"
	"github.com/dmitrijs2005/useraccounts/internal/server/models"
	sessionsrepo "github.com/dmitrijs2005/useraccounts/internal/server/repositories/sessions"
	usersrepo "github.com/dmitrijs2005/useraccounts/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

var errBoom = errors.New("boom")

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func newTestHasher(t *testing.T) *auth.Hasher {
	t.Helper()
	h, err := auth.NewHasher(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewHasher: %v", err)
	}
	return h
}

type fakeUsersRepo struct {
	byID map[string]*models.User

	lastFilter models.UserFilter
	listOut    []*models.User

	createErr error
	getErr    error
	listErr   error
	updateErr error
	deleteErr error

	deleted []string
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byID: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsersRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsersRepo) List(_ context.Context, filter models.UserFilter) ([]*models.User, error) {
	f.lastFilter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeUsersRepo) Update(_ context.Context, u *models.User) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.byID[u.ID]; ok {
		cp := *u
		cp.CreatedAt = f.byID[u.ID].CreatedAt
		f.byID[u.ID] = &cp
	}
	return nil
}

func (f *fakeUsersRepo) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	delete(f.byID, id)
	return nil
}

type fakeSessionsRepo struct {
	byToken map[string]*models.Session

	createErr error
	findErr   error
	deleteErr error
	byUserErr error

	deletedUsers []string
}

func newFakeSessionsRepo() *fakeSessionsRepo {
	return &fakeSessionsRepo{byToken: map[string]*models.Session{}}
}

func (f *fakeSessionsRepo) Create(_ context.Context, s *models.Session) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *s
	f.byToken[s.AccessToken] = &cp
	return nil
}

func (f *fakeSessionsRepo) FindValid(_ context.Context, token string, now time.Time) (*models.Session, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	s, ok := f.byToken[token]
	if !ok || s.ExpiresAt.Before(now) {
		return nil, common.ErrorNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionsRepo) Delete(_ context.Context, token string) (bool, error) {
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	_, ok := f.byToken[token]
	delete(f.byToken, token)
	return ok, nil
}

func (f *fakeSessionsRepo) DeleteByUser(_ context.Context, userID string) error {
	if f.byUserErr != nil {
		return f.byUserErr
	}
	f.deletedUsers = append(f.deletedUsers, userID)
	for tok, s := range f.byToken {
		if s.UserID == userID {
			delete(f.byToken, tok)
		}
	}
	return nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	s *fakeSessionsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{u: newFakeUsersRepo(), s: newFakeSessionsRepo()}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository           { return m.u }
func (m *fakeRepoManager) Sessions(dbx.DBTX) sessionsrepo.Repository     { return m.s }
