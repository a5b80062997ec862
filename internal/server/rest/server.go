// Package rest is the HTTP surface of the service: gin routes for users and
// sessions, the authentication gate and the JSON/HTML presentation of results.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/useraccounts/internal/logging"
	"github.com/dmitrijs2005/useraccounts/internal/server/auth"
	"github.com/dmitrijs2005/useraccounts/internal/server/models"
	"github.com/dmitrijs2005/useraccounts/internal/server/services"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// UserService is the user resource as seen by the handlers.
type UserService interface {
	List(ctx context.Context, filter models.UserFilter) ([]*models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, in services.UserInput) (*models.User, error)
	Update(ctx context.Context, id string, in services.UserInput) error
	Delete(ctx context.Context, id string) error
}

// SessionService is the session resource as seen by the handlers and the
// authentication gate.
type SessionService interface {
	Login(ctx context.Context, userID, password string) (*models.Session, error)
	Authenticate(ctx context.Context, token string) (*models.Session, error)
	Logout(ctx context.Context, token string) (bool, error)
	Validity() time.Duration
}

type Server struct {
	address    string
	logger     logging.Logger
	users      UserService
	sessions   SessionService
	cookies    *auth.CookieCodec
	cookieName string
	engine     *gin.Engine
}

func NewServer(a string, l logging.Logger, us UserService, ss SessionService, cookies *auth.CookieCodec, cookieName string) *Server {
	s := &Server{
		address:    a,
		logger:     l.With("module", "http_server"),
		users:      us,
		sessions:   ss,
		cookies:    cookies,
		cookieName: cookieName,
	}
	s.engine = s.routes()
	return s
}

// Handler returns the complete HTTP handler, method override included.
func (s *Server) Handler() http.Handler {
	return methodOverride(s.engine)
}

// Run serves HTTP on the configured address until ctx is done, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
