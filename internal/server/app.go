// Package server wires the accounts service together: storage, migrations,
// services, the HTTP API and the gRPC health endpoint, and runs them until
// the process is signalled.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/useraccounts/internal/logging"
	"github.com/dmitrijs2005/useraccounts/internal/server/auth"
	"github.com/dmitrijs2005/useraccounts/internal/server/config"
	"github.com/dmitrijs2005/useraccounts/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/useraccounts/internal/server/rest"
	"github.com/dmitrijs2005/useraccounts/internal/server/services"
	"github.com/gin-gonic/gin"

	gs "github.com/dmitrijs2005/useraccounts/internal/server/grpc"
)

// seams for tests
var (
	openDB = func(dsn string) (*sql.DB, error) {
		return sql.Open(repomanager.DriverName, dsn)
	}
	newRepositoryManager = repomanager.NewPostgresRepositoryManager
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	userService    *services.UserService
	sessionService *services.SessionService
	cookies        *auth.CookieCodec
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	hasher, err := auth.NewHasher(c.PasswordHashCost)
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm := newRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)

	return &App{
		config:         c,
		logger:         logger,
		db:             db,
		userService:    services.NewUserService(db, rm, hasher),
		sessionService: services.NewSessionService(db, rm, hasher, c.SessionValidityDuration),
		cookies:        auth.NewCookieCodec(c.SecretKey),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := rest.NewServer(app.config.EndpointAddrHTTP, app.logger, app.userService, app.sessionService,
		app.cookies, app.config.CookieName)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewHealthServer(app.config.EndpointAddrGRPC, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled, a signal arrives or a server fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.config.EndpointAddrGRPC != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
