// Package server wires configuration, storage, services and the HTTP and
// gRPC transports into one runnable application.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/dmitrijs2005/newsroom/internal/logging"
	"github.com/dmitrijs2005/newsroom/internal/server/auth"
	"github.com/dmitrijs2005/newsroom/internal/server/config"
	"github.com/dmitrijs2005/newsroom/internal/server/httpapi"
	"github.com/dmitrijs2005/newsroom/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/newsroom/internal/server/services"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/newsroom/internal/server/grpc"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	db             *sql.DB
	repomanager    repomanager.RepositoryManager
	userService    *services.UserService
	articleService *services.ArticleService
}

// NewApp builds the services for cfg. Logs go to w as JSON lines. Nothing
// touches the database until Run.
func NewApp(cfg *config.Config, w io.Writer) (*App, error) {
	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	sl := logging.NewJSON(w, level)

	hasher, err := auth.NewHasher(cfg.PasswordScheme, cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	tokens, err := auth.NewTokenCodec(auth.TokenConfig{
		Secret:    []byte(cfg.SecretKey),
		Algorithm: cfg.JWTAlgorithm,
		Issuer:    cfg.JWTIssuer,
		Lifetime:  cfg.AccessTokenValidityDuration,
	})
	if err != nil {
		return nil, err
	}

	// The pool is opened last so the settings checks above cannot leak it.
	db, rm, err := openStore(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	us, err := services.NewUserService(db, rm, hasher, tokens, auth.WithLogger(sl.Logr().WithName("auth")))
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, err
	}

	return &App{
		config:         cfg,
		logger:         sl,
		db:             db,
		repomanager:    rm,
		userService:    us,
		articleService: services.NewArticleService(db, rm),
	}, nil
}

func openStore(dsn string) (*sql.DB, repomanager.RepositoryManager, error) {
	if dsn == config.MemoryDSN {
		return nil, repomanager.NewMemoryRepositoryManager(), nil
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, nil, err
	}
	return db, repomanager.NewPostgresRepositoryManager(), nil
}

// prepare migrates the schema and seeds the bootstrap administrator.
func (app *App) prepare(ctx context.Context) error {
	if app.db != nil {
		if err := app.db.PingContext(ctx); err != nil {
			return fmt.Errorf("db ping error: %w", err)
		}
	}
	if err := app.repomanager.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	if app.config.AdminEmail == "" {
		return nil
	}
	created, err := app.userService.EnsureAdmin(ctx, app.config.AdminEmail, app.config.AdminPassword)
	if err != nil {
		return fmt.Errorf("admin bootstrap error: %w", err)
	}
	if created {
		app.logger.Info(ctx, "Bootstrap administrator created", "email", services.NormalizeEmail(app.config.AdminEmail))
	}
	return nil
}

// Run serves HTTP and gRPC until ctx is cancelled or either server fails.
func (app *App) Run(ctx context.Context) error {
	app.logger.Info(ctx, "Starting app...")

	if app.db != nil {
		defer app.db.Close()
	}

	if err := app.prepare(ctx); err != nil {
		return err
	}

	hs := httpapi.NewServer(app.config.EndpointAddrHTTP, app.logger, app.userService, app.articleService,
		httpapi.WithLoginRateLimit(app.config.LoginRateLimit, app.config.LoginRateBurst))
	gsrv := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.userService,
		gs.WithLoginRateLimit(app.config.LoginRateLimit, app.config.LoginRateBurst))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return hs.Run(gctx) })
	g.Go(func() error { return gsrv.Run(gctx) })

	err := g.Wait()
	app.logger.Info(ctx, "App stopped")
	return err
}
