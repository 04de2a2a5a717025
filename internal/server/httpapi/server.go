// Package httpapi serves the newsroom REST API over net/http.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/newsroom/internal/logging"
	"github.com/dmitrijs2005/newsroom/internal/server/auth"
	"github.com/dmitrijs2005/newsroom/internal/server/models"
	"github.com/dmitrijs2005/newsroom/internal/server/ratelimit"
	"github.com/dmitrijs2005/newsroom/internal/server/services"
)

// UserService is the part of services.UserService the API needs.
type UserService interface {
	Register(ctx context.Context, email, password string, isAdmin bool, caller *auth.Identity) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.Token, error)
	Identify(ctx context.Context, token string) (*auth.Identity, error)
	Me(ctx context.Context, id *auth.Identity) (*models.User, error)
}

// ArticleService is the part of services.ArticleService the API needs.
type ArticleService interface {
	Create(ctx context.Context, id *auth.Identity, title, content string) (*models.Article, error)
	List(ctx context.Context, skip, limit int) ([]*models.Article, error)
	Get(ctx context.Context, articleID int64) (*models.Article, error)
	Update(ctx context.Context, id *auth.Identity, articleID int64, title, content string) (*models.Article, error)
	Delete(ctx context.Context, id *auth.Identity, articleID int64) error
}

type Server struct {
	address  string
	users    UserService
	articles ArticleService
	logger   logging.Logger
	mux      *http.ServeMux
	handler  http.Handler

	loginLimiter *ratelimit.Limiter
}

// Option configures a Server.
type Option func(*Server)

// WithLoginRateLimit limits POST /token to perMinute requests per client IP
// with the given burst. perMinute <= 0 disables the limit.
func WithLoginRateLimit(perMinute, burst int) Option {
	return func(s *Server) {
		s.loginLimiter = ratelimit.PerMinute(perMinute, burst)
	}
}

func NewServer(addr string, l logging.Logger, us UserService, as ArticleService, opts ...Option) *Server {
	s := &Server{
		address:  addr,
		users:    us,
		articles: as,
		logger:   l.With("module", "http_server"),
		mux:      http.NewServeMux(),
	}
	for _, o := range opts {
		o(s)
	}
	s.routes()
	s.handler = s.recoverer(s.requestID(s.accessLog(s.mux)))
	return s
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-stopped
}
