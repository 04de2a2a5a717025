// Package grpc exposes the newsroom authentication API over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/newsroom/internal/logging"
	"github.com/dmitrijs2005/newsroom/internal/server/auth"
	"github.com/dmitrijs2005/newsroom/internal/server/models"
	"github.com/dmitrijs2005/newsroom/internal/server/ratelimit"
	"github.com/dmitrijs2005/newsroom/internal/server/services"
	"google.golang.org/grpc"
)

// UserService is the part of services.UserService the gRPC API needs.
type UserService interface {
	Register(ctx context.Context, email, password string, isAdmin bool, caller *auth.Identity) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.Token, error)
	Identify(ctx context.Context, token string) (*auth.Identity, error)
	Me(ctx context.Context, id *auth.Identity) (*models.User, error)
}

type GRPCServer struct {
	address string
	users   UserService
	logger  logging.Logger

	loginLimiter *ratelimit.Limiter
}

var _ AuthServiceServer = (*GRPCServer)(nil)

// Option configures a GRPCServer.
type Option func(*GRPCServer)

// WithLoginRateLimit limits Login to perMinute calls per peer address with
// the given burst. perMinute <= 0 disables the limit.
func WithLoginRateLimit(perMinute, burst int) Option {
	return func(s *GRPCServer) {
		s.loginLimiter = ratelimit.PerMinute(perMinute, burst)
	}
}

func NewGRPCServer(a string, l logging.Logger, us UserService, opts ...Option) *GRPCServer {
	s := &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		users:   us,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *GRPCServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loginRateInterceptor, s.accessTokenInterceptor))
	RegisterAuthServiceServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
