package grpc

import (
	"context"

	"github.com/dmitrijs2005/newsroom/internal/common"
	"github.com/dmitrijs2005/newsroom/internal/server/auth"
	"github.com/dmitrijs2005/newsroom/internal/server/ratelimit"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
)

type tokenPolicy int

const (
	tokenIgnored tokenPolicy = iota
	tokenOptional
	tokenRequired
)

var methodPolicy = map[string]tokenPolicy{
	RegisterFullMethod: tokenOptional,
	WhoAmIFullMethod:   tokenRequired,
}

// tokenFromMetadata reads "authorization: Bearer <t>", falling back to
// "access_token: <t>".
func tokenFromMetadata(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if v := md.Get(common.AuthorizationHeaderName); len(v) > 0 {
		if t := auth.BearerToken(v[0]); t != "" {
			return t
		}
	}
	if v := md.Get(common.AccessTokenHeaderName); len(v) > 0 {
		return v[0]
	}
	return ""
}

// peerKey is the caller's host, or "" when the transport did not record one.
func peerKey(ctx context.Context) string {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return ""
	}
	return ratelimit.HostKey(p.Addr.String())
}

func (s *GRPCServer) loginRateInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if info.FullMethod == LoginFullMethod && !s.loginLimiter.Allow(peerKey(ctx)) {
		return nil, s.statusError(ctx, common.ErrTooManyRequests)
	}
	return handler(ctx, req)
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	policy := methodPolicy[info.FullMethod]
	if policy == tokenIgnored {
		return handler(ctx, req)
	}

	token := tokenFromMetadata(ctx)
	if token == "" {
		if policy == tokenRequired {
			return nil, s.statusError(ctx, common.ErrUnauthenticated)
		}
		return handler(ctx, req)
	}

	id, err := s.users.Identify(ctx, token)
	if err != nil {
		return nil, s.statusError(ctx, err)
	}

	return handler(auth.WithIdentity(ctx, id), req)
}
