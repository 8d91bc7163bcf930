package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/lightway/internal/api"
	"github.com/dmitrijs2005/lightway/internal/common"
	"github.com/dmitrijs2005/lightway/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const identityTokenKey ctxKey = "identityToken"

// identityMethods require a session token in the identity_token metadata key.
var identityMethods = map[string]bool{
	api.FullMethod(api.MethodGetIdentity):   true,
	api.FullMethod(api.MethodCreateContent): true,
}

func (s *GRPCServer) identityTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if !identityMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	var sessionToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.IdentityTokenHeaderName); len(values) > 0 {
			sessionToken = values[0]
		}
	}
	if sessionToken == "" {
		return nil, status.Error(codes.Unauthenticated, "missing identity token")
	}

	identityToken, err := auth.GetIdentityTokenFromToken(sessionToken, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, "identity token expired")
		}
		return nil, status.Error(codes.Unauthenticated, "invalid identity token")
	}

	return handler(context.WithValue(ctx, identityTokenKey, identityToken), req)
}

func identityTokenFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(identityTokenKey).(string)
	return v, ok && v != ""
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	code := status.Code(err)
	args := []any{"method", info.FullMethod, "code", code.String(), "duration", time.Since(start)}
	switch code {
	case codes.OK:
		s.logger.Debug(ctx, "rpc", args...)
	case codes.Internal, codes.Unknown:
		s.logger.Error(ctx, "rpc", append(args, "error", err)...)
	default:
		s.logger.Info(ctx, "rpc", args...)
	}

	return resp, err
}
