package interceptors

import (
	"context"
	"crypto/subtle"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// authorizationHeader - имя заголовка для авторизации в metadata
const authorizationHeader = "authorization"

// AuthUnaryInterceptor проверяет токен в заголовке "authorization" в формате "Bearer <token>".
// Пустой token отключает проверку.
func AuthUnaryInterceptor(token string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if err := authorize(ctx, token); err != nil {
			return nil, err
		}
		return handler(ctx, req)
	}
}

// AuthStreamInterceptor та же проверка для стримов
func AuthStreamInterceptor(token string) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		if err := authorize(ss.Context(), token); err != nil {
			return err
		}
		return handler(srv, ss)
	}
}

func authorize(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return status.Error(codes.Unauthenticated, "metadata not provided")
	}

	authHeaders := md.Get(authorizationHeader)
	if len(authHeaders) == 0 {
		return status.Error(codes.Unauthenticated, "authorization header not provided")
	}

	got, found := strings.CutPrefix(authHeaders[0], "Bearer ")
	if !found {
		return status.Error(codes.Unauthenticated, "invalid authorization header format")
	}
	if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
		return status.Error(codes.Unauthenticated, "invalid token")
	}
	return nil
}
