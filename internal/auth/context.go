package auth

import (
	"context"

	"google.golang.org/grpc/metadata"
)

const UserIDHeader = "x-user-id"

type userIDKey struct{}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// GetUserID returns the acting user, preferring the value placed by the
// context interceptor over raw request metadata.
func GetUserID(ctx context.Context) string {
	if val, ok := ctx.Value(userIDKey{}).(string); ok {
		return val
	}

	md, ok := metadata.FromIncomingContext(ctx)
	if ok {
		if val := md.Get(UserIDHeader); len(val) > 0 {
			return val[0]
		}
	}
	return ""
}

// UserIDPtr is GetUserID for audit columns, nil when nobody is signed in.
func UserIDPtr(ctx context.Context) *string {
	if id := GetUserID(ctx); id != "" {
		return &id
	}
	return nil
}
