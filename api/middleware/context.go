package middleware

import (
	"context"
	"strconv"

	"github.com/angelmondragon/gestion-backend/pkg/auth"
)

type contextKey string

const (
	ctxActor     contextKey = "actor"
	ctxRequestID contextKey = "request_id"
)

// ActorFromContext returns the authenticated caller seeded by Auth.
func ActorFromContext(ctx context.Context) (auth.Actor, bool) {
	if ctx == nil {
		return auth.Actor{}, false
	}
	actor, ok := ctx.Value(ctxActor).(auth.Actor)
	return actor, ok
}

// UserIDFromContext returns the caller id as a string, or "" when anonymous.
func UserIDFromContext(ctx context.Context) string {
	actor, ok := ActorFromContext(ctx)
	if !ok || actor.UserID <= 0 {
		return ""
	}
	return strconv.FormatInt(actor.UserID, 10)
}

func RoleFromContext(ctx context.Context) string {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return ""
	}
	return actor.Role.String()
}

// WithActor injects the caller into the context.
func WithActor(ctx context.Context, actor auth.Actor) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxActor, actor)
}
