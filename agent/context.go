package agent

import (
	"context"
)

type sessionKeyContext struct{}

type formIDContext struct{}

// DefaultSessionKey is used when a caller does not name a session.
const DefaultSessionKey = "default"

// WithSessionKey routes an adk run to a conversation session.
func WithSessionKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, sessionKeyContext{}, key)
}

// SessionKeyFromContext gets the routing key from the context.
func SessionKeyFromContext(ctx context.Context) (string, bool) {
	value := ctx.Value(sessionKeyContext{})
	if value == nil {
		return "", false
	}
	key, ok := value.(string)
	return key, ok
}

func sessionKeyOrDefault(ctx context.Context) string {
	key, ok := SessionKeyFromContext(ctx)
	if ok && key != "" {
		return key
	}
	return DefaultSessionKey
}

// WithFormID selects the form a new session is seeded with.
func WithFormID(ctx context.Context, formID string) context.Context {
	return context.WithValue(ctx, formIDContext{}, formID)
}

func FormIDFromContext(ctx context.Context) (string, bool) {
	value := ctx.Value(formIDContext{})
	if value == nil {
		return "", false
	}
	id, ok := value.(string)
	return id, ok
}
