// Package auth resolves the anonymous session a request belongs to. Carts and the
// signed-in user are both scoped to this session id.
package auth

import (
	"context"
	"net/http"
	"strings"

	"google.golang.org/grpc/metadata"
)

const (
	SessionMetadataKey = "x-session-id"
	SessionHeader      = "X-Session-ID"
	SessionCookie      = "session_id"
)

type sessionKey struct{}

// WithSessionID stores the session id on ctx, e.g. from HTTP middleware.
func WithSessionID(ctx context.Context, session string) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSessionID returns the session id put on ctx by WithSessionID, falling back to
// incoming gRPC metadata.
func GetSessionID(ctx context.Context) string {
	if val, ok := ctx.Value(sessionKey{}).(string); ok && val != "" {
		return val
	}

	md, ok := metadata.FromIncomingContext(ctx)
	if ok {
		if val := md.Get(SessionMetadataKey); len(val) > 0 {
			return strings.TrimSpace(val[0])
		}
	}
	return ""
}

// SessionFromRequest reads the X-Session-ID header, then the session_id cookie.
func SessionFromRequest(r *http.Request) string {
	if v := strings.TrimSpace(r.Header.Get(SessionHeader)); v != "" {
		return v
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return strings.TrimSpace(c.Value)
	}
	return ""
}
