package middleware

import (
	"context"
	"net/http"

	"atelier-boutique/internal/session"

	"go.uber.org/zap"
)

type contextKey string

const SessionKey contextKey = "session"

// SessionHeader carries the session identifier between client and server.
const SessionHeader = "X-Session-ID"

// SessionMiddleware resolves the browsing session for the request. A
// missing or unknown id yields a fresh session seeded from the sample
// catalog; the resolved id is echoed back so the client can carry it on.
func SessionMiddleware(manager *session.Manager, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(SessionHeader)

			sess := manager.Acquire(id)
			if sess.ID() != id {
				logger.Debug("New session started", zap.String("session_id", sess.ID()))
			}

			w.Header().Set(SessionHeader, sess.ID())

			ctx := context.WithValue(r.Context(), SessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession extracts the browsing session from the request context.
func GetSession(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(SessionKey).(*session.Session)
	return sess, ok
}
