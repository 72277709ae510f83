package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/devart/devart-server/internal/model"
)

type ctxKey int

const identityKey ctxKey = iota

// identityFrom returns the verified caller email attached by RequireAuth.
func identityFrom(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(identityKey).(string)
	return email, ok
}

// withIdentity attaches a verified caller email to the context.
func withIdentity(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, identityKey, email)
}

// RequireAuth verifies the bearer token and attaches the caller's identity
// to the request context. A missing, malformed, invalid or expired token
// all fail with 401.
func (h *Handler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, "you are not authorized")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeError(w, http.StatusUnauthorized, "invalid authorization header")
			return
		}

		email, err := h.auth.VerifyToken(parts[1])
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), email)))
	})
}

// RequireRole gates a route on the caller's stored role. It must run after
// RequireAuth. A mismatch stops the chain with 403; the downstream handler
// is never invoked.
func (h *Handler) RequireRole(role model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := identityFrom(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "you are not authorized")
				return
			}

			stored, err := h.auth.RoleOf(r.Context(), email)
			if err != nil {
				h.respondError(w, r, err)
				return
			}
			if stored != role {
				writeError(w, http.StatusForbidden, "forbidden: "+string(role)+" access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// callerIs reports whether the verified caller matches the given email.
// Handlers use it to keep users out of each other's carts and payments.
func callerIs(r *http.Request, email string) bool {
	caller, ok := identityFrom(r.Context())
	return ok && strings.EqualFold(caller, strings.TrimSpace(email))
}

// AccessLog logs one line per request with method, path, status and duration.
func AccessLog(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", chimiddleware.GetReqID(r.Context())),
			)
		})
	}
}

// CORS applies a permissive cross-origin policy.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
