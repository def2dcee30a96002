package middleware

import (
	"net/http"
	"strings"

	"blogcms/internal/logger"
	"blogcms/internal/reqctx"
	"blogcms/internal/utils"
	"blogcms/internal/utils/helpers"

	"go.uber.org/zap"
)

// SessionCookie carries the same access token as the Authorization header for
// browser clients.
const SessionCookie = "session"

// tokenFromRequest prefers the Bearer header and falls back to the session cookie.
func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

func JWTAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			tokenString := tokenFromRequest(r)
			if tokenString == "" {
				logger.WithCtx(r.Context()).Warn("JWTAuth: missing access token")
				helpers.Error(w, http.StatusUnauthorized, "missing access token")
				return
			}

			claims, err := utils.ParseToken(secret, tokenString)
			if err != nil {
				logger.WithCtx(r.Context()).Warn("JWTAuth: invalid or expired token", zap.Error(err))
				helpers.Error(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := reqctx.WithUser(r.Context(), claims.UserID, claims.Role)
			logger.WithCtx(ctx).Debug("JWTAuth: token valid", zap.String("role", claims.Role))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
