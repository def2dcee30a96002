package middleware

import (
	"net/http"

	"blogcms/internal/logger"
	"blogcms/internal/reqctx"
	"blogcms/internal/utils/helpers"

	"go.uber.org/zap"
)

// OnlyRole must run after JWTAuth so the role is already in the context.
func OnlyRole(role string) func(http.Handler) http.Handler {
	return AnyRole(role)
}

func AnyRole(allowedRoles ...string) func(http.Handler) http.Handler {
	roleSet := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		roleSet[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userRole, ok := reqctx.GetRole(r.Context())
			if !ok {
				helpers.Error(w, http.StatusForbidden, "could not determine role")
				return
			}
			if _, found := roleSet[userRole]; !found {
				logger.WithCtx(r.Context()).Warn("access denied", zap.String("role", userRole), zap.String("path", r.URL.Path))
				helpers.Error(w, http.StatusForbidden, "access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
