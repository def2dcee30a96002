package middleware

import (
	"net/http"
	"net/url"

	"blogcms/internal/logger"
	"blogcms/internal/models"
	"blogcms/internal/reqctx"
	"blogcms/internal/utils"

	"go.uber.org/zap"
)

// DashboardSession guards browser pages: anything short of a valid admin
// session cookie is redirected to the login page with the original path in next.
func DashboardSession(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(SessionCookie)
			if err != nil || c.Value == "" {
				redirectToLogin(w, r)
				return
			}
			claims, err := utils.ParseToken(secret, c.Value)
			if err != nil {
				logger.WithCtx(r.Context()).Info("dashboard: invalid session", zap.Error(err))
				redirectToLogin(w, r)
				return
			}
			if claims.Role != models.RoleAdmin {
				logger.WithCtx(r.Context()).Warn("dashboard: non-admin session", zap.String("role", claims.Role))
				redirectToLogin(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(reqctx.WithUser(r.Context(), claims.UserID, claims.Role)))
		})
	}
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
}
