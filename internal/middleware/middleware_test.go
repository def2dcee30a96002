package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"blogcms/internal/reqctx"
	"blogcms/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func okHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := reqctx.GetUserID(r.Context())
		w.Header().Set("X-User", id)
		w.WriteHeader(http.StatusOK)
	})
}

func token(t *testing.T, role string, ttl time.Duration) string {
	t.Helper()
	tok, err := utils.GenerateToken(testSecret, "user-1", role, ttl)
	require.NoError(t, err)
	return tok
}

func TestJWTAuth(t *testing.T) {
	h := JWTAuth(testSecret)(okHandler(t))

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		status int
	}{
		{"no token", func(r *http.Request) {}, http.StatusUnauthorized},
		{"garbage", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized},
		{"expired", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token(t, "admin", -time.Minute))
		}, http.StatusUnauthorized},
		{"wrong secret", func(r *http.Request) {
			tok, _ := utils.GenerateToken("other", "user-1", "admin", time.Hour)
			r.Header.Set("Authorization", "Bearer "+tok)
		}, http.StatusUnauthorized},
		{"bearer", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token(t, "admin", time.Hour))
		}, http.StatusOK},
		{"cookie", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: SessionCookie, Value: token(t, "user", time.Hour)})
		}, http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/posts", nil)
			tc.setup(req)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, tc.status, rr.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, "user-1", rr.Header().Get("X-User"))
			} else {
				assert.Contains(t, rr.Body.String(), `"message"`)
			}
		})
	}
}

func TestOnlyRole(t *testing.T) {
	h := JWTAuth(testSecret)(OnlyRole("admin")(okHandler(t)))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "user", time.Hour))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "admin", time.Hour))
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestOnlyRole_NoPrincipal(t *testing.T) {
	rr := httptest.NewRecorder()
	OnlyRole("admin")(okHandler(t)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestDashboardSession(t *testing.T) {
	h := DashboardSession(testSecret)(okHandler(t))

	cases := []struct {
		name     string
		cookie   string
		status   int
		location string
	}{
		{"no cookie", "", http.StatusFound, "/login?next=%2Fdashboard%2Fposts%3Fpage%3D2"},
		{"invalid", "broken", http.StatusFound, "/login?next=%2Fdashboard%2Fposts%3Fpage%3D2"},
		{"non-admin", token(t, "user", time.Hour), http.StatusFound, "/login?next=%2Fdashboard%2Fposts%3Fpage%3D2"},
		{"admin", token(t, "admin", time.Hour), http.StatusOK, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/dashboard/posts?page=2", nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tc.cookie})
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, tc.status, rr.Code)
			assert.Equal(t, tc.location, rr.Header().Get("Location"))
		})
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = reqctx.GetRequestID(r.Context())
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rr.Header().Get(HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, "abc-123", seen)
}

func TestRecoverer(t *testing.T) {
	h := Recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"message":"internal server error"}`, rr.Body.String())
}
