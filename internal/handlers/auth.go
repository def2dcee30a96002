package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"blogcms/internal/logger"
	"blogcms/internal/middleware"
	"blogcms/internal/models"
	"blogcms/internal/services"
	"blogcms/internal/utils/helpers"

	"go.uber.org/zap"
)

type AuthHandler struct {
	authService  *services.AuthService
	cookieSecure bool
}

func NewAuthHandler(authService *services.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{authService: authService, cookieSecure: cookieSecure}
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresIn   int64        `json:"expires_in"`
	User        *models.User `json:"user"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param input body registerRequest true "Registration data"
// @Success 201 {object} models.User
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 409 {object} helpers.ErrorResponse "Email already registered"
// @Router /api/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		logger.WithCtx(r.Context()).Warn("invalid JSON in Register", zap.Error(err))
		helpers.WriteError(w, err)
		return
	}

	user, err := h.authService.RegisterUser(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		helpers.WriteError(w, err)
		return
	}
	helpers.JSON(w, http.StatusCreated, user)
}

// Login godoc
// @Summary Sign in
// @Description Returns an access token and also sets it as the session cookie for the dashboard.
// @Tags auth
// @Accept json
// @Produce json
// @Param input body loginRequest true "Credentials"
// @Success 200 {object} loginResponse
// @Failure 401 {object} helpers.ErrorResponse "Invalid email or password"
// @Router /api/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		logger.WithCtx(r.Context()).Warn("invalid JSON in Login", zap.Error(err))
		helpers.WriteError(w, err)
		return
	}

	token, user, err := h.authService.LoginUser(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			helpers.Error(w, http.StatusUnauthorized, err.Error())
			return
		}
		helpers.WriteError(w, err)
		return
	}

	ttl := h.authService.TokenTTL()
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	helpers.JSON(w, http.StatusOK, loginResponse{
		AccessToken: token,
		ExpiresIn:   int64(ttl.Seconds()),
		User:        user,
	})
}

// Logout godoc
// @Summary Sign out
// @Description Clears the session cookie. Access tokens stay valid until they expire.
// @Tags auth
// @Success 204
// @Router /api/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// LoginPage serves the dashboard sign-in form.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(helpers.BuildLoginPage(safeNext(r.URL.Query().Get("next")), "")))
}

// safeNext only allows a same-site path, with optional query, as the post-login target.
func safeNext(next string) string {
	const fallback = "/dashboard"
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.ContainsAny(next, "\\<>\"'` \t\r\n") {
		return fallback
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" || u.User != nil || u.Opaque != "" || u.Fragment != "" {
		return fallback
	}
	return next
}
