package helpers

import (
	"encoding/json"
	"net/http"

	"blogcms/internal/errs"
	"blogcms/internal/logger"

	"go.uber.org/zap"
)

type ErrorResponse struct {
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Log.Warn("failed to encode response", zap.Error(err))
	}
}

func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorResponse{Message: message})
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(err error) int {
	e, ok := errs.As(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case errs.Validation:
		return http.StatusBadRequest
	case errs.NotFound:
		return http.StatusNotFound
	case errs.Conflict:
		return http.StatusConflict
	case errs.UpstreamTimeout:
		return http.StatusGatewayTimeout
	case errs.Upstream:
		if e.Status >= 400 && e.Status <= 599 {
			return e.Status
		}
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// WriteError is the single request-boundary conversion of service errors.
// Unknown errors never leak their text to the client.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	e, ok := errs.As(err)
	if !ok || e.Kind == errs.Unknown {
		JSON(w, status, ErrorResponse{Message: "internal server error"})
		return
	}
	JSON(w, status, ErrorResponse{Message: e.Message, Details: e.Details})
}
