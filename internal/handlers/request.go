package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"blogcms/internal/errs"
	"blogcms/internal/models"
)

const maxJSONBody = 4 << 20

// decodeJSON reads a JSON body into dst; malformed input is a validation error.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errs.Validationf("invalid JSON body").WithDetails(err.Error())
	}
	return nil
}

func parseBoolParam(r *http.Request, name string) (*bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, errs.Validationf("%s must be true or false", name).WithDetails(map[string]string{name: raw})
	}
	return &b, nil
}

func parseIntParam(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errs.Validationf("%s must be a non-negative integer", name).WithDetails(map[string]string{name: raw})
	}
	return n, nil
}

// parsePostFilter reads published, featured, category, q, limit and offset.
func parsePostFilter(r *http.Request) (models.PostFilter, error) {
	var f models.PostFilter
	var err error
	if f.Published, err = parseBoolParam(r, "published"); err != nil {
		return f, err
	}
	if f.Featured, err = parseBoolParam(r, "featured"); err != nil {
		return f, err
	}
	if f.Limit, err = parseIntParam(r, "limit"); err != nil {
		return f, err
	}
	if f.Offset, err = parseIntParam(r, "offset"); err != nil {
		return f, err
	}
	f.Category = r.URL.Query().Get("category")
	f.Query = r.URL.Query().Get("q")
	return f, nil
}
