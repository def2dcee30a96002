package handlers

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"blogcms/internal/logger"
	"blogcms/internal/utils/helpers"
)

const logRetentionDays = 14

// AdminLogsHandler reads the JSON log files written by the logger: the current
// app.log (today only) and lumberjack backups named app-<timestamp>.log[.gz].
type AdminLogsHandler struct {
	LogDir    string
	Retention int
	now       func() time.Time
}

func NewAdminLogsHandler(logDir string) *AdminLogsHandler {
	return &AdminLogsHandler{LogDir: logDir, Retention: logRetentionDays, now: time.Now}
}

type logsResponse struct {
	Day        string            `json:"day"`
	Items      []json.RawMessage `json:"items"`
	NextCursor int               `json:"next_cursor"`
}

// ListDays
// @Summary      Days with logs
// @Description  Dates (YYYY-MM-DD) within the retention window that have log files.
// @Tags         admin-logs
// @Security     ApiKeyAuth
// @Produce      json
// @Success      200 {object} map[string][]string "days"
// @Router       /api/admin/logs/days [get]
func (h *AdminLogsHandler) ListDays(w http.ResponseWriter, r *http.Request) {
	today := h.now().Local()
	days := []string{}
	for i := 0; i < h.Retention; i++ {
		d := today.AddDate(0, 0, -i).Format(time.DateOnly)
		if files, err := h.listFilesForDay(d); err == nil && len(files) > 0 {
			days = append(days, d)
		}
	}
	sort.Strings(days)
	helpers.JSON(w, http.StatusOK, map[string]any{"days": days})
}

// GetLogs
// @Summary      Log lines for a day
// @Description  JSON log lines for the day, filtered by level and substring, paged by line cursor.
// @Tags         admin-logs
// @Security     ApiKeyAuth
// @Produce      json
// @Param        day     query  string true  "Date (YYYY-MM-DD)"
// @Param        level   query  string false "CSV of levels: debug,info,warn,error"
// @Param        q       query  string false "Case-insensitive substring"
// @Param        limit   query  int    false "Limit (default 200, max 1000)"
// @Param        cursor  query  int    false "Line cursor (default 0)"
// @Success      200 {object} logsResponse
// @Failure      400 {object} helpers.ErrorResponse "bad day"
// @Failure      404 {object} helpers.ErrorResponse "day not found"
// @Router       /api/admin/logs [get]
func (h *AdminLogsHandler) GetLogs(w http.ResponseWriter, r *http.Request) {
	day := r.URL.Query().Get("day")
	if !reDay.MatchString(day) {
		helpers.Error(w, http.StatusBadRequest, "bad day")
		return
	}

	levelSet := toUpperSet(r.URL.Query().Get("level"))

	var qre *regexp.Regexp
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		qre = regexp.MustCompile("(?i)" + regexp.QuoteMeta(q))
	}

	limit := clampAtoi(r.URL.Query().Get("limit"), 200, 1, 1000)
	cursor := clampAtoi(r.URL.Query().Get("cursor"), 0, 0, 10_000_000)

	lineNo := 0
	items := make([]json.RawMessage, 0)

	err := h.forEachDayLine(day, func(raw []byte) bool {
		lineNo++
		if lineNo <= cursor {
			return true
		}
		if qre != nil && !qre.Match(raw) {
			return true
		}
		var obj map[string]any
		if err := json.Unmarshal(raw, &obj); err != nil {
			// console-format lines are skipped
			return true
		}
		if len(levelSet) > 0 && !levelSet[strings.ToUpper(getString(obj, "level"))] {
			return true
		}
		items = append(items, append([]byte{}, raw...))
		return len(items) < limit
	})
	if err != nil {
		helpers.Error(w, http.StatusNotFound, "day not found")
		return
	}

	helpers.JSON(w, http.StatusOK, logsResponse{Day: day, Items: items, NextCursor: lineNo})
}

var reDay = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func (h *AdminLogsHandler) listFilesForDay(day string) ([]string, error) {
	entries, err := os.ReadDir(h.LogDir)
	if err != nil {
		return nil, err
	}
	today := h.now().Local().Format(time.DateOnly)
	current := filepath.Base(logger.LogFile)
	prefix := strings.TrimSuffix(current, filepath.Ext(current)) + "-"

	var backups []string
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if name == current && day == today {
			files = append(files, filepath.Join(h.LogDir, name))
			continue
		}
		if strings.HasPrefix(name, prefix) && strings.Contains(name, day) &&
			(strings.HasSuffix(name, ".log") || strings.HasSuffix(name, ".gz")) {
			backups = append(backups, filepath.Join(h.LogDir, name))
		}
	}

	// backups are older than the current file
	sort.Strings(backups)
	return append(backups, files...), nil
}

func (h *AdminLogsHandler) forEachDayLine(day string, handle func([]byte) bool) error {
	files, err := h.listFilesForDay(day)
	if err != nil || len(files) == 0 {
		return os.ErrNotExist
	}

	for _, path := range files {
		if keep := scanFile(path, handle); !keep {
			break
		}
	}
	return nil
}

func scanFile(path string, handle func([]byte) bool) bool {
	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(f)
		if err != nil {
			return true
		}
		defer gr.Close()
		reader = gr
	}

	sc := bufio.NewScanner(reader)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if !handle(sc.Bytes()) {
			return false
		}
	}
	return true
}

func toUpperSet(csv string) map[string]bool {
	m := map[string]bool{}
	for _, p := range strings.Split(csv, ",") {
		if p = strings.TrimSpace(p); p != "" {
			m[strings.ToUpper(p)] = true
		}
	}
	return m
}

func getString(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

func clampAtoi(s string, def, min, max int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}
