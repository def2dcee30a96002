package routes

import (
	"net/http"

	"blogcms/internal/handlers"
	"blogcms/internal/middleware"
	"blogcms/internal/utils/helpers"

	"github.com/gorilla/mux"
)

func InitRoutes(
	router *mux.Router,
	jwtSecret string,
	authH *handlers.AuthHandler,
	postH *handlers.PostHandler,
	renderH *handlers.RenderHandler,
	dashboardH *handlers.DashboardHandler,
	ingestH *handlers.IngestHandler,
	uploadH *handlers.UploadHandler,
	logsH *handlers.AdminLogsHandler,
) {
	router.Use(middleware.RequestID, middleware.Logging, middleware.Recoverer)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		helpers.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// --- HTML pages ---
	router.HandleFunc("/login", authH.LoginPage).Methods(http.MethodGet)
	router.HandleFunc("/blog/{slug}", renderH.Page).Methods(http.MethodGet)

	dashboard := router.PathPrefix("/dashboard").Subrouter()
	dashboard.Use(middleware.DashboardSession(jwtSecret))
	dashboard.HandleFunc("", dashboardH.Page).Methods(http.MethodGet)
	dashboard.HandleFunc("/posts", dashboardH.Posts).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	// --- Public ---
	api.HandleFunc("/register", authH.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", authH.Login).Methods(http.MethodPost)
	api.HandleFunc("/logout", authH.Logout).Methods(http.MethodPost)

	api.HandleFunc("/posts", postH.List).Methods(http.MethodGet)
	api.HandleFunc("/posts/slug/{slug}", postH.GetBySlug).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id}", postH.Get).Methods(http.MethodGet)

	// --- Admin (JWT + role) ---
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.JWTAuth(jwtSecret), middleware.OnlyRole("admin"))

	admin.HandleFunc("/posts", postH.AdminList).Methods(http.MethodGet)
	admin.HandleFunc("/posts", postH.Create).Methods(http.MethodPost)
	admin.HandleFunc("/posts/{id}", postH.AdminGet).Methods(http.MethodGet)
	admin.HandleFunc("/posts/{id}", postH.Update).Methods(http.MethodPut)
	admin.HandleFunc("/posts/{id}", postH.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/posts/{id}/publish", postH.SetPublish).Methods(http.MethodPatch)
	admin.HandleFunc("/posts/{id}/render", renderH.Render).Methods(http.MethodGet)
	admin.HandleFunc("/detect", renderH.Detect).Methods(http.MethodPost)
	admin.HandleFunc("/stats", dashboardH.Stats).Methods(http.MethodGet)

	admin.HandleFunc("/scrape", ingestH.Scrape).Methods(http.MethodPost)
	admin.HandleFunc("/generate", ingestH.Generate).Methods(http.MethodPost)
	admin.HandleFunc("/import", ingestH.ImportURL).Methods(http.MethodPost)
	admin.HandleFunc("/translate", ingestH.Translate).Methods(http.MethodPost)
	admin.HandleFunc("/upload", uploadH.Upload).Methods(http.MethodPost)

	admin.HandleFunc("/logs/days", logsH.ListDays).Methods(http.MethodGet)
	admin.HandleFunc("/logs", logsH.GetLogs).Methods(http.MethodGet)
}

// ServeUploads exposes locally stored uploads under prefix.
func ServeUploads(router *mux.Router, prefix, dir string) {
	router.PathPrefix(prefix + "/").Handler(
		http.StripPrefix(prefix+"/", http.FileServer(http.Dir(dir))),
	).Methods(http.MethodGet)
}
