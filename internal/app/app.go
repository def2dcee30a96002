package app

import (
	"context"
	"fmt"
	"time"

	"blogcms/internal/config"
	"blogcms/internal/content"
	"blogcms/internal/db"
	"blogcms/internal/handlers"
	"blogcms/internal/llm"
	"blogcms/internal/logger"
	"blogcms/internal/repository"
	"blogcms/internal/routes"
	"blogcms/internal/scraper"
	"blogcms/internal/services"
	"blogcms/internal/storage"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// InitApp connects to the database, applies the schema and wires every
// collaborator. The returned func releases the pool.
func InitApp(ctx context.Context, cfg *config.Config) (*mux.Router, func(), error) {
	conn, err := db.NewPostgresConnection(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(ctx, conn); err != nil {
		conn.Close()
		return nil, nil, err
	}

	tokenTTL, err := time.ParseDuration(cfg.AccessTokenTTL)
	if err != nil {
		logger.Log.Warn("invalid ACCESS_TOKEN_EXPIRY, using 24h", zap.String("value", cfg.AccessTokenTTL))
		tokenTTL = 24 * time.Hour
	}

	store, err := storage.New(cfg)
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("init storage: %w", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(conn)
	postRepo := repository.NewPostRepo(conn)

	// External clients
	pages := scraper.NewScraper(cfg)
	firecrawl := scraper.NewFirecrawlClient(cfg)
	generator := llm.NewClient(cfg)

	// Services
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, tokenTTL)
	postService := services.NewPostService(postRepo)
	ingestService := services.NewIngestService(pages, firecrawl, generator, cfg.Ingest)
	uploadService := services.NewUploadService(store, cfg.TmpDir, cfg.Upload.MaxBytes, cfg.Upload.AllowedTypes)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, cfg.CookieSecure)
	postHandler := handlers.NewPostHandler(postService)
	renderHandler := handlers.NewRenderHandler(postService, content.NewRenderer())
	dashboardHandler := handlers.NewDashboardHandler(postService)
	ingestHandler := handlers.NewIngestHandler(ingestService)
	uploadHandler := handlers.NewUploadHandler(uploadService)
	logsHandler := handlers.NewAdminLogsHandler(cfg.LogDir)

	router := mux.NewRouter()
	routes.InitRoutes(router, cfg.JWTSecret,
		authHandler, postHandler, renderHandler, dashboardHandler, ingestHandler, uploadHandler, logsHandler)

	if local, ok := store.(*storage.LocalStore); ok {
		routes.ServeUploads(router, cfg.UploadURLBase, local.Dir())
		logger.Log.Info("serving uploads from local directory",
			zap.String("dir", local.Dir()), zap.String("prefix", cfg.UploadURLBase))
	}

	return router, conn.Close, nil
}
