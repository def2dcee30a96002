// Command seeduser creates the admin account, or resets its password if the
// email already exists.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"blogcms/internal/config"
	"blogcms/internal/db"
	"blogcms/internal/logger"
	"blogcms/internal/repository"
	"blogcms/internal/services"

	"go.uber.org/zap"
)

func main() {
	email := flag.String("email", os.Getenv("ADMIN_EMAIL"), "admin email")
	name := flag.String("name", "Admin", "display name")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "admin password")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		// the logger is configured from cfg, so it is not available yet
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := db.NewPostgresConnection(ctx, cfg)
	if err != nil {
		logger.Log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer conn.Close()

	if err := db.Migrate(ctx, conn); err != nil {
		logger.Log.Fatal("failed to apply schema", zap.Error(err))
	}

	auth := services.NewAuthService(repository.NewUserRepository(conn), cfg.JWTSecret, 0)
	user, err := auth.EnsureAdmin(ctx, *email, *name, *password)
	if err != nil {
		logger.Log.Fatal("failed to seed admin user", zap.Error(err))
	}

	logger.Log.Info("admin user ready", zap.String("id", user.ID), zap.String("email", user.Email))
}
