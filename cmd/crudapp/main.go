package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/vbonduro/crudapp/internal/config"
	"github.com/vbonduro/crudapp/internal/db"
	"github.com/vbonduro/crudapp/internal/logging"
	"github.com/vbonduro/crudapp/internal/service"
	"github.com/vbonduro/crudapp/internal/store"
	"github.com/vbonduro/crudapp/internal/web"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	dsn, err := db.DSN(cfg)
	if err != nil {
		logger.Error("invalid database configuration", "error", err)
		return
	}
	database, err := db.Open(cfg.DBDriver, dsn)
	if err != nil {
		logger.Error("failed to open database", "driver", cfg.DBDriver, "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()
	logger.Info("connected to database", "driver", cfg.DBDriver)

	itemService := service.NewItemService(store.NewItemStore(database), logger)
	authService := service.NewAuthService(store.NewUserStore(database))

	server := web.NewServer(itemService, authService, database, web.Options{
		AllowedOrigins:  cfg.CORSAllowedOrigins,
		MaxBodyBytes:    cfg.MaxBodyBytes,
		StaticDir:       cfg.StaticDir,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx, cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}
