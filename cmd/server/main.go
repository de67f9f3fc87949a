package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Skotchmaster/bargain_shop/internal/httpserver"
	"github.com/Skotchmaster/bargain_shop/internal/models"
	"github.com/Skotchmaster/bargain_shop/internal/repo"
	"github.com/Skotchmaster/bargain_shop/internal/search"
	"github.com/Skotchmaster/bargain_shop/internal/service"
	"github.com/Skotchmaster/bargain_shop/internal/storage"
	"github.com/Skotchmaster/bargain_shop/pkg/config"
	pkgdb "github.com/Skotchmaster/bargain_shop/pkg/db"
	"github.com/Skotchmaster/bargain_shop/pkg/events"
	"github.com/Skotchmaster/bargain_shop/pkg/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.MustLoad()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	publisher := events.New(cfg.KafkaBrokers)

	index, err := search.New(search.Config{
		URL:      cfg.ESURL,
		User:     cfg.ESUser,
		Password: cfg.ESPassword,
		Index:    cfg.ESIndex,
	})
	if err != nil {
		logger.Warn("search_unavailable", "error", err)
		index = search.Disabled{}
	}

	var (
		images    storage.ImageStore
		uploadDir string
		closeGCS  func() error
	)
	switch cfg.UploadBackend {
	case "gcs":
		gcs, err := storage.NewGCSStore(context.Background(), cfg.GCSBucket, cfg.GCSCredentialsFile)
		if err != nil {
			log.Fatalf("gcs: %v", err)
		}
		images, closeGCS = gcs, gcs.Close
	default:
		disk, err := storage.NewDiskStore(cfg.UploadDir, cfg.UploadURLPrefix)
		if err != nil {
			log.Fatalf("uploads: %v", err)
		}
		images, uploadDir = disk, cfg.UploadDir
	}

	r := &repo.GormRepo{DB: db}
	authSvc := &service.AuthService{Repo: r, Events: publisher, JWTSecret: []byte(cfg.JWTSecret), TokenTTL: cfg.TokenTTL}
	orderSvc := &service.OrderService{Repo: r, Events: publisher}

	e := httpserver.NewEcho(logger, cfg.CORSOrigins)
	httpserver.Register(e, &httpserver.Deps{
		DB:              db,
		Authn:           authSvc,
		AuthHandler:     &httpserver.AuthHTTP{Svc: authSvc},
		CatalogHandler:  &httpserver.CatalogHTTP{Svc: &service.CatalogService{Repo: r, Events: publisher, Images: images, Search: index}},
		BargainHandler:  &httpserver.BargainHTTP{Svc: &service.BargainService{Repo: r, Events: publisher}},
		CartHandler:     &httpserver.CartHTTP{Svc: &service.CartService{Repo: r, Events: publisher}, Orders: orderSvc},
		OrderHandler:    &httpserver.OrderHTTP{Svc: orderSvc},
		UploadDir:       uploadDir,
		UploadURLPrefix: cfg.UploadURLPrefix,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr, "db", cfg.DBDriver, "uploads", cfg.UploadBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_error", "error", err)
	}
	if err := publisher.Close(); err != nil {
		logger.Error("kafka_close_error", "error", err)
	}
	if closeGCS != nil {
		if err := closeGCS(); err != nil {
			logger.Error("gcs_close_error", "error", err)
		}
	}
	if err := pkgdb.Close(db); err != nil {
		logger.Error("db_close_error", "error", err)
	}

	logger.Info("stopped")
}
