package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"

	"atlas-cms/internal/config"
	areadomain "atlas-cms/internal/domain/area"
	filedomain "atlas-cms/internal/domain/file"
	languagedomain "atlas-cms/internal/domain/language"
	"atlas-cms/internal/domain/retry"
	"atlas-cms/internal/imaging"
	"atlas-cms/internal/infrastructure/auth"
	"atlas-cms/internal/infrastructure/database"
	"atlas-cms/internal/infrastructure/logger"
	"atlas-cms/internal/infrastructure/observability"
	arearepo "atlas-cms/internal/infrastructure/repository/area"
	filerepo "atlas-cms/internal/infrastructure/repository/file"
	languagerepo "atlas-cms/internal/infrastructure/repository/language"
	"atlas-cms/internal/infrastructure/storage"
	"atlas-cms/internal/interfaces/httpserver"
	"atlas-cms/internal/interfaces/httpserver/handlers"
)

// @title Atlas Content API
// @version 1.0
// @description Multi-tenant content backend: file uploads, areas and languages
// @BasePath /
type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg)
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := database.AutoMigrate(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	storageClient, err := newStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize storage")
	}

	retryPolicy := retry.DefaultPolicy()
	retryPolicy.MaxAttempts = cfg.UploadRetryAttempts
	retryPolicy.InitialDelay = cfg.UploadRetryBaseDelay
	retryingStorage := storage.NewRetryingClient(storageClient, retryPolicy, cfg.UploadAttemptTimeout, log)

	transcoder := imaging.NewTranscoder(imaging.Options{
		MaxDimension:     cfg.ImageMaxDimension,
		Quality:          cfg.ImageQuality,
		ThumbnailWidth:   cfg.ThumbnailWidth,
		ThumbnailQuality: cfg.ThumbnailQuality,
	}, log)

	fileService := filedomain.NewService(cfg, filerepo.NewRepository(db), retryingStorage, transcoder, log)
	areaService := areadomain.NewService(arearepo.NewRepository(db), log)
	languageService := languagedomain.NewService(languagerepo.NewRepository(db))

	authValidator, err := auth.NewValidator(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize auth")
	}

	provider := handlers.NewProvider(cfg, fileService, areaService, languageService, log)
	httpServer := httpserver.New(cfg, log, provider, authValidator, storageClient)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func newStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storage.Client, error) {
	if cfg.IsLocalStorage() {
		return storage.NewLocalStorage(cfg, log)
	}
	return storage.NewS3Storage(ctx, cfg, log)
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
