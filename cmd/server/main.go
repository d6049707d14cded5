package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"lectern/internal/auth"
	"lectern/internal/blobstore"
	"lectern/internal/config"
	"lectern/internal/handler"
	"lectern/internal/middleware"
	"lectern/internal/repository/postgres"
	"lectern/internal/service"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logWriter := os.Stdout
	if dir := os.Getenv("LOG_DIR"); dir != "" {
		f, err := config.SetupLogFile(dir, 10)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer f.Close()
		logWriter = f
	}

	logger := slog.New(slog.NewJSONHandler(logWriter, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// Token verifier against the platform auth service
	verifier, err := auth.NewJWKSVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create token verifier: %v", err)
	}
	defer verifier.Close()

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: postgres.NewTableNames(cfg.TablePrefix),
		Logger: logger,
	}
	folderRepo := postgres.NewFolderRepository(repoConfig)
	fileRepo := postgres.NewFileRepository(repoConfig)
	enrollmentRepo := postgres.NewEnrollmentRepository(repoConfig)
	profileRepo := postgres.NewProfileRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Blob store
	blobs, err := blobstore.NewS3Store(ctx, blobstore.S3Config{
		Bucket:   cfg.S3Bucket,
		Region:   cfg.S3Region,
		Endpoint: cfg.S3Endpoint,
		BasePath: cfg.S3BasePath,
	})
	if err != nil {
		log.Fatalf("Failed to create blob store: %v", err)
	}

	// Upload policy
	policy, err := config.LoadUploadPolicy()
	if err != nil {
		log.Fatalf("Failed to load upload policy: %v", err)
	}

	// Services
	scopeResolver := service.NewScopeResolver(profileRepo, enrollmentRepo, logger)
	folderService := service.NewFolderService(folderRepo, fileRepo, blobs, txManager, logger)
	fileService := service.NewFileService(fileRepo, folderRepo, blobs, policy, cfg.UploadURLTTL, cfg.DownloadURLTTL, logger)
	docService := service.NewDocumentService(scopeResolver, folderService, fileService, enrollmentRepo, logger)

	// Handlers
	docHandler := handler.NewDocumentHandler(docService, logger)
	folderHandler := handler.NewFolderHandler(docService, logger)
	fileHandler := handler.NewFileHandler(docService, logger)

	logger.Info("services initialized")

	// HTTP router (Go 1.22+ method patterns)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", docHandler.HealthCheck)

	mux.HandleFunc("GET /api/documents/teachers", docHandler.AccessibleTeachers)
	mux.HandleFunc("GET /api/documents/contents", folderHandler.Contents)

	mux.HandleFunc("POST /api/documents/folders", folderHandler.Create)
	mux.HandleFunc("PUT /api/documents/folders/{id}", folderHandler.Rename)
	mux.HandleFunc("DELETE /api/documents/folders/{id}", folderHandler.Delete)

	mux.HandleFunc("POST /api/documents/files/upload-url", fileHandler.RequestUploadURL)
	mux.HandleFunc("POST /api/documents/files", fileHandler.Save)
	mux.HandleFunc("GET /api/documents/files/{id}/download", fileHandler.Download)
	mux.HandleFunc("PUT /api/documents/files/{id}", fileHandler.Rename)
	mux.HandleFunc("DELETE /api/documents/files/{id}", fileHandler.Delete)

	// Middleware chain: CORS → Recovery → Auth → routes
	var root http.Handler = mux
	root = middleware.Auth(verifier, logger)(root)
	root = middleware.Recovery(logger)(root)

	// CORS must be outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Serve until interrupted, then drain in-flight requests.
	shutdownCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-shutdownCtx.Done()
	logger.Info("shutting down")

	drainCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(drainCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
