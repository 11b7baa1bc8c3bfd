package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mockmate/interview/internal/config"
	"mockmate/interview/internal/corpus"
	"mockmate/interview/internal/engine"
	"mockmate/interview/internal/gateway"
	"mockmate/interview/internal/handlers"
	"mockmate/interview/internal/intent"
	"mockmate/interview/internal/jobs"
	"mockmate/interview/internal/llm"
	_ "mockmate/interview/internal/llm/gemini"
	"mockmate/interview/internal/prompts"
	"mockmate/interview/internal/routers"
	"mockmate/interview/internal/scoring"
	"mockmate/interview/internal/storage"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func registerRoutes(router *chi.Mux, sessionHandler *handlers.SessionHandler, statusHandler *handlers.StatusHandler, healthHandler *handlers.HealthHandler) {
	routers.HealthRoutes(router, healthHandler)
	routers.InterviewRoutes(router, sessionHandler, statusHandler)
}

// Helper function for environment variables
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// initDatabase initializes the PostgreSQL database connection
func initDatabase() (*gorm.DB, error) {
	host := getEnv("POSTGRES_HOST", "localhost")
	user := getEnv("POSTGRES_USER", "postgres")
	password := getEnv("POSTGRES_PASSWORD", "postgres")
	dbname := getEnv("POSTGRES_DB", "postgres")
	port := getEnv("POSTGRES_PORT", "5432")
	sslmode := getEnv("POSTGRES_SSLMODE", "disable")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, password, dbname, port, sslmode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	logger.Info("Configuration loaded",
		zap.String("provider", cfg.Provider),
		zap.String("questions_dir", cfg.QuestionsDir),
		zap.String("behavioral_policy", cfg.BehavioralPolicy))

	// prompt manager
	promptManager, err := prompts.NewManager()
	if err != nil {
		logger.Fatal("Failed to initialize prompt manager", zap.Error(err))
	}

	// question corpus
	loader := corpus.NewLoader(cfg.QuestionsDir, logger)
	questions, err := loader.Load()
	if err != nil {
		logger.Fatal("Failed to load question corpus", zap.Error(err))
	}
	index := corpus.NewIndex(questions)

	// AI provider; a misconfigured provider degrades to fallback mode
	// instead of blocking startup
	var provider llm.Provider
	configured := true
	provider, err = llm.NewProvider(cfg.Provider)
	if err != nil {
		logger.Warn("AI provider unavailable, running in fallback mode", zap.Error(err))
		provider = nil
		configured = false
	}

	health := gateway.NewHealth(configured)
	gw := gateway.New(provider, health, logger,
		gateway.WithTimeout(cfg.LLMTimeout),
		gateway.WithRetries(cfg.LLMRetries))

	// persistence
	db, err := initDatabase()
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	store, err := storage.NewGormStore(db)
	if err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	classifier := intent.NewTieredClassifier(
		intent.NewHeuristicClassifier(),
		intent.NewLLMClassifier(gw, promptManager, logger),
		logger,
	)
	scorer := scoring.New(store, index, gw, promptManager, logger)
	eng := engine.New(store, index, gw, classifier, promptManager, scorer,
		engine.BehavioralPolicy(cfg.BehavioralPolicy), logger)

	sessionHandler := handlers.NewSessionHandler(eng, logger)
	statusHandler := handlers.NewStatusHandler(health)
	healthHandler := handlers.NewHealthHandler(index, promptManager, cfg)

	// evaluation export job
	exporterConfig := &jobs.ExporterConfig{
		Schedule:      getEnv("EVAL_EXPORT_SCHEDULE", "0 2 * * *"),
		ExportDir:     getEnv("EVAL_EXPORT_DIR", "./exports"),
		ExportEnabled: getEnv("EVAL_EXPORT_ENABLED", "false") == "true",
	}
	exporterJob := jobs.NewEvaluationExporterJob(store, exporterConfig, logger)
	if err := exporterJob.Start(); err != nil {
		logger.Error("Failed to start evaluation exporter job", zap.Error(err))
	}

	router := chi.NewRouter()

	// cors middleware
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{getEnv("CORS_ORIGIN", "http://localhost:5173")},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.Use(chimiddleware.RequestID, chimiddleware.RealIP, chimiddleware.Logger, chimiddleware.Recoverer, chimiddleware.Timeout(60*time.Second))

	registerRoutes(router, sessionHandler, statusHandler, healthHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	serverAddr := ":" + port

	// http server with timeouts
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// starting server in a goroutine
	go func() {
		logger.Info("Interview service starting", zap.String("addr", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shutdown the server
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("Interview service shutting down...")

	exporterJob.Stop()

	// graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("Interview service exited")
}
