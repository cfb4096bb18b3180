package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"financetracker/config"
	"financetracker/db"
	"financetracker/db/memory"
	"financetracker/db/repository"
	_ "financetracker/docs"
	"financetracker/ledger"
	"financetracker/logger"
	"financetracker/summary"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Finance Tracker API
// @version 1.0
// @description Accounts, categories and transactions with period summaries. Amounts are in milliunits.
// @host localhost:8080
// @BasePath /

// ledgerStore is a backend serving both the CRUD routes and the summary.
type ledgerStore interface {
	ledger.Querier
	summary.LedgerStore
}

var (
	queries      ledger.Querier
	aggregator   *summary.Aggregator
	queryTimeout = 10 * time.Second
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open store")
	}
	defer closeStore()

	queries = store
	queryTimeout = cfg.QueryTimeout
	aggregator = summary.NewAggregator(store, summary.Config{
		DefaultWindow: summary.WindowPolicy(cfg.SummaryDefaultWindow),
		TrailingDays:  cfg.SummaryTrailingDays,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           setupRouter(cfg, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.DataBackend).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

// openStore connects the configured backend. For Postgres it retries the
// connection, then brings the schema up to date.
func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ledgerStore, func(), error) {
	if cfg.DataBackend == "memory" {
		log.Warn().Msg("Using in-memory backend, data is lost on restart")
		return memory.New(), func() {}, nil
	}

	pool, err := connectWithRetry(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	log.Info().Msg("Running database migrations...")
	if err := db.RunMigrations(cfg.DatabaseURL()); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	if version, dirty, err := db.MigrationVersion(cfg.DatabaseURL()); err == nil {
		if dirty {
			log.Warn().Uint("version", version).Msg("Current migration version is DIRTY - migration failed")
		} else {
			log.Info().Uint("version", version).Msg("Database migrations completed successfully")
		}
	}

	return repository.NewStore(pool), pool.Close, nil
}

// connectWithRetry waits for Postgres to accept connections.
func connectWithRetry(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*pgxpool.Pool, error) {
	var lastErr error
	for attempt := 1; attempt <= cfg.DBConnectRetries; attempt++ {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL())
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				log.Info().Msg("Successfully connected to database")
				return pool, nil
			}
			pool.Close()
		}
		lastErr = err
		log.Warn().Err(err).Int("attempt", attempt).Msg("Error connecting to database")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.DBRetryInterval):
		}
	}
	return nil, fmt.Errorf("connect after %d attempts: %w", cfg.DBConnectRetries, lastErr)
}

func setupRouter(cfg *config.Config, log zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(logger.Middleware(log), logger.Recovery())

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization", userIDHeader, orgIDHeader, logger.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", logger.RequestIDHeader},
		AllowCredentials: true,
	}))

	r.GET("/healthz", healthz)
	r.GET("/readyz", readyz)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	registerRoutes(r.Group("/api", requireScope()))
	return r
}

func registerRoutes(api *gin.RouterGroup) {
	api.GET("/summary", getSummary)

	api.GET("/accounts", getAccounts)
	api.POST("/accounts", createAccount)
	api.POST("/accounts/bulk-delete", bulkDeleteAccounts)
	api.GET("/accounts/:id", getAccount)
	api.PATCH("/accounts/:id", updateAccount)
	api.DELETE("/accounts/:id", deleteAccount)

	api.GET("/categories", getCategories)
	api.POST("/categories", createCategory)
	api.POST("/categories/bulk-delete", bulkDeleteCategories)
	api.GET("/categories/:id", getCategory)
	api.PATCH("/categories/:id", updateCategory)
	api.DELETE("/categories/:id", deleteCategory)

	api.GET("/transactions", getTransactions)
	api.POST("/transactions", createTransaction)
	api.POST("/transactions/bulk-create", bulkCreateTransactions)
	api.POST("/transactions/bulk-delete", bulkDeleteTransactions)
	api.POST("/transactions/upload-csv", uploadCSV)
	api.GET("/transactions/:id", getTransaction)
	api.PATCH("/transactions/:id", updateTransaction)
	api.DELETE("/transactions/:id", deleteTransaction)
}

// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{} "status: ok"
// @Router /healthz [get]
func healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary Readiness probe
// @Description Reports whether the store is reachable
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{} "status: ready"
// @Failure 503 {object} map[string]interface{} "status: unavailable"
// @Router /readyz [get]
func readyz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := queries.Ping(ctx); err != nil {
		log := requestLogger(c)
		log.Warn().Err(err).Msg("Store not ready")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
