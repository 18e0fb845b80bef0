package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	financeapp "github.com/erp/finance-engine/internal/application/finance"
	reportapp "github.com/erp/finance-engine/internal/application/report"
	"github.com/erp/finance-engine/internal/domain/finance"
	"github.com/erp/finance-engine/internal/infrastructure/config"
	"github.com/erp/finance-engine/internal/infrastructure/logger"
	"github.com/erp/finance-engine/internal/infrastructure/persistence"
	"github.com/erp/finance-engine/internal/interfaces/http/handler"
	"github.com/erp/finance-engine/internal/interfaces/http/middleware"
	"github.com/erp/finance-engine/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting finance engine",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// One repository serves every read source the engine consumes
	sources := persistence.NewGormFinanceSources(db.DB)

	// Application services, configured from the engine policy overrides
	taxCalculator := finance.NewTaxCalculator(cfg.Engine.TaxPolicy())
	receivablesService := financeapp.NewReceivablesService(sources, sources, log,
		financeapp.WithCollectionPolicy(cfg.Engine.CollectionPolicy()))
	creditService := financeapp.NewCreditService(sources, sources, log,
		financeapp.WithCreditPolicy(cfg.Engine.CreditPolicy()))
	varianceService := financeapp.NewVarianceService(sources, cfg.Engine.CostingPolicy(), log)
	reconciliationService := financeapp.NewBankReconciliationService(sources, cfg.Engine.ReconcilePolicy(), log)

	profitLossService := reportapp.NewProfitLossService(sources, sources, sources,
		finance.DefaultOperatingExpensePolicy(), log)
	cashFlowService := reportapp.NewCashFlowService(sources, sources, sources,
		cfg.Engine.ForecastPolicy(), log)
	dashboardService := reportapp.NewDashboardService(profitLossService, sources, sources, log)

	// HTTP engine and middleware
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORSWithConfig(middleware.DefaultCORSConfig()),
	)

	// Routes
	financeHandler := handler.NewFinanceHandler(
		taxCalculator,
		receivablesService,
		creditService,
		varianceService,
		reconciliationService,
	)
	reportHandler := handler.NewReportHandler(profitLossService, cashFlowService, dashboardService)

	router.NewRouter(engine).
		Register(financeHandler).
		Register(reportHandler).
		Setup()

	handler.NewHealthHandler(db).RegisterRoutes(engine)

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
