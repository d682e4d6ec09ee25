package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	financeapp "github.com/fintrack/backend/internal/application/finance"
	identityapp "github.com/fintrack/backend/internal/application/identity"
	limitsapp "github.com/fintrack/backend/internal/application/limits"
	reportapp "github.com/fintrack/backend/internal/application/report"
	"github.com/fintrack/backend/internal/domain/ledger"
	"github.com/fintrack/backend/internal/infrastructure/auth"
	"github.com/fintrack/backend/internal/infrastructure/cache"
	"github.com/fintrack/backend/internal/infrastructure/config"
	"github.com/fintrack/backend/internal/infrastructure/logger"
	"github.com/fintrack/backend/internal/infrastructure/persistence"
	"github.com/fintrack/backend/internal/infrastructure/persistence/models"
	"github.com/fintrack/backend/internal/interfaces/http/handler"
	"github.com/fintrack/backend/internal/interfaces/http/middleware"
	"github.com/fintrack/backend/internal/interfaces/http/router"
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
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting FinTrack Backend",
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
	log.Info("Database connected successfully", zap.String("driver", cfg.Database.Driver))

	// Postgres schemas are managed through cmd/migrate. SQLite is for local
	// development only, so its schema comes straight from the models.
	if cfg.Database.Driver == "sqlite" {
		if err := db.DB.AutoMigrate(
			&models.UserModel{},
			&models.BalanceSnapshotModel{},
			&models.IncomeModel{},
			&models.ExpenseModel{},
			&models.SplitShareModel{},
			&models.InvestmentModel{},
			&models.LoanModel{},
			&models.LoanPaymentModel{},
			&models.EMIModel{},
			&models.MoneyLentModel{},
			&models.MoneyBorrowedModel{},
			&models.SpendingLimitModel{},
		); err != nil {
			log.Fatal("Failed to migrate sqlite schema", zap.Error(err))
		}
		log.Info("SQLite schema migrated")
	}

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	snapshotRepo := persistence.NewGormBalanceSnapshotRepository(db.DB)
	incomeRepo := persistence.NewGormIncomeRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	investmentRepo := persistence.NewGormInvestmentRepository(db.DB)
	loanPaymentRepo := persistence.NewGormLoanPaymentRepository(db.DB)
	limitRepo := persistence.NewGormLimitRepository(db.DB)

	// Transaction scope binds every balance-mutating service to a single
	// GORM transaction per operation.
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Initialize application services
	balanceLedger := financeapp.NewBalanceLedger(time.Now)
	incomeService := financeapp.NewIncomeService(txScope, balanceLedger)
	expenseService := financeapp.NewExpenseService(txScope, balanceLedger)
	investmentService := financeapp.NewInvestmentService(txScope, balanceLedger)
	loanService := financeapp.NewLoanService(txScope, balanceLedger)
	lendingService := financeapp.NewLendingService(txScope, balanceLedger)
	emiService := financeapp.NewEMIService(txScope, balanceLedger, ledger.DefaultEMIDebitPolicy)
	balanceService := financeapp.NewBalanceService(userRepo, snapshotRepo, time.Now)
	limitService := limitsapp.NewLimitService(limitRepo, expenseRepo, time.Now)

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)

	// Dashboard cache: Redis when enabled, with an in-memory fallback so a
	// missing Redis never blocks startup. Disabled cache means recompute.
	var dashboardCache reportapp.Cache
	if cfg.Cache.Enabled {
		factory := cache.NewReportCacheFactory(cfg.Redis,
			cache.WithLogger(log),
			cache.WithInMemoryFallback(true),
		)
		dashboardCache, err = factory.CreateCache()
		if err != nil {
			log.Warn("Dashboard cache unavailable, recomputing every request", zap.Error(err))
		}
	}

	dashboardService := reportapp.NewDashboardService(
		userRepo,
		snapshotRepo,
		incomeRepo,
		expenseRepo,
		investmentRepo,
		loanPaymentRepo,
		limitRepo,
		dashboardCache,
		log,
		reportapp.WithCacheTTL(cfg.Cache.DashboardTTL),
	)

	// Initialize handlers
	systemHandler := handler.NewSystemHandler()
	authHandler := handler.NewAuthHandler(authService)
	incomeHandler := handler.NewIncomeHandler(incomeService)
	expenseHandler := handler.NewExpenseHandler(expenseService, limitService)
	investmentHandler := handler.NewInvestmentHandler(investmentService)
	loanHandler := handler.NewLoanHandler(loanService)
	emiHandler := handler.NewEMIHandler(emiService)
	lendingHandler := handler.NewLendingHandler(lendingService)
	limitHandler := handler.NewLimitHandler(limitService)
	balanceHandler := handler.NewBalanceHandler(balanceService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. RateLimit - Apply rate limiting (if enabled)
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// JWT authentication for everything under /api. Registration, login, and
	// refresh must stay reachable without a token, as must the health probes.
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/api/v1/health",
			"/api/v1/system/info",
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
		Logger: log,
	}
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(systemHandler).
		Register(authHandler).
		Register(incomeHandler).
		Register(expenseHandler).
		Register(investmentHandler).
		Register(loanHandler).
		Register(emiHandler).
		Register(lendingHandler).
		Register(limitHandler).
		Register(balanceHandler).
		Register(dashboardHandler)
	r.Setup()

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

// healthHandler reports liveness including database reachability
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
