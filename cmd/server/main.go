package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"franquicias-latam.backend/internal/config"
	"franquicias-latam.backend/internal/infrastructure/notify"
	"franquicias-latam.backend/internal/infrastructure/repositories"
	"franquicias-latam.backend/internal/infrastructure/sms"
	"franquicias-latam.backend/internal/interfaces/http/handlers"
	"franquicias-latam.backend/internal/interfaces/http/middleware"
	"franquicias-latam.backend/internal/usecases"
	"franquicias-latam.backend/pkg/cache"
	"franquicias-latam.backend/pkg/jwt"
	"franquicias-latam.backend/pkg/logger"
	"franquicias-latam.backend/pkg/redis"
)

const catalogCacheTTL = 5 * time.Minute

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	newQuizStore = redis.NewQuizStore
	runServer    = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB     = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("Connected to PostgreSQL via GORM")
	}

	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Repositories
	otpRepo := repositories.NewOtpRepository(db)
	leadRepo := repositories.NewLeadRepository(db)
	franchiseRepo := repositories.NewFranchiseRepository(db)
	catalogRepo := repositories.NewCatalogRepository(db)
	adminRepo := repositories.NewAdminUserRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Quiz session store
	quizStore, err := newQuizStore(cfg.Security.QuizSessionKey, 30*time.Minute)
	if err != nil {
		return fmt.Errorf("failed to initialize quiz session store: %w", err)
	}

	// External collaborators
	var sender usecases.SmsSender
	switch {
	case cfg.Twilio.Configured():
		sender = sms.NewTwilioSender(cfg.Twilio)
	case cfg.Server.IsProduction():
		sender = sms.UnconfiguredSender{}
	default:
		sender = sms.DevSender{}
	}

	var notifier usecases.LeadNotifier
	if cfg.SendGrid.APIKey != "" {
		notifier = notify.NewSendGridNotifier(cfg.SendGrid)
	} else {
		notifier = notify.NopNotifier{}
	}

	// Usecases
	otpUsecase := usecases.NewOtpUsecase(otpRepo, sender, cfg.Otp, cfg.Server.IsProduction())
	leadUsecase := usecases.NewLeadUsecase(leadRepo, franchiseRepo, catalogRepo, otpUsecase, uow, notifier)
	catalogUsecase := usecases.NewCatalogUsecase(catalogRepo, cache.New(catalogCacheTTL))
	franchiseUsecase := usecases.NewFranchiseUsecase(franchiseRepo, catalogRepo)
	authUsecase := usecases.NewAuthUsecase(adminRepo, jwtService)
	quizUsecase := usecases.NewQuizUsecase(quizStore)

	// Handlers
	otpHandler := handlers.NewOtpHandler(otpUsecase)
	leadHandler := handlers.NewLeadHandler(leadUsecase)
	franchiseHandler := handlers.NewFranchiseHandler(franchiseUsecase)
	catalogHandler := handlers.NewCatalogHandler(catalogUsecase)
	adminHandler := handlers.NewAdminHandler(authUsecase)
	quizHandler := handlers.NewQuizHandler(quizUsecase)

	adminAuth := middleware.AdminAuthMiddleware(jwtService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		otpHandler:       otpHandler,
		leadHandler:      leadHandler,
		franchiseHandler: franchiseHandler,
		catalogHandler:   catalogHandler,
		adminHandler:     adminHandler,
		quizHandler:      quizHandler,
		adminAuth:        adminAuth,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")
	}()

	log.Printf("Franquicias LATAM backend starting on port %s", cfg.Server.Port)
	log.Printf("API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
