package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"ocr-journal-backend/internal/api"
	"ocr-journal-backend/internal/api/handlers"
	"ocr-journal-backend/internal/repository"
	"ocr-journal-backend/internal/service"
	"ocr-journal-backend/internal/vision"
	"ocr-journal-backend/internal/zoho"
	"ocr-journal-backend/pkg/auth"
	"ocr-journal-backend/pkg/config"
	"ocr-journal-backend/pkg/logger"
	"ocr-journal-backend/pkg/postgres"
)

// @title OCR Journal Backend API
// @version 1.0
// @description Bank screenshot intake, OCR field extraction and multi-company Zoho Books journal posting

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting OCR journal backend")

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	connectionRepo := repository.NewConnectionRepository(db, appLogger)
	uploadRepo := repository.NewUploadRepository(db, appLogger)
	transactionRepo := repository.NewTransactionRepository(db, appLogger)
	bankRuleRepo := repository.NewBankRuleRepository(db, appLogger)
	mappingRuleRepo := repository.NewMappingRuleRepository(db, appLogger)
	accountRepo := repository.NewAccountRepository(db, appLogger)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.Expiration)

	// OCR engine: real Vision client or the naive stub, chosen once here
	var engine service.OCREngine = service.StubEngine{}
	if cfg.Vision.Enabled {
		visionClient, err := vision.New(ctx, cfg.Vision.CredentialsFile, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize Vision client", zap.Error(err))
		}
		defer visionClient.Close()
		engine = visionClient
	} else {
		appLogger.Warn("Vision OCR disabled, using stub engine")
	}

	zohoClient := zoho.NewClient(cfg.Zoho, appLogger)

	// Services
	ocrService := service.NewOCRService(engine, cfg.Vision.Timeout, appLogger)
	uploadService := service.NewUploadService(uploadRepo, ocrService, cfg.Uploads.Dir, appLogger)
	routingService := service.NewRoutingService(bankRuleRepo, appLogger)
	journalService := service.NewJournalService(connectionRepo, transactionRepo, zohoClient, appLogger)
	accountService := service.NewAccountService(connectionRepo, accountRepo, zohoClient, appLogger)

	// Handlers
	authHandler := handlers.NewAuthHandler(jwtManager, cfg.Auth, appLogger)
	oauthHandler := handlers.NewOAuthHandler(zohoClient, connectionRepo, appLogger)
	ocrHandler := handlers.NewOCRHandler(uploadService, routingService, cfg.Vision, appLogger)
	rulesHandler := handlers.NewRulesHandler(bankRuleRepo, mappingRuleRepo, appLogger)
	companiesHandler := handlers.NewCompaniesHandler(connectionRepo, accountService, appLogger)
	booksHandler := handlers.NewBooksHandler(journalService, appLogger)

	app := api.SetupRouter(authHandler, oauthHandler, ocrHandler, rulesHandler, companiesHandler, booksHandler, jwtManager, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
