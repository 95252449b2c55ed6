package main

import (
	"fmt"
	"log"

	"passdesk/internal/config"
	"passdesk/internal/handler"
	"passdesk/internal/repository/postgres"
	"passdesk/internal/router"
	"passdesk/internal/service"
	s3storage "passdesk/internal/storage/s3"
	"passdesk/internal/validator"
	"passdesk/internal/validator/passport"
	"passdesk/internal/vision"
	"passdesk/internal/xlsx"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	fileRepo := postgres.NewFileMetaRepo(db)
	entryRepo := postgres.NewEntryRepo(db)

	// Initialize storage and OCR client
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}
	visionClient := vision.NewClient(&cfg.Vision)

	// Register validation rules
	rules := validator.NewRegistry()
	for _, v := range passport.AllBuiltinValidators() {
		rules.Register(v)
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	userSvc := service.NewUserService(userRepo)
	fileSvc := service.NewFileService(fileRepo, s3Client, &cfg.S3)
	scanSvc := service.NewScanService(visionClient, fileSvc, rules, cfg.Scan)
	entrySvc := service.NewEntryService(entryRepo, xlsx.NewWriter(cfg.Excel.SheetName))

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc, userSvc)
	userH := handler.NewUserHandler(userSvc)
	fileH := handler.NewFileHandler(fileSvc)
	scanH := handler.NewScanHandler(scanSvc)
	entryH := handler.NewEntryHandler(entrySvc, cfg.Excel)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg.CORS, authSvc, authH, fileH, scanH, entryH, userH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
