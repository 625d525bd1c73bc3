package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"consultation-history-service/internal/adapters"
	"consultation-history-service/internal/api/handlers"
	"consultation-history-service/internal/config"
	"consultation-history-service/internal/database"
	"consultation-history-service/internal/domain/repositories"
	"consultation-history-service/internal/services"
)

func main() {
	logger := log.New(os.Stdout, "consultation-history: ", log.LstdFlags)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("loading configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatalf("connecting to database: %v", err)
	}

	consultationRepo := repositories.NewGormConsultationRepository(db)
	versionStore := repositories.NewGormVersionStore(db)
	followUpRepo := repositories.NewGormFollowUpRepository(db)

	queue := adapters.NewInMemoryQueueAdapter(logger)

	consultationService := services.NewConsultationService(consultationRepo, versionStore, queue, logger)
	historyPresenter := services.NewHistoryPresenter(consultationRepo, versionStore, nil, logger)
	followUpService := services.NewFollowUpService(followUpRepo, consultationRepo, logger)
	auditTrail := services.NewAuditTrailService(queue, logger)

	if err := auditTrail.Start(context.Background()); err != nil {
		logger.Fatalf("starting audit trail consumer: %v", err)
	}

	app := fiber.New()
	app.Use(cors.New())

	handlers.RegisterConsultationRoutes(app, handlers.NewConsultationHandler(consultationService, historyPresenter, logger))
	handlers.RegisterFollowUpRoutes(app, handlers.NewFollowUpHandler(followUpService, logger))

	go func() {
		if err := app.Listen(":" + cfg.ListenPort); err != nil {
			logger.Fatalf("server stopped: %v", err)
		}
	}()
	logger.Printf("listening on :%s", cfg.ListenPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Println("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Printf("http shutdown: %v", err)
	}
	if err := auditTrail.Stop(shutdownCtx); err != nil {
		logger.Printf("audit trail shutdown: %v", err)
	}
	logger.Println("bye")
}
