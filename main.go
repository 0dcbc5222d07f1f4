// File: trylocal/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trylocal/config"
	"trylocal/cron"
	"trylocal/database"
	businessRepo "trylocal/database/repository/business"
	"trylocal/handlers"
	"trylocal/middleware"
	"trylocal/routes"
	businessSvc "trylocal/services/business"
	"trylocal/services/notification"
	"trylocal/services/payments"
	"trylocal/services/schedule"
	"trylocal/services/storage"
	"trylocal/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	storageService, err := storage.NewCloudinaryStorageService(
		config.AppConfig.CloudinaryName,
		config.AppConfig.CloudinaryKey,
		config.AppConfig.CloudinarySecret,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize photo storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// repositories.
	bizRepo := businessRepo.NewMongoBusinessRepo()

	// background queue.
	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPass,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queueClient.Close()

	// services.
	emailService := notification.NewQueuedEmailService(queueClient)
	mailer := notification.NewSMTPEmailService()

	businessService := &businessSvc.DefaultBusinessService{Repo: bizRepo}
	scheduleService := &schedule.DefaultScheduleService{Repo: bizRepo}

	connectService := &payments.DefaultConnectService{
		Client:     payments.NewStripeConnectClient(config.AppConfig.StripeKey),
		Repo:       bizRepo,
		Email:      emailService,
		Queue:      queueClient,
		ReturnURL:  config.AppConfig.OnboardingReturn,
		RefreshURL: config.AppConfig.OnboardingRetry,
	}

	cron.InitWorker(mailer, connectService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		BusinessRepo:    bizRepo,
		BusinessHandler: handlers.NewBusinessHandler(businessService),
		SlotsHandler:    handlers.NewSlotsHandler(scheduleService),
		PaymentsHandler: handlers.NewPaymentsHandler(connectService),
		StorageHandler:  handlers.NewStorageHandler(storageService, businessService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
