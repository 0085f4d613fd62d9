// File: schedbot/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"schedbot/config"
	"schedbot/handlers"
	"schedbot/middleware"
	"schedbot/routes"
	"schedbot/services/calendar"
	ai "schedbot/services/intelligence"
	"schedbot/services/pipeline"
	"schedbot/services/timeparse"
	"schedbot/services/webex"
	"schedbot/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitRedis()
	utils.StartHealthMonitor([]*redis.Client{utils.GetCacheClient(), utils.GetStateCacheClient()})

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	httpTimeout := time.Duration(config.AppConfig.HTTPTimeoutSeconds) * time.Second

	// External clients.
	webexClient := webex.NewClient(
		config.AppConfig.WebexAPIBase,
		config.AppConfig.WebexAccessToken,
		httpTimeout,
		logger,
	)

	extractor := ai.NewGeminiExtractor(
		config.AppConfig.GeminiAPIKey,
		config.AppConfig.GeminiModel,
		float32(config.AppConfig.GeminiTemperature),
		config.AppConfig.DefaultTimezone,
	)

	normalizer, err := timeparse.NewNormalizer(
		config.AppConfig.DefaultTimezone,
		time.Duration(config.AppConfig.MeetingDurationMinutes)*time.Minute,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize time normalizer: %v", err)
	}

	// Calendar side: credential store, authorization flow, publisher.
	credStore := calendar.NewCredentialStore(config.AppConfig.GoogleTokenFile)
	authorizer, err := calendar.NewAuthorizer(
		config.AppConfig.GoogleCredentialsFile,
		config.AppConfig.OAuthRedirectURL,
		credStore,
		&calendar.RedisStateStore{Client: utils.GetStateCacheClient()},
		logger,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize calendar authorizer: %v", err)
	}

	publisher := &calendar.GooglePublisher{
		Config:    authorizer.Config(),
		Store:     credStore,
		Organizer: config.AppConfig.OrganizerEmail,
		Timezone:  config.AppConfig.DefaultTimezone,
		Logger:    logger,
	}

	pipelineService := &pipeline.DefaultPipelineService{
		Fetcher:     webexClient,
		Extractor:   extractor,
		Provisioner: webexClient,
		Publisher:   publisher,
		Normalizer:  normalizer,
		Dedup:       utils.GetCacheClient(),
		Logger:      logger,
	}

	webhookHandler := handlers.NewWebhookHandler(pipelineService, logger)
	authHandler := handlers.NewAuthHandler(authorizer, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		HandleWebhook:         webhookHandler.HandleWebhook,
		GoogleAuthHandler:     authHandler.GoogleAuthHandler,
		GoogleCallbackHandler: authHandler.GoogleCallbackHandler,
		WebexCallbackHandler:  authHandler.WebexCallbackHandler,
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
