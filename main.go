package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/api"
	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/api/handler"
	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/api/middleware"
	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/config"
	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/iot"
	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/logger"
	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/repository/postgresql"
	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/service"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat, "smart-parking-pricing")
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer zlog.Sync()

	db, err := postgresql.NewDB(cfg)
	if err != nil {
		zlog.Fatal("could not connect to database", zap.Error(err))
	}
	defer db.Close()
	zlog.Info("database connected")

	if err := postgresql.Migrate(db); err != nil {
		zlog.Fatal("could not run migrations", zap.Error(err))
	}
	zlog.Info("schema migrations applied")

	// repositories
	userRepo := postgresql.NewPgUserRepository(db)
	shiftRepo := postgresql.NewPgShiftRepository(db)
	rateRepo := postgresql.NewPgRateRepository(db)
	parkingRepo := postgresql.NewPgParkingRepository(db)
	zoneRepo := postgresql.NewPgZoneRepository(db)
	spaceRepo := postgresql.NewPgSpaceRepository(db)
	shiftRateRepo := postgresql.NewPgShiftRateConfigRepository(db)

	// websocket hub
	webSocketManager := handler.NewWebSocketManager(zlog)
	go webSocketManager.Start()

	// services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpirationHours)
	catalogService := service.NewCatalogService(shiftRepo, rateRepo, zlog)
	facilityService := service.NewFacilityService(parkingRepo, zoneRepo, spaceRepo, webSocketManager, zlog)
	pricingService := service.NewPricingService(shiftRateRepo, parkingRepo, zoneRepo, spaceRepo, shiftRepo, rateRepo, zlog)
	occupancyService := service.NewOccupancyService(parkingRepo, zoneRepo, spaceRepo)

	authMiddleware := middleware.NewAuthMiddleware(authService, zlog)

	// sensor event consumer
	var wg sync.WaitGroup
	consumerCtx, cancelConsumer := context.WithCancel(context.Background())
	defer cancelConsumer()

	if cfg.SQSEventQueueURL == "" {
		zlog.Warn("SQS_EVENT_QUEUE_URL not configured, sensor consumer disabled")
	} else {
		awsSDKCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			zlog.Fatal("could not load AWS SDK config", zap.Error(err))
		}
		sqsClient := sqs.NewFromConfig(awsSDKCfg)
		sqsConsumer := iot.NewSQSConsumer(sqsClient, cfg, facilityService, zlog)
		wg.Add(1)
		go func() {
			defer wg.Done()
			sqsConsumer.Start(consumerCtx)
		}()
	}

	router := api.SetupRouter(authService, catalogService, facilityService, pricingService, occupancyService, authMiddleware, webSocketManager, zlog)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		zlog.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("ListenAndServe failed", zap.Error(err))
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("shutting down server")

	cancelConsumer()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Fatal("forced server shutdown", zap.Error(err))
	}

	if cfg.SQSEventQueueURL != "" {
		done := make(chan struct{})
		go func() {
			defer close(done)
			wg.Wait()
		}()
		select {
		case <-done:
			zlog.Info("sqs consumer stopped")
		case <-time.After(5 * time.Second):
			zlog.Warn("sqs consumer did not stop in time")
		}
	}

	zlog.Info("server stopped")
}
