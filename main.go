// File: superclinic/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"superclinic/config"
	"superclinic/cron"
	"superclinic/database"
	doctorRepoPkg "superclinic/database/repository/doctor"
	scheduleRepoPkg "superclinic/database/repository/schedule"
	"superclinic/handlers"
	"superclinic/middleware"
	"superclinic/routes"
	"superclinic/services/assistant"
	"superclinic/services/booking"
	"superclinic/services/tasks"
	"superclinic/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitChatCache()
	utils.StartHealthMonitor(utils.GetChatCacheClient(), database.MongoClient)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// repositories.
	doctorRepo := doctorRepoPkg.NewMongoDoctorRepo()
	scheduleRepo := scheduleRepoPkg.NewMongoScheduleRepo()
	if indexed, ok := scheduleRepo.(interface{ EnsureIndexes() error }); ok {
		if err := indexed.EnsureIndexes(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure schedule indexes: %v", err)
		}
	}

	// services.
	reminderScheduler := tasks.NewScheduler()
	defer reminderScheduler.Close()

	bookingSvc := &booking.DefaultBookingService{
		DoctorRepo:   doctorRepo,
		ScheduleRepo: scheduleRepo,
		Reminders:    reminderScheduler,
	}

	llm, err := assistant.NewClientFromConfig(context.Background())
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize model client: %v", err)
	}

	var chatStore assistant.ChatStore
	ttl := time.Duration(config.AppConfig.ChatHistoryTTLMin) * time.Minute
	switch config.AppConfig.ChatStore {
	case "redis":
		chatStore = assistant.NewRedisStore(utils.GetChatCacheClient(), ttl)
	default:
		chatStore = assistant.NewMemoryStore(ttl, config.AppConfig.ChatHistoryMax)
	}

	assistantSvc := assistant.NewService(llm, chatStore, bookingSvc, config.AppConfig.MaxToolRounds)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	hb := &handlers.HandlerBundle{
		ChatHandler:               handlers.ChatHandler(assistantSvc),
		ClearChatHandler:          handlers.ClearChatHandler(assistantSvc),
		ListDoctorsHandler:        handlers.ListDoctorsHandler(bookingSvc),
		DoctorAvailabilityHandler: handlers.DoctorAvailabilityHandler(bookingSvc),
	}
	routes.RegisterRoutes(router, hb)

	// Start the background reminder worker.
	cron.InitReminderWorker()

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Info("Starting Super Clinic server", zap.String("port", config.AppConfig.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: forced shutdown: %v", err)
	}
	if err := database.MongoClient.Disconnect(ctx); err != nil {
		logger.Warn("Failed to disconnect MongoDB", zap.Error(err))
	}
	logger.Info("Server exited cleanly")
}
