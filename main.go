package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skillswap/config"
	"skillswap/cron"
	"skillswap/database"
	denialRepoPkg "skillswap/database/repository/denial"
	ratingRepoPkg "skillswap/database/repository/rating"
	sessionRepoPkg "skillswap/database/repository/session"
	skillRepoPkg "skillswap/database/repository/skill"
	userRepoPkg "skillswap/database/repository/user"
	"skillswap/handlers"
	"skillswap/routes"
	"skillswap/services/availability"
	"skillswap/services/booking"
	"skillswap/services/calendar"
	"skillswap/services/matching"
	"skillswap/services/notification"
	"skillswap/services/profile"
	"skillswap/services/rating"
	"skillswap/services/tasks"
	"skillswap/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()

	loc, err := time.LoadLocation(config.AppConfig.Timezone)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid timezone %q: %v", config.AppConfig.Timezone, err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	sessionRepo := sessionRepoPkg.NewMongoSessionRepo()
	ratingRepo := ratingRepoPkg.NewMongoRatingRepo()
	denialRepo := denialRepoPkg.NewMongoDenialRepo()
	skillRepo := skillRepoPkg.NewMongoSkillRepo()

	// services.
	calendarProvider := calendar.NewGoogleProvider(config.AppConfig.Timezone)
	reconciler := availability.NewReconciler(loc, config.AppConfig.WorkingHourStart, config.AppConfig.WorkingHourEnd)

	matchingService := &matching.DefaultMatchingService{
		UserRepo:     userRepo,
		DenialRepo:   denialRepo,
		CacheClient:  utils.GetCacheClient(),
		CacheTTL:     time.Duration(config.AppConfig.MatchCacheTTLSeconds) * time.Second,
		DefaultLimit: config.AppConfig.MatchDefaultLimit,
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer asynqClient.Close()

	bookingService := &booking.DefaultBookingService{
		UserRepo:    userRepo,
		SessionRepo: sessionRepo,
		Calendar:    calendarProvider,
		Reminders:   &tasks.AsynqScheduler{Client: asynqClient},
	}

	ratingService := &rating.DefaultRatingService{
		SessionRepo: sessionRepo,
		RatingRepo:  ratingRepo,
		UserRepo:    userRepo,
	}

	profileService := &profile.DefaultProfileService{
		UserRepo:    userRepo,
		SessionRepo: sessionRepo,
		RatingRepo:  ratingRepo,
		DenialRepo:  denialRepo,
		SkillRepo:   skillRepo,
		Calendar:    calendarProvider,
		Reconciler:  reconciler,
		MatchCache:  matchingService,
	}

	notificationService := &notification.DefaultNotificationService{
		UserRepo: userRepo,
	}

	// Background reminder consumer and dependency health checks.
	cron.InitReminderWorker(notificationService)
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Assemble the handler bundle and register routes.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:    userRepo,
		ProfileSvc:  profileService,
		MatchingSvc: matchingService,
		BookingSvc:  bookingService,
		RatingSvc:   ratingService,
	}
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
