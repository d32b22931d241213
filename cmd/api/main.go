package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"studentgigs/internal/app"
	"studentgigs/internal/config"
	"studentgigs/internal/database"
	apphttp "studentgigs/internal/http"
	"studentgigs/internal/http/handlers"
	"studentgigs/internal/http/metrics"
	httpmw "studentgigs/internal/http/middleware"
	"studentgigs/internal/http/response"
	"studentgigs/internal/observability"
	"studentgigs/internal/repository/postgres"
	"studentgigs/internal/security"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger()
	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	jobRepo := postgres.NewJobRepository(db)
	savedJobRepo := postgres.NewSavedJobRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)
	interviewRepo := postgres.NewInterviewRepository(db)
	conversationRepo := postgres.NewConversationRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	studentProfileRepo := postgres.NewStudentProfileRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)
	adminRepo := postgres.NewAdminRepository(db)

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret, cfg.TokenTTL)

	notificationService := app.NewNotificationService(notificationRepo, logger)
	authService := app.NewAuthService(userRepo, jwtProvider, logger)
	jobService := app.NewJobService(jobRepo, applicationRepo, savedJobRepo, notificationService)
	applicationService := app.NewApplicationService(applicationRepo, jobRepo, notificationService)
	interviewService := app.NewInterviewService(interviewRepo, applicationRepo, jobRepo, notificationService)
	messageService := app.NewMessageService(conversationRepo, userRepo, jobRepo)
	profileService := app.NewProfileService(studentProfileRepo)
	reviewService := app.NewReviewService(reviewRepo)
	adminService := app.NewAdminService(adminRepo, userRepo, jobRepo)

	var limiter httpmw.Limiter = httpmw.NewMemoryLimiter()
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal(err)
		}
		limiter = httpmw.NewRedisLimiter(redis.NewClient(opts))
	}

	authHandler := handlers.NewAuthHandler(authService, limiter)
	jobHandler := handlers.NewJobHandler(jobService)
	applicationHandler := handlers.NewApplicationHandler(applicationService)
	interviewHandler := handlers.NewInterviewHandler(interviewService)
	messageHandler := handlers.NewMessageHandler(messageService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	profileHandler := handlers.NewProfileHandler(profileService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	adminHandler := handlers.NewAdminHandler(adminService)
	authMiddleware := httpmw.NewAuthMiddleware(jwtProvider)

	collector := metrics.NewCollector()
	response.SetErrorCollector(collector)

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		AuthHandler:         authHandler,
		JobHandler:          jobHandler,
		ApplicationHandler:  applicationHandler,
		InterviewHandler:    interviewHandler,
		MessageHandler:      messageHandler,
		NotificationHandler: notificationHandler,
		ProfileHandler:      profileHandler,
		ReviewHandler:       reviewHandler,
		AdminHandler:        adminHandler,
		MetricsHandler:      handlers.NewMetricsHandler(collector),
		AuthMiddleware:      authMiddleware,
		Metrics:             collector,
		RequestTimeout:      cfg.RequestTimeout,
	})
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("API started on :" + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
