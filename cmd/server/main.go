package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"worksafe/internal/cache"
	"worksafe/internal/config"
	"worksafe/internal/repository"
	"worksafe/internal/service"
	"worksafe/internal/transport/rest"
	"worksafe/internal/transport/ws"
)

// @title Worksafe Psychosocial Analysis API
// @version 1.0
// @description Psychosocial survey analysis and automated remediation engine
// @host localhost:8080
// @BasePath /v1
func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB)

	// Redis connection
	redisAddr := strings.TrimPrefix(cfg.RedisAddr, "redis://")
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	surveyRepo := repository.NewSurveyRepo(db)
	submissionRepo := repository.NewSubmissionRepo(db)
	riskRepo := repository.NewRiskRepo(db)
	measureRepo := repository.NewMeasureRepo(db)
	userRepo := repository.NewUserRepo(db)
	notificationRepo := repository.NewNotificationRepo(db)

	// Initialize caches
	reportCache := cache.NewReportCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService(userRepo)
	surveySvc := service.NewSurveyService(surveyRepo, submissionRepo)
	notificationSvc := service.NewNotificationService(userRepo, notificationRepo)
	notificationSvc.SetBroadcaster(wsHub)
	scoringSvc := service.NewScoringService(nil)
	remediationSvc := service.NewRemediationService(riskRepo, measureRepo, userRepo, notificationSvc)
	analysisSvc := service.NewAnalysisService(submissionRepo, surveyRepo, scoringSvc, remediationSvc, reportCache)
	reportSvc := service.NewReportService(submissionRepo, surveyRepo, riskRepo, measureRepo, scoringSvc, reportCache)

	// Create router with container
	container := &rest.Container{
		AuthService:         authSvc,
		SurveyService:       surveySvc,
		AnalysisService:     analysisSvc,
		ReportService:       reportSvc,
		NotificationService: notificationSvc,
		WSHub:               wsHub,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  POST/GET /v1/surveys")
		log.Println("  PUT  /v1/surveys/{surveyId}")
		log.Println("  POST /v1/surveys/{surveyId}/submissions")
		log.Println("  POST /v1/submissions/{submissionId}/analyze")
		log.Println("  GET  /v1/reports/{year}")
		log.Println("  GET  /v1/reports/{year}/summary")
		log.Println("  POST /v1/members/{memberId}/token")
		log.Println("  GET  /v1/notifications")
		log.Println("  WS   /v1/ws/notifications")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
