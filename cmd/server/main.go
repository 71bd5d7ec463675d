package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/webstack-art/FormNest/internal/cache"
	"github.com/webstack-art/FormNest/internal/config"
	"github.com/webstack-art/FormNest/internal/repository"
	"github.com/webstack-art/FormNest/internal/service"
	"github.com/webstack-art/FormNest/internal/transport/rest"
	"github.com/webstack-art/FormNest/internal/transport/ws"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load()
	ctx := context.Background()

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		logrus.WithError(err).Fatal("failed to ping MongoDB")
	}
	logrus.WithField("database", cfg.MongoDatabase).Info("connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDatabase)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		logrus.WithError(err).Fatal("failed to ping Redis")
	}
	logrus.WithField("addr", cfg.RedisAddr).Info("connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	logrus.Info("WebSocket hub started")

	// Initialize repositories
	formRepo := repository.NewFormRepo(db)
	submissionRepo := repository.NewSubmissionRepo(db)

	// Initialize caches
	analyticsCache := cache.NewAnalyticsCache(rdb, cfg.AnalyticsTTL)

	// Initialize services
	authSvc := service.NewAuthService(cfg)
	formSvc := service.NewFormService(formRepo)
	submissionSvc := service.NewSubmissionService(formRepo, submissionRepo, analyticsCache)
	analyticsSvc := service.NewAnalyticsService(formRepo, submissionRepo, analyticsCache)
	exportSvc := service.NewExportService(formRepo, submissionRepo)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	submissionSvc.SetBroadcaster(wsHub)
	formSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:       authSvc,
		FormService:       formSvc,
		SubmissionService: submissionSvc,
		AnalyticsService:  analyticsSvc,
		ExportService:     exportSvc,
		WSHub:             wsHub,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logrus.WithField("port", cfg.Port).Info("server starting")
		logrus.Info("endpoints:")
		logrus.Info("  POST /v1/auth/login")
		logrus.Info("  POST/GET /v1/forms")
		logrus.Info("  GET/PUT/DELETE /v1/forms/{formId}")
		logrus.Info("  POST /v1/forms/{formId}/submissions")
		logrus.Info("  GET  /v1/forms/{formId}/submissions")
		logrus.Info("  GET  /v1/forms/{formId}/analytics")
		logrus.Info("  GET  /v1/forms/{formId}/export")
		logrus.Info("  POST /v1/forms/{formId}/respondents")
		logrus.Info("  WS   /v1/ws/forms/{formId}/viewers")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("ListenAndServe")
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Fatal("server forced to shutdown")
	}

	logrus.Info("server exited")
}
