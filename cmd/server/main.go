package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"alcyxob/run-trainer/internal/api"
	"alcyxob/run-trainer/internal/config"
	"alcyxob/run-trainer/internal/domain"
	"alcyxob/run-trainer/internal/logging"
	"alcyxob/run-trainer/internal/repository"
	"alcyxob/run-trainer/internal/repository/mongo"
	"alcyxob/run-trainer/internal/repository/relational"
	"alcyxob/run-trainer/internal/service"
	"alcyxob/run-trainer/internal/storage"
	"alcyxob/run-trainer/internal/strava"
)

// @title Run Trainer API
// @version 1.0
// @description Training plans, schedule import, run logging and adherence analytics.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logrus.Fatalf("Could not load config: %v", err)
	}
	log := logging.New(cfg.Log)
	log.WithFields(logrus.Fields{"version": cfg.Server.Version, "driver": cfg.Database.Driver}).Info("Starting Run Trainer server")

	if cfg.JWT.Secret == "" {
		log.Fatal("jwt.secret (JWT_SECRET) must be set")
	}
	unit, err := domain.ParseDistanceUnit(cfg.Import.DistanceUnit)
	if err != nil {
		log.Fatalf("Invalid import.distance_unit: %v", err)
	}

	// --- Database ---
	store, err := openStore(cfg.Database, log)
	if err != nil {
		log.Fatalf("Could not open %s database: %v", cfg.Database.Driver, err)
	}
	defer store.close()

	// --- Storage ---
	var files storage.FileStorage
	if cfg.S3.BucketName != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		files, err = storage.NewS3Storage(ctx, cfg.S3, log)
		cancel()
		if err != nil {
			log.Fatalf("Failed to initialize S3 storage: %v", err)
		}
	} else {
		log.Warn("S3 bucket not configured, schedule document uploads are disabled")
	}

	// --- Strava ---
	var activities service.ActivityClient
	if cfg.Strava.Enabled() {
		activities = strava.NewClient(cfg.Strava, &http.Client{Timeout: 15 * time.Second}, log)
	} else {
		log.Info("Strava credentials not configured, sync is disabled")
	}

	// --- Services ---
	workoutService := service.NewWorkoutService(store.plans, store.workouts, log)
	runService := service.NewRunService(store.plans, store.workouts, store.runs, log)
	services := api.Services{
		Auth:      service.NewAuthService(store.users, cfg.JWT.Secret, cfg.JWT.Expiration, log),
		Plans:     service.NewPlanService(store.plans, store.workouts, store.runs, log),
		Workouts:  workoutService,
		Runs:      runService,
		Import:    service.NewImportService(store.plans, workoutService, files, unit, log),
		Analytics: service.NewAnalyticsService(store.plans, store.workouts, store.runs),
		Strava:    service.NewStravaService(activities, strava.NewMemoryTokenStore(), store.plans, runService, log),
	}

	// --- Router ---
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	var limiter *api.ClientLimiter
	if cfg.RateLimit.RPS > 0 {
		limiter = api.NewClientLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
	err = api.SetupRoutes(router, services, api.RouterOptions{
		JWTSecret: cfg.JWT.Secret,
		Debug:     gin.Mode() == gin.DebugMode,
		Version:   cfg.Server.Version,
		Limiter:   limiter,
		DB:        store.pinger,
		Log:       log,
	})
	if err != nil {
		log.Fatalf("Could not set up routes: %v", err)
	}
	if cfg.Server.EnableProfiling {
		pprof.Register(router)
		log.Warn("pprof routes enabled under /debug/pprof")
	}

	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", api.HeaderRequestID},
		ExposedHeaders:   []string{api.HeaderRequestID},
		AllowCredentials: false,
	}).Handler(router)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("Server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}
	log.Info("Server exiting.")
}

// dataStore is the repository set of the configured backend.
type dataStore struct {
	users    repository.UserRepository
	plans    repository.TrainingPlanRepository
	workouts repository.WorkoutRepository
	runs     repository.RunRepository
	pinger   repository.Pinger
	close    func()
}

func openStore(cfg config.DatabaseConfig, log *logrus.Logger) (*dataStore, error) {
	switch cfg.Driver {
	case relational.DriverPostgres, relational.DriverSQLite:
		db, err := relational.Open(cfg.Driver, cfg.DSN, log)
		if err != nil {
			return nil, err
		}
		return &dataStore{
			users:    relational.NewUserRepository(db),
			plans:    relational.NewTrainingPlanRepository(db),
			workouts: relational.NewWorkoutRepository(db),
			runs:     relational.NewRunRepository(db),
			pinger:   relational.NewPinger(db),
			close: func() {
				if sqlDB, err := db.DB(); err == nil {
					sqlDB.Close()
				}
			},
		}, nil

	case "mongo", "":
		client, err := mongo.ConnectDB(cfg.URI)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.Name)

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		mongo.EnsureIndexes(ctx, db, log)
		cancel()

		return &dataStore{
			users:    mongo.NewMongoUserRepository(db),
			plans:    mongo.NewMongoTrainingPlanRepository(db),
			workouts: mongo.NewMongoWorkoutRepository(db),
			runs:     mongo.NewMongoRunRepository(db),
			pinger:   mongo.NewPinger(client),
			close: func() {
				log.Info("Disconnecting MongoDB...")
				if err := mongo.DisconnectDB(client); err != nil {
					log.Errorf("Failed to disconnect MongoDB: %v", err)
				}
			},
		}, nil
	}
	return nil, errors.New("unsupported database driver " + cfg.Driver)
}
