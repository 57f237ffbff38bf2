package main

import (
	"alcyxob/workout-api/internal/api"
	"alcyxob/workout-api/internal/config"
	"alcyxob/workout-api/internal/logger"
	"alcyxob/workout-api/internal/repository/mongo"
	"alcyxob/workout-api/internal/service"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// @title Workout API
// @version 1.0
// @description API for managing workouts and keeping workout plans consistent when workouts are deleted.
// @host localhost:8080
// @BasePath /api/v1
func main() {
	os.Exit(run())
}

// run wires and serves the API. It returns the process exit code so deferred
// cleanup runs before main exits.
func run() int {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.New(logger.Config{}).Error("could not load config", "error", err)
		return 1
	}
	log := logger.New(logger.Config{Level: cfg.Log.Level, JSON: cfg.Log.JSON})
	log.Info("configuration loaded", "address", cfg.Server.Address, "database", cfg.Database.Name, "cascade_mode", cfg.Database.CascadeMode)

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Error("could not connect to MongoDB", "error", err)
		return 1
	}
	defer func() {
		log.Info("disconnecting MongoDB")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Error("failed to disconnect MongoDB", "error", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Info("database connection established")

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		if err := mongo.EnsureWorkoutIndexes(ctx, appDB.Collection("workouts")); err != nil {
			log.Warn("failed to create workout indexes", "error", err)
		}
		if err := mongo.EnsureWorkoutPlanIndexes(ctx, appDB.Collection("workoutplans")); err != nil {
			log.Warn("failed to create workout plan indexes", "error", err)
		}
		log.Debug("index creation finished")
	}()

	// --- Initialize Repositories ---
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	workoutPlanRepo := mongo.NewMongoWorkoutPlanRepository(appDB)

	// --- Initialize Services ---
	serviceOpts := []service.Option{service.WithLogger(log)}
	if cfg.Database.CascadeMode == config.CascadeTransactional {
		serviceOpts = append(serviceOpts, service.WithTransactor(mongo.NewTransactor(dbClient)))
	}
	workoutService := service.NewWorkoutService(workoutRepo, exerciseRepo, workoutPlanRepo, serviceOpts...)

	// --- Initialize Gin Engine ---
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestIDMiddleware(), api.RequestLoggerMiddleware(log), api.MetricsMiddleware())

	api.SetupRoutes(router, mongo.NewPinger(dbClient), workoutService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server starting", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	exitCode := waitForStop(log, quit, serverErr)

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("server forced to shutdown", "error", err)
		exitCode = 1
	}
	log.Info("server exiting", "code", exitCode)
	return exitCode
}

// waitForStop blocks until a signal arrives or the server fails, and returns
// the exit code for that cause.
func waitForStop(log logger.Logger, quit <-chan os.Signal, serverErr <-chan error) int {
	select {
	case sig := <-quit:
		log.Info("shutting down server", "signal", sig.String())
		return 0
	case err := <-serverErr:
		log.Error("server stopped unexpectedly", "error", err)
		return 1
	}
}
