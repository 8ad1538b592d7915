package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/eldrige/Breast-Cancer-Survival-Regression/pkg/artifact"
	"github.com/eldrige/Breast-Cancer-Survival-Regression/pkg/common/config"
	"github.com/eldrige/Breast-Cancer-Survival-Regression/pkg/common/database"
	"github.com/eldrige/Breast-Cancer-Survival-Regression/pkg/common/kafka"
	"github.com/eldrige/Breast-Cancer-Survival-Regression/pkg/common/logger"
	"github.com/eldrige/Breast-Cancer-Survival-Regression/pkg/serving"
	"github.com/eldrige/Breast-Cancer-Survival-Regression/pkg/survival"
)

func main() {
	logger.Init()
	cfg := config.Load()

	bundle, err := artifact.Load(cfg.ArtifactDir)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load model artifacts")
	}
	logger.Log.WithFields(map[string]interface{}{
		"model":    bundle.Metadata.ModelName,
		"features": len(bundle.Metadata.Features),
	}).Info("Model artifacts loaded")

	policy, err := survival.LoadPolicy(cfg.RiskPolicyPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load risk policy")
	}

	pipeline := survival.NewPipeline(bundle, policy)
	validator := survival.NewValidator()

	handler := serving.NewHTTPHandler(pipeline, validator, cfg.MaxRequestBody)

	if cfg.CacheEnabled {
		redisClient := database.GetRedis(cfg)
		handler = handler.WithCache(serving.NewResultCache(redisClient, cfg.PredictionCacheTTL))
	}

	var producer *kafka.Producer
	if cfg.EventsEnabled {
		producer = kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		handler = handler.WithProducer(producer)
	}

	router := mux.NewRouter()
	router.Use(serving.Recovery, serving.Logging, serving.CORS)
	router.Use(serving.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	handler.Register(router)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		logger.Log.WithFields(map[string]interface{}{
			"host": cfg.ServerHost,
			"port": cfg.ServerPort,
		}).Info("Prediction Service started")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down Prediction Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Log.WithError(err).Error("Server forced to shutdown")
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Log.WithError(err).Error("Failed to close event producer")
		}
	}
	if cfg.CacheEnabled {
		if err := database.CloseRedis(); err != nil {
			logger.Log.WithError(err).Error("Failed to close Redis client")
		}
	}

	logger.Log.Info("Prediction Service stopped")
}
