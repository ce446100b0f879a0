package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/agroxeque/ortho-gateway/internal/config"
	"github.com/agroxeque/ortho-gateway/internal/handlers"
	"github.com/agroxeque/ortho-gateway/internal/logging"
	"github.com/agroxeque/ortho-gateway/internal/notify"
	"github.com/agroxeque/ortho-gateway/internal/pipeline"
	"github.com/agroxeque/ortho-gateway/internal/runner"
	"github.com/agroxeque/ortho-gateway/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := logging.New()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx := context.Background()

	// Surface storage credential problems at startup instead of on
	// the first run. Runs re-check presence themselves.
	if cfg.StorageConfigured() {
		if _, err := storage.New(ctx, cfg, logger); err != nil {
			logger.Warn().Err(err).Msg("storage client init failed, runs needing storage will fail")
		}
	} else {
		logger.Warn().Msg("storage credentials not configured, processing runs will fail their precondition check")
	}

	sinks := notify.Fanout{notify.NewWebhookNotifier(cfg.WebhookURL, logger)}

	var amqpConn *amqp.Connection
	if cfg.RabbitMQURL != "" {
		conn, err := amqp.Dial(cfg.RabbitMQURL)
		if err != nil {
			logger.Warn().Err(err).Msg("could not connect to RabbitMQ, status exchange disabled")
		} else {
			amqpConn = conn
			pub, err := notify.NewStatusPublisher(conn, cfg.StatusExchange, logger)
			if err != nil {
				logger.Warn().Err(err).Msg("could not set up status exchange, continuing webhook-only")
			} else {
				sinks = append(sinks, pub)
			}
		}
	}

	processor := pipeline.NewExecProcessor(cfg.PipelineCommand, logger)
	taskRunner := runner.New(cfg, sinks, processor.Process, logger)
	handler := handlers.NewProcessHandler(taskRunner, nil, logger)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), cors.Default())

	engine.POST("/processar", handler.Process)
	engine.GET("/status/:id_projeto", handler.Status)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: engine,
	}

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		logger.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("error during shutdown")
		}
		if amqpConn != nil {
			amqpConn.Close()
		}
	}()

	logger.Info().Int("port", cfg.Port).Msg("orthomosaic gateway listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server failed")
	}
}
