package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexai/greeting-cards/config"
	"github.com/alexai/greeting-cards/internal/controller/restapi"
	"github.com/alexai/greeting-cards/internal/controller/worker/sweeper"
	"github.com/alexai/greeting-cards/internal/infrastructure/processor"
	"github.com/alexai/greeting-cards/internal/infrastructure/replicate"
	"github.com/alexai/greeting-cards/internal/repo/persistent"
	"github.com/alexai/greeting-cards/internal/usecase/card"
	"github.com/alexai/greeting-cards/pkg/httpserver"
	"github.com/alexai/greeting-cards/pkg/logger"
	"github.com/alexai/greeting-cards/pkg/s3client"
)

func Run(cfg *config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Logger
	l := logger.New(cfg.Log.Level)

	// Repository

	// s3
	s3Ctx, s3Cancel := context.WithTimeout(ctx, cfg.S3.CfgLoadTimeout)
	defer s3Cancel()
	s3c, err := s3client.New(s3Ctx, cfg.S3.Endpoint, cfg.S3.AccessKey, cfg.S3.SecretKey,
		s3client.Region(cfg.S3.Region),
		s3client.UsePathStyle(cfg.S3.UsePathStyle),
	)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - s3client.New: %w", err))
	}

	artifactRepo := persistent.NewArtifactRepo(s3c, cfg.S3.Bucket)

	// Infrastructure

	// generation backend
	generator := replicate.New(
		cfg.Replicate.BaseURL,
		cfg.Replicate.APIToken,
		cfg.Replicate.Model,
		cfg.Replicate.GenerateTimeout,
		cfg.Replicate.PollInterval,
	)

	// watermarker
	watermarker := processor.New(l)

	// Use-Case
	cardUseCase := card.New(artifactRepo, generator, watermarker, l, cfg.App.BaseURL, cfg.S3.PublicURL)

	// Orphan Sweeper Worker
	var sweeperWorker *sweeper.Sweeper
	if cfg.Sweeper.Enabled {
		sweeperWorker = sweeper.New(artifactRepo, l, cfg.Sweeper.Interval, cfg.Sweeper.GracePeriod)
	}

	// HTTP Server
	httpServer := httpserver.New(l, httpserver.Port(cfg.HTTP.Port), httpserver.Prefork(cfg.HTTP.UsePreforkMode))
	restapi.NewRouter(httpServer.App, cfg, cardUseCase, l)

	// Start Components
	if sweeperWorker != nil {
		err = sweeperWorker.Start(ctx)
		if err != nil {
			l.Fatal(fmt.Errorf("app - Run - sweeperWorker.Start: %w", err))
		}
	}
	httpServer.Start()

	// Waiting Signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		l.Info("app - Run - signal: %s", s.String())
	case err = <-httpServer.Notify():
		l.Error(fmt.Errorf("app - Run - httpServer.Notify: %w", err))
	}

	// Shutdown
	err = httpServer.Shutdown()
	if err != nil {
		l.Error(fmt.Errorf("app - Run - httpServer.Shutdown: %w", err))
	}

	if sweeperWorker != nil {
		swShutdownCtx, swShutdownCancel := context.WithTimeout(ctx, cfg.Sweeper.ShutdownTimeout)
		defer swShutdownCancel()
		err = sweeperWorker.Shutdown(swShutdownCtx)
		if err != nil {
			l.Error(fmt.Errorf("app - Run - sweeperWorker.Shutdown: %w", err))
		}
	}
}
