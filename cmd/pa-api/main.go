package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	apicontract "github.com/tuanvumaihuynh/product-api/api-contract"
	"github.com/tuanvumaihuynh/product-api/internal/config"
	"github.com/tuanvumaihuynh/product-api/internal/http"
	"github.com/tuanvumaihuynh/product-api/internal/log"
	"github.com/tuanvumaihuynh/product-api/internal/service"
	"github.com/tuanvumaihuynh/product-api/internal/telemetry"
	"github.com/tuanvumaihuynh/product-api/pkg/cmdutil"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running api application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log      config.Log
		HTTP     config.HTTP
		Storage  config.Storage
		Postgres config.Postgres
		Otel     config.Otel
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	cleanupTracer, err := telemetry.InitTracer(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("error initializing tracer: %w", err)
	}
	defer func() {
		if err := cleanupTracer(ctx); err != nil {
			logger.ErrorContext(ctx, "error cleaning up tracer", slog.Any("error", err))
		}
	}()

	st, err := openStore(ctx, cfg.Storage, cfg.Postgres, logger)
	if err != nil {
		return fmt.Errorf("error opening %s store: %w", cfg.Storage.Driver, err)
	}
	defer st.close()

	productService := service.NewProductService(st.productRepo)

	doc, err := apicontract.Load(cfg.HTTP.BasePath)
	if err != nil {
		return fmt.Errorf("error loading api contract: %w", err)
	}

	svc, err := http.New(cfg.HTTP, logger, doc, st.healthChecker, productService)
	if err != nil {
		return fmt.Errorf("error creating http service: %w", err)
	}

	cleanup, err := svc.Run(ctx)
	if err != nil {
		return fmt.Errorf("error running http service: %w", err)
	}
	logger.InfoContext(ctx, "http service started", slog.String("address", fmt.Sprintf(":%d", cfg.HTTP.Port)))

	<-cmdutil.InterruptChan()

	logger.InfoContext(ctx, "http service is shutting down")
	if err := cleanup(ctx); err != nil {
		logger.ErrorContext(ctx, "error shutting down http service", slog.Any("error", err))
	}
	logger.InfoContext(ctx, "http service is stopped")

	return nil
}
