package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/light-bringer/promo-engine/internal/pkg/config"
	"github.com/light-bringer/promo-engine/internal/pkg/logger"
	"github.com/light-bringer/promo-engine/internal/services"
)

const serviceName = "promo-engine"

func main() {
	log := logger.New(logger.Options{ServiceName: serviceName})

	if err := godotenv.Load(); err != nil {
		log.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	log = logger.New(logger.Options{
		ServiceName: serviceName,
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, log); err != nil {
		log.Error(context.Background(), "server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx = log.WithFields(ctx, map[string]any{
		"env":       cfg.App.Env,
		"database":  cfg.Spanner.Database(),
		"http_port": cfg.App.HTTPPort,
		"grpc_port": cfg.App.GRPCPort,
	})
	log.Info(ctx, "starting promotion service")

	// 1. Initialize service dependencies (DI container)
	serviceOpts, err := services.NewServiceOptions(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	// 2. Create gRPC server with health checks and reflection
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", ":"+cfg.App.GRPCPort)
	if err != nil {
		return fmt.Errorf("failed to listen on gRPC port: %w", err)
	}

	// 3. Create HTTP server
	httpServer := &http.Server{
		Addr:              ":" + cfg.App.HTTPPort,
		Handler:           serviceOpts.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)

	go func() {
		log.Info(ctx, "grpc server listening")
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()

	go func() {
		log.Info(ctx, "http server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	// 4. Graceful shutdown handling
	var runErr error
	select {
	case <-ctx.Done():
		log.Info(ctx, "shutting down gracefully")
	case runErr = <-errCh:
	}

	healthServer.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "http server shutdown error", err)
	}
	grpcServer.GracefulStop()

	return runErr
}
