package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"smarterstarts-be/internal/bootstrap"
	"smarterstarts-be/internal/config"
	"smarterstarts-be/internal/pkg/logger"
	"smarterstarts-be/internal/server"
	"smarterstarts-be/internal/tracer"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	// 2. Initialize Tracer
	shutdownTracer := tracer.InitTracer(sysLogger)

	// 3. Bootstrap Dependencies (Container)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	container := bootstrap.NewContainer(ctx, cfg, sysLogger)

	// 4. Run Server
	srv := server.New(cfg, container)
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Run()
	}()

	select {
	case err := <-serverErr:
		sysLogger.Error(logger.ModuleHTTP, "Server stopped", map[string]interface{}{"error": err.Error()})
	case <-ctx.Done():
		sysLogger.Info(logger.ModuleBootstrap, "Shutdown signal received", nil)
	}

	// 5. Drain: stop taking requests, then let queued fan-outs finish.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Dispatch.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		sysLogger.Warn(logger.ModuleHTTP, "HTTP shutdown incomplete", map[string]interface{}{"error": err.Error()})
	}
	if err := container.Shutdown(shutdownCtx); err != nil {
		sysLogger.Warn(logger.ModuleDispatch, "Dispatch shutdown incomplete", map[string]interface{}{"error": err.Error()})
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		sysLogger.Warn(logger.ModuleBootstrap, "Tracer shutdown failed", map[string]interface{}{"error": err.Error()})
	}
}
