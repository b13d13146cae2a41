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

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tourist-guide/internal/api"
	"tourist-guide/internal/app"
	"tourist-guide/internal/common/camunda"
	"tourist-guide/internal/common/config"
	"tourist-guide/internal/common/logger"
	"tourist-guide/internal/common/observability"

	aq "tourist-guide/internal/workers/tourism/answer-query"
	pq "tourist-guide/internal/workers/tourism/parse-query"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting tourist guide",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	guide, err := app.New(cfg, log)
	if err != nil {
		zapLog.Fatal("pipeline setup failed", zap.Error(err))
	}
	defer guide.Close()

	// --- Shared cache ---
	if cfg.Cache.Backend == config.CacheBackendRedis {
		err = retryWithBackoff(func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return guide.PingCache(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		zapLog.Info("Redis connected successfully", zap.String("redis", cfg.Cache.Redis.RedisURL()))
	}

	checks := map[string]api.ReadinessCheck{"cache": guide.PingCache}

	// --- Zeebe workers ---
	var zeebeClient zbc.Client
	var jobWorkers []worker.JobWorker
	if cfg.Camunda.Enabled {
		zeebeClient, err = camunda.Connect(context.Background(), camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			RequestTimeout:         config.GetDuration(cfg.Camunda.RequestTimeout),
		}, log)
		if err != nil {
			zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
		}
		checks["zeebe"] = func(ctx context.Context) error {
			return camunda.HealthCheck(ctx, zeebeClient, config.GetDuration(cfg.Camunda.RequestTimeout))
		}

		answerCfg := aq.LoadConfig()
		answerCfg.Timeout = config.GetDuration(config.GetWorkerConfig(cfg, aq.TaskType).Timeout)
		answerHandler := aq.NewHandler(answerCfg, guide.Orchestrator, obs, log)

		parseCfg := pq.LoadConfig()
		parseCfg.Timeout = config.GetDuration(config.GetWorkerConfig(cfg, pq.TaskType).Timeout)
		parseHandler := pq.NewHandler(parseCfg, guide.Parser, log)

		for taskType, handler := range map[string]camunda.JobHandler{
			aq.TaskType: answerHandler,
			pq.TaskType: parseHandler,
		} {
			if w := camunda.StartWorker(zeebeClient, taskType, config.GetWorkerConfig(cfg, taskType), handler, log); w != nil {
				jobWorkers = append(jobWorkers, w)
			}
		}
		zapLog.Info("Zeebe workers registered", zap.Int("workers", len(jobWorkers)))
	}

	// --- HTTP API, probes & metrics ---
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	handler := api.NewHandler(guide.Orchestrator, guide.Parser, obs, config.GetDuration(cfg.Server.RequestTimeout), log)
	server := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           api.NewRouter(handler, checks, log),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout:      config.GetDuration(cfg.Server.WriteTimeout),
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("HTTP server shutdown error", zap.Error(err))
	}

	for _, w := range jobWorkers {
		w.Close()
		w.AwaitClose()
	}
	if zeebeClient != nil {
		if err := zeebeClient.Close(); err != nil {
			zapLog.Error("Error closing Zeebe client", zap.Error(err))
		}
	}

	zapLog.Info("Tourist guide stopped gracefully")
}
