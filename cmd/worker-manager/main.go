package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"document-workers/internal/bootstrap"
	"document-workers/internal/common/aws"
	"document-workers/internal/common/camunda"
	"document-workers/internal/common/config"
	"document-workers/internal/common/logger"
	"document-workers/internal/common/observability"
	gad "document-workers/internal/workers/document/generate-application-document"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "console")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.NewWithOptions(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}).With(zap.String("service", cfg.App.Name), zap.String("version", cfg.App.Version))
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)
	zapLog.Info("Starting worker manager...", zap.String("environment", cfg.App.Environment))

	obs := observability.New(cfg.App.Name, log)
	defer obs.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Zeebe ---
	zeebe, err := camunda.NewClientWithConfig(ctx, camunda.ConfigFrom(cfg.Camunda))
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	defer zeebe.Close()
	zapLog.Info("Zeebe client connected successfully", zap.String("gateway", cfg.Camunda.BrokerAddress))

	// --- Data stores and generator ---
	components, err := bootstrap.NewComponents(ctx, cfg, log)
	if err != nil {
		zapLog.Fatal("document generator wiring failed", zap.Error(err))
	}
	defer components.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Delivery ---
	opts := []gad.Option{gad.WithObservability(obs)}
	deliveryOpts, err := deliveryOptions(ctx, cfg, zapLog)
	if err != nil {
		zapLog.Fatal("aws wiring failed", zap.Error(err))
	}
	opts = append(opts, deliveryOpts...)

	// --- Workers ---
	workers := startWorkers(cfg, []workerFactory{
		{
			taskType: gad.TaskType,
			build: func() camunda.JobHandler {
				return gad.NewHandler(gad.LoadConfig(cfg), components.Generator, log, opts...)
			},
		},
	}, func(taskType string, wcfg config.WorkerConfig, handler camunda.JobHandler) *camunda.Worker {
		return camunda.StartWorker(zeebe.GetClient(), taskType, wcfg, handler, log)
	}, log)
	zapLog.Info("Workers registered", zap.Int("count", len(workers)))

	// --- Health, readiness and metrics ---
	server := newServer(cfg.Server.Port, zeebe, components)
	go func() {
		zapLog.Info("Health server listening", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("health server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	zapLog.Info("Shutdown signal received, stopping workers...")

	for _, w := range workers {
		w.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Warn("health server shutdown", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped")
}

type workerFactory struct {
	taskType string
	build    func() camunda.JobHandler
}

type startFunc func(taskType string, wcfg config.WorkerConfig, handler camunda.JobHandler) *camunda.Worker

// startWorkers builds and starts only the workers enabled in configuration.
func startWorkers(cfg *config.Config, factories []workerFactory, start startFunc, log logger.Logger) []*camunda.Worker {
	var workers []*camunda.Worker
	for _, f := range factories {
		if !config.IsWorkerEnabled(cfg, f.taskType) {
			log.Info("worker disabled, skipping", map[string]interface{}{"taskType": f.taskType})
			continue
		}
		if w := start(f.taskType, config.GetWorkerConfig(cfg, f.taskType), f.build()); w != nil {
			workers = append(workers, w)
		}
	}
	return workers
}

func deliveryOptions(ctx context.Context, cfg *config.Config, zapLog *zap.Logger) ([]gad.Option, error) {
	var opts []gad.Option

	if s3cfg := cfg.Storage.S3; s3cfg.Enabled {
		awsCfg, err := aws.LoadConfig(ctx, s3cfg.Region)
		if err != nil {
			return nil, fmt.Errorf("s3: %w", err)
		}
		opts = append(opts, gad.WithArchive(aws.NewDocumentArchiveFromConfig(awsCfg, s3cfg.Bucket, s3cfg.Prefix)))
		zapLog.Info("document archive enabled", zap.String("bucket", s3cfg.Bucket), zap.String("prefix", s3cfg.Prefix))
	}

	if snscfg := cfg.Notifications.SNS; snscfg.Enabled {
		awsCfg, err := aws.LoadConfig(ctx, snscfg.Region)
		if err != nil {
			return nil, fmt.Errorf("sns: %w", err)
		}
		opts = append(opts, gad.WithPublisher(aws.NewEventPublisherFromConfig(awsCfg, snscfg.TopicARN)))
		zapLog.Info("document events enabled", zap.String("topicArn", snscfg.TopicARN))
	}

	return opts, nil
}

func newServer(port int, zeebe *camunda.Client, components *bootstrap.Components) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/debug/pprof/", http.DefaultServeMux)
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		checks := map[string]string{"zeebe": "ok", "database": "ok"}
		status := http.StatusOK
		if err := zeebe.HealthCheck(ctx); err != nil {
			checks["zeebe"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if err := components.Ready(ctx); err != nil {
			checks["database"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		writeStatus(w, status, checks)
	})

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func writeStatus(w http.ResponseWriter, status int, body map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
