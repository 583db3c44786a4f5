package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/secureai/docshield/internal/bootstrap"
	"github.com/secureai/docshield/internal/config"
	"github.com/secureai/docshield/internal/observability/logging"
	"github.com/secureai/docshield/internal/observability/metrics"
)

func main() {
	cfg := config.Load()
	slog.SetDefault(logging.NewJSONLogger("docshield", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics("reclassify")
	go runReclassifyConsumer(ctx, app, workerMetrics)
	go runWorkerMetricsServer(ctx, cfg, workerMetrics)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      app.Router.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("api_listening", "port", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("api server error: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("api_shutdown_error", "error", err)
	}
}

// The reclassify consumer runs inside the api process: the source-text
// cache is in-memory, so only this process can re-mask an upload.
func runReclassifyConsumer(ctx context.Context, app *bootstrap.App, m *metrics.WorkerMetrics) {
	slog.Info("reclassify_consumer_started", "subject", app.Config.NATSSubject)
	err := app.Queue.SubscribeReclassify(ctx, func(handlerCtx context.Context, documentID string) error {
		processCtx, cancel := context.WithTimeout(handlerCtx, 5*time.Minute)
		defer cancel()

		m.StartReclassify()
		start := time.Now()
		err := app.Reclassify.ReclassifyByID(processCtx, documentID)
		m.FinishReclassify("reclassify", time.Since(start), err)
		if err != nil {
			slog.Warn("reclassify_failed", "document_id", documentID, "error", err)
		}
		return err
	})
	if err != nil && ctx.Err() == nil {
		slog.Error("reclassify_consumer_error", "error", err)
	}
}

func runWorkerMetricsServer(ctx context.Context, cfg config.Config, m *metrics.WorkerMetrics) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	server := &http.Server{
		Addr:        ":" + cfg.WorkerMetricsPort,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	slog.Info("worker_metrics_listening", "port", cfg.WorkerMetricsPort)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("worker_metrics_server_error", "error", err)
	}
}
