package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	httpadapter "github.com/secureai/docshield/internal/adapters/http"
	"github.com/secureai/docshield/internal/config"
	"github.com/secureai/docshield/internal/core/usecase"
	"github.com/secureai/docshield/internal/infrastructure/cache/memory"
	"github.com/secureai/docshield/internal/infrastructure/extractor"
	"github.com/secureai/docshield/internal/infrastructure/llm/gemini"
	"github.com/secureai/docshield/internal/infrastructure/masking"
	natsqueue "github.com/secureai/docshield/internal/infrastructure/queue/nats"
	"github.com/secureai/docshield/internal/infrastructure/reference"
	"github.com/secureai/docshield/internal/infrastructure/repository/postgres"
	"github.com/secureai/docshield/internal/infrastructure/resilience"
	"github.com/secureai/docshield/internal/observability/metrics"
)

// App holds every wired component of the service. Construct with New,
// release with Close.
type App struct {
	Config config.Config

	Router      *httpadapter.Router
	HTTPMetrics *metrics.HTTPServerMetrics

	Upload     *usecase.UploadDocumentUseCase
	Converse   *usecase.ConverseUseCase
	Read       *usecase.ReadDocumentsUseCase
	Reclassify *usecase.ReclassifyUseCase

	Queue *natsqueue.Queue

	db *sql.DB
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: open postgres: %w", err)
	}

	repo := postgres.NewResultRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrap: ensure schema: %w", err)
	}

	refs, err := reference.Load(cfg.ReferenceDir, cfg.ReferenceManifest)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrap: load reference library: %w", err)
	}

	policy := resilience.DefaultPolicy()
	policy.MaxAttempts = cfg.RetryMaxAttempts
	policy.BreakerEnabled = cfg.BreakerEnabled
	executor := resilience.NewExecutor(policy)

	queue, err := natsqueue.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, natsqueue.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrap: connect nats: %w", err)
	}

	cache := memory.New()
	maskClient := masking.New(cfg.MaskingURL, executor)
	llmClient := gemini.New(cfg.GeminiBaseURL, cfg.GeminiModel, cfg.GeminiAPIKey, executor)

	upload := usecase.NewUploadDocumentUseCase(extractor.New(), maskClient, repo, cache, queue)
	converse := usecase.NewConverseUseCase(repo, llmClient, refs)
	read := usecase.NewReadDocumentsUseCase(repo, refs)
	reclassify := usecase.NewReclassifyUseCase(repo, cache, maskClient)

	httpMetrics := metrics.NewHTTPServerMetrics("api")
	router := httpadapter.NewRouter(cfg, upload, converse, read, reclassify, httpMetrics)

	return &App{
		Config:      cfg,
		Router:      router,
		HTTPMetrics: httpMetrics,
		Upload:      upload,
		Converse:    converse,
		Read:        read,
		Reclassify:  reclassify,
		Queue:       queue,
		db:          db,
	}, nil
}

func (a *App) Close() {
	if a.Queue != nil {
		a.Queue.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}
