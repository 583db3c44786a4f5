package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/secureai/docshield/internal/core/domain"
	"github.com/secureai/docshield/internal/core/ports"
)

type UploadDocumentUseCase struct {
	extractor ports.TextExtractor
	masking   ports.MaskingService
	repo      ports.ResultRepository
	cache     ports.SourceTextCache
	queue     ports.ReclassifyQueue
}

func NewUploadDocumentUseCase(
	extractor ports.TextExtractor,
	masking ports.MaskingService,
	repo ports.ResultRepository,
	cache ports.SourceTextCache,
	queue ports.ReclassifyQueue,
) *UploadDocumentUseCase {
	return &UploadDocumentUseCase{
		extractor: extractor,
		masking:   masking,
		repo:      repo,
		cache:     cache,
		queue:     queue,
	}
}

// Upload runs the ingestion saga: extract text, mask it, parse the
// classification, persist the result, cache the source text. Extraction and
// masking failures abort before any identifier is minted. A classification
// parse fallback does not abort: the document is persisted untyped so
// operators can still find it, and a reclassification request is queued.
func (uc *UploadDocumentUseCase) Upload(
	ctx context.Context,
	filename string,
	body io.Reader,
) (*domain.DocumentResult, error) {
	text, err := uc.extractor.Extract(ctx, filename, body)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}

	reply, err := uc.masking.Mask(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("mask document: %w", err)
	}

	classification, parseErr := ParseClassificationResponse(reply)
	if parseErr != nil {
		slog.Warn("classification_parse_fallback",
			"filename", filename,
			"error", parseErr,
		)
	}

	id := uuid.NewString()
	now := time.Now().UTC()
	result := &domain.DocumentResult{
		ID:             id,
		Type:           classification.Type,
		MaskedMarkdown: classification.Markdown,
		Filename:       filename,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.repo.Save(ctx, result); err != nil {
		return nil, fmt.Errorf("persist document result: %w", err)
	}

	// Independent write; the store row above survives even if caching or
	// queueing fails past this point.
	uc.cache.Save(id, text)

	if parseErr != nil && uc.queue != nil {
		if err := uc.queue.PublishReclassify(ctx, id); err != nil {
			slog.Warn("reclassify_publish_failed", "document_id", id, "error", err)
		}
	}

	return result, nil
}
