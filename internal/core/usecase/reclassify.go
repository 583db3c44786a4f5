package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/secureai/docshield/internal/core/ports"
)

type ReclassifyUseCase struct {
	repo    ports.ResultRepository
	cache   ports.SourceTextCache
	masking ports.MaskingService
}

func NewReclassifyUseCase(
	repo ports.ResultRepository,
	cache ports.SourceTextCache,
	masking ports.MaskingService,
) *ReclassifyUseCase {
	return &ReclassifyUseCase{
		repo:    repo,
		cache:   cache,
		masking: masking,
	}
}

// ReclassifyByID re-sends a document's cached source text to the masking
// service and replaces the stored markdown and type when the reply parses.
// The cache is volatile: a missing entry (process restart since upload) is a
// logged no-op, not a failure. A reply that falls back again leaves the
// stored row untouched.
func (uc *ReclassifyUseCase) ReclassifyByID(ctx context.Context, documentID string) error {
	result, err := uc.repo.FindByID(ctx, documentID)
	if err != nil {
		return fmt.Errorf("load document result: %w", err)
	}

	text, ok := uc.cache.Get(documentID)
	if !ok {
		slog.Warn("reclassify_source_text_gone", "document_id", documentID)
		return nil
	}

	reply, err := uc.masking.Mask(ctx, text)
	if err != nil {
		return fmt.Errorf("mask document: %w", err)
	}

	classification, parseErr := ParseClassificationResponse(reply)
	if parseErr != nil {
		return fmt.Errorf("reclassify %s: %w", documentID, parseErr)
	}

	result.Type = classification.Type
	result.MaskedMarkdown = classification.Markdown
	result.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Save(ctx, result); err != nil {
		return fmt.Errorf("persist reclassified result: %w", err)
	}
	return nil
}
