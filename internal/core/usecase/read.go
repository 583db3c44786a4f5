package usecase

import (
	"context"
	"fmt"

	"github.com/secureai/docshield/internal/core/domain"
	"github.com/secureai/docshield/internal/core/ports"
)

type ReadDocumentsUseCase struct {
	repo ports.ResultRepository
	refs ports.ReferenceLibrary
}

func NewReadDocumentsUseCase(repo ports.ResultRepository, refs ports.ReferenceLibrary) *ReadDocumentsUseCase {
	return &ReadDocumentsUseCase{repo: repo, refs: refs}
}

func (uc *ReadDocumentsUseCase) Result(ctx context.Context, documentID string) (*domain.DocumentResult, error) {
	result, err := uc.repo.FindByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("load document result: %w", err)
	}
	return result, nil
}

// ListByType projects all stored results with an exactly matching type down
// to {id, filename} pairs. Untyped documents never match.
func (uc *ReadDocumentsUseCase) ListByType(ctx context.Context, docType domain.DocumentType) ([]domain.DocumentSummary, error) {
	results, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list document results: %w", err)
	}

	summaries := make([]domain.DocumentSummary, 0, len(results))
	for _, result := range results {
		if result.Type != docType {
			continue
		}
		summaries = append(summaries, domain.DocumentSummary{
			ID:       result.ID,
			Filename: result.Filename,
		})
	}
	return summaries, nil
}

// Example returns the reference material for a document type; missing
// reference files degrade to empty content inside the library.
func (uc *ReadDocumentsUseCase) Example(_ context.Context, docType domain.DocumentType) (string, error) {
	return uc.refs.ReferenceText(docType), nil
}
