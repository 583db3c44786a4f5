package ports

import (
	"context"
	"io"

	"github.com/secureai/docshield/internal/core/domain"
)

// ResultRepository persists document results. Save has insert-or-replace
// full-row semantics; read-modify-write correctness is the caller's job.
type ResultRepository interface {
	Save(ctx context.Context, result *domain.DocumentResult) error
	FindByID(ctx context.Context, id string) (*domain.DocumentResult, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	FindAll(ctx context.Context) ([]domain.DocumentResult, error)
}

// SourceTextCache holds originally extracted text for the process lifetime.
// Get never fails for a missing key; the second return reports presence.
type SourceTextCache interface {
	Save(id, text string)
	Get(id string) (string, bool)
}

// TextExtractor converts an uploaded file into plain text, dispatching on
// the declared filename suffix.
type TextExtractor interface {
	Extract(ctx context.Context, filename string, body io.Reader) (string, error)
}

// MaskingService sends extracted text to the external masking/classification
// service and returns its raw reply body.
type MaskingService interface {
	Mask(ctx context.Context, content string) (string, error)
}

// LLMService performs one two-turn exchange against the external model and
// returns the raw JSON envelope for the caller to parse.
type LLMService interface {
	GenerateContent(ctx context.Context, systemPrompt, userPrompt string) ([]byte, error)
}

// ReferenceLibrary maps a document type to its static reference material.
// Lookups degrade to empty text on missing or unreadable files.
type ReferenceLibrary interface {
	ReferenceText(docType domain.DocumentType) string
	PromptFrame(docType domain.DocumentType) string
}

// ReclassifyQueue publishes/consumes reclassification requests.
type ReclassifyQueue interface {
	PublishReclassify(ctx context.Context, documentID string) error
	SubscribeReclassify(ctx context.Context, handler func(context.Context, string) error) error
}
