package ports

import (
	"context"
	"io"

	"github.com/secureai/docshield/internal/core/domain"
)

// DocumentUploader is the inbound contract for document upload orchestration.
type DocumentUploader interface {
	Upload(ctx context.Context, filename string, body io.Reader) (*domain.DocumentResult, error)
}

// DocumentConversation is the inbound contract for question answering and
// structured report generation over a masked document.
type DocumentConversation interface {
	Ask(ctx context.Context, documentID, question string) (string, error)
	Report(ctx context.Context, documentID string) (domain.Report, error)
}

// DocumentReader is the inbound read model for stored results.
type DocumentReader interface {
	Result(ctx context.Context, documentID string) (*domain.DocumentResult, error)
	ListByType(ctx context.Context, docType domain.DocumentType) ([]domain.DocumentSummary, error)
	Example(ctx context.Context, docType domain.DocumentType) (string, error)
}

// DocumentReclassifier re-runs masking for a document whose classification
// fell back at upload time, using the cached source text.
type DocumentReclassifier interface {
	ReclassifyByID(ctx context.Context, documentID string) error
}
