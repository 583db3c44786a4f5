package usecase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/secureai/docshield/internal/core/domain"
)

// ClassificationFallbackMarkdown is persisted in place of the masked markdown
// when the masking service reply could not be decoded.
const ClassificationFallbackMarkdown = "Error parsing masking response"

type maskingReply struct {
	Markdown     *string `json:"markdown"`
	DocumentType *string `json:"documentType"`
}

// ParseClassificationResponse decodes the masking service reply into a
// ClassificationResponse. Decoding is all-or-nothing: on malformed JSON,
// missing fields, or an unknown document type the fallback response is
// returned together with a non-nil diagnostic, never an unusable value.
func ParseClassificationResponse(raw string) (domain.ClassificationResponse, error) {
	fallback := domain.ClassificationResponse{Markdown: ClassificationFallbackMarkdown}

	var reply maskingReply
	decoder := json.NewDecoder(bytes.NewReader([]byte(raw)))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&reply); err != nil {
		return fallback, fmt.Errorf("decode masking reply: %w", err)
	}
	if _, err := decoder.Token(); err != io.EOF {
		return fallback, fmt.Errorf("masking reply carries trailing data after json object")
	}
	if reply.Markdown == nil {
		return fallback, fmt.Errorf("masking reply missing markdown field")
	}
	if reply.DocumentType == nil {
		return fallback, fmt.Errorf("masking reply missing documentType field")
	}

	docType, ok := domain.ParseDocumentType(*reply.DocumentType)
	if !ok {
		return fallback, fmt.Errorf("masking reply carries unknown document type %q", *reply.DocumentType)
	}

	return domain.ClassificationResponse{
		Markdown: *reply.Markdown,
		Type:     docType,
	}, nil
}
