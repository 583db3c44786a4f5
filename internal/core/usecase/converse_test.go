package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/secureai/docshield/internal/core/domain"
)

func storedResult(id string, docType domain.DocumentType) *domain.DocumentResult {
	now := time.Now().UTC().Add(-time.Hour)
	return &domain.DocumentResult{
		ID:             id,
		Type:           docType,
		MaskedMarkdown: "# Masked body",
		Filename:       "doc.pdf",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func llmEnvelope(text string) []byte {
	return []byte(`{"candidates":[{"content":{"parts":[{"text":"` + text + `"}]}}]}`)
}

func TestAskUnknownDocumentFailsWithoutSaving(t *testing.T) {
	repo := newFakeRepo()
	uc := NewConverseUseCase(repo, &fakeLLM{}, &fakeRefs{})

	_, err := uc.Ask(context.Background(), "missing", "what is this?")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
	if len(repo.saved) != 0 {
		t.Fatalf("unknown id must not write anything")
	}
}

func TestAskPersistsAnswerAndPreservesOtherFields(t *testing.T) {
	repo := newFakeRepo()
	original := storedResult("doc-1", domain.TypeTechInfo)
	repo.byID["doc-1"] = original
	llm := &fakeLLM{envelope: llmEnvelope("the answer")}
	uc := NewConverseUseCase(repo, llm, &fakeRefs{})

	answer, err := uc.Ask(context.Background(), "doc-1", "what is this?")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if answer != "the answer" {
		t.Fatalf("expected answer, got %q", answer)
	}
	if len(repo.saved) != 1 {
		t.Fatalf("expected one save, got %d", len(repo.saved))
	}
	saved := repo.saved[0]
	if saved.AnswerMarkdown != "the answer" {
		t.Fatalf("expected answer persisted, got %q", saved.AnswerMarkdown)
	}
	if saved.MaskedMarkdown != original.MaskedMarkdown || saved.Type != original.Type {
		t.Fatalf("ask must overwrite only the answer")
	}
	if !saved.UpdatedAt.After(original.CreatedAt) {
		t.Fatalf("expected updated_at advanced")
	}
}

func TestAskOverwritesPreviousAnswer(t *testing.T) {
	repo := newFakeRepo()
	previous := storedResult("doc-1", domain.TypeTechInfo)
	previous.AnswerMarkdown = "old answer"
	repo.byID["doc-1"] = previous
	uc := NewConverseUseCase(repo, &fakeLLM{envelope: llmEnvelope("new answer")}, &fakeRefs{})

	answer, err := uc.Ask(context.Background(), "doc-1", "again?")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if answer != "new answer" {
		t.Fatalf("expected new answer, got %q", answer)
	}
	if repo.saved[0].AnswerMarkdown != "new answer" {
		t.Fatalf("expected previous answer replaced, got %q", repo.saved[0].AnswerMarkdown)
	}
}

func TestAskLLMFailureDegradesIntoPersistedAnswer(t *testing.T) {
	repo := newFakeRepo()
	repo.byID["doc-1"] = storedResult("doc-1", domain.TypeHRInfo)
	uc := NewConverseUseCase(repo, &fakeLLM{err: errors.New("model unavailable")}, &fakeRefs{})

	answer, err := uc.Ask(context.Background(), "doc-1", "anything?")
	if err != nil {
		t.Fatalf("llm failure must degrade, not fail: %v", err)
	}
	if !strings.HasPrefix(answer, DegradedAnswerPrefix) {
		t.Fatalf("expected degraded answer prefix, got %q", answer)
	}
	if len(repo.saved) != 1 || repo.saved[0].AnswerMarkdown != answer {
		t.Fatalf("degraded answer must be persisted like any other")
	}
}

func TestAskMalformedEnvelopeDegrades(t *testing.T) {
	repo := newFakeRepo()
	repo.byID["doc-1"] = storedResult("doc-1", domain.TypeHRInfo)
	uc := NewConverseUseCase(repo, &fakeLLM{envelope: []byte(`{"candidates":[]}`)}, &fakeRefs{})

	answer, err := uc.Ask(context.Background(), "doc-1", "anything?")
	if err != nil {
		t.Fatalf("malformed reply must degrade, not fail: %v", err)
	}
	if !strings.HasPrefix(answer, DegradedAnswerPrefix) {
		t.Fatalf("expected degraded answer prefix, got %q", answer)
	}
}

func TestAskUsesReferenceMaterialForClassifiedDocuments(t *testing.T) {
	repo := newFakeRepo()
	repo.byID["doc-1"] = storedResult("doc-1", domain.TypeBusinessInfo)
	llm := &fakeLLM{envelope: llmEnvelope("ok")}
	refs := &fakeRefs{
		texts:  map[domain.DocumentType]string{domain.TypeBusinessInfo: "reference body"},
		frames: map[domain.DocumentType]string{domain.TypeBusinessInfo: "You review business documents."},
	}
	uc := NewConverseUseCase(repo, llm, refs)

	if _, err := uc.Ask(context.Background(), "doc-1", "q"); err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if !strings.Contains(llm.lastSys, "reference body") {
		t.Fatalf("expected reference text in system prompt")
	}
	if !strings.Contains(llm.lastSys, "You review business documents.") {
		t.Fatalf("expected prompt frame in system prompt")
	}
}

func TestAskUntypedDocumentSkipsReferenceLookup(t *testing.T) {
	repo := newFakeRepo()
	repo.byID["doc-1"] = storedResult("doc-1", "")
	llm := &fakeLLM{envelope: llmEnvelope("ok")}
	refs := &fakeRefs{texts: map[domain.DocumentType]string{"": "must not appear"}}
	uc := NewConverseUseCase(repo, llm, refs)

	if _, err := uc.Ask(context.Background(), "doc-1", "q"); err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if strings.Contains(llm.lastSys, "must not appear") {
		t.Fatalf("untyped document must not pull reference material")
	}
}

func TestReportSuccess(t *testing.T) {
	repo := newFakeRepo()
	repo.byID["doc-1"] = storedResult("doc-1", domain.TypeTechInfo)
	envelope := []byte(`{"candidates":[{"content":{"parts":[{"text":"{\"summary\":\"S\",\"risks\":[\"r\"],\"recommendations\":[]}"}]}}]}`)
	uc := NewConverseUseCase(repo, &fakeLLM{envelope: envelope}, &fakeRefs{})

	report, err := uc.Report(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if report.Summary != "S" {
		t.Fatalf("expected summary S, got %q", report.Summary)
	}
	if len(report.Risks) != 1 || report.Risks[0] != "r" {
		t.Fatalf("expected risks [r], got %v", report.Risks)
	}
	if len(repo.saved) != 0 {
		t.Fatalf("report generation must not persist anything")
	}
}

func TestReportLLMFailureDegrades(t *testing.T) {
	repo := newFakeRepo()
	repo.byID["doc-1"] = storedResult("doc-1", domain.TypeTechInfo)
	uc := NewConverseUseCase(repo, &fakeLLM{err: errors.New("model down")}, &fakeRefs{})

	report, err := uc.Report(context.Background(), "doc-1")
	if err != nil {
		t.Fatalf("llm failure must degrade, not fail: %v", err)
	}
	if report.Summary != ReportFallbackSummary {
		t.Fatalf("expected fallback summary, got %q", report.Summary)
	}
	if _, ok := report.Extra["error"]; !ok {
		t.Fatalf("expected error entry in extra")
	}
}

func TestReportUnknownDocumentFails(t *testing.T) {
	uc := NewConverseUseCase(newFakeRepo(), &fakeLLM{}, &fakeRefs{})

	_, err := uc.Report(context.Background(), "missing")
	if !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}
