package usecase

import (
	"context"
	"testing"

	"github.com/secureai/docshield/internal/core/domain"
)

func TestListByTypeFiltersExactMatches(t *testing.T) {
	repo := newFakeRepo()
	repo.all = []domain.DocumentResult{
		{ID: "a", Type: domain.TypeHRInfo, Filename: "a.pdf"},
		{ID: "b", Type: domain.TypeTechInfo, Filename: "b.docx"},
		{ID: "c", Type: "", Filename: "c.txt"},
		{ID: "d", Type: domain.TypeHRInfo, Filename: "d.xlsx"},
	}
	uc := NewReadDocumentsUseCase(repo, &fakeRefs{})

	summaries, err := uc.ListByType(context.Background(), domain.TypeHRInfo)
	if err != nil {
		t.Fatalf("ListByType() error = %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	if summaries[0].ID != "a" || summaries[1].ID != "d" {
		t.Fatalf("expected store order preserved, got %v", summaries)
	}
	if summaries[0].Filename != "a.pdf" {
		t.Fatalf("expected filename projected, got %q", summaries[0].Filename)
	}
}

func TestListByTypeNoMatchesReturnsEmptySlice(t *testing.T) {
	repo := newFakeRepo()
	repo.all = []domain.DocumentResult{{ID: "c", Type: "", Filename: "c.txt"}}
	uc := NewReadDocumentsUseCase(repo, &fakeRefs{})

	summaries, err := uc.ListByType(context.Background(), domain.TypePublicInfo)
	if err != nil {
		t.Fatalf("ListByType() error = %v", err)
	}
	if summaries == nil || len(summaries) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", summaries)
	}
}

func TestResultUnknownDocument(t *testing.T) {
	uc := NewReadDocumentsUseCase(newFakeRepo(), &fakeRefs{})

	_, err := uc.Result(context.Background(), "missing")
	if !domain.IsKind(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestExampleReturnsReferenceText(t *testing.T) {
	refs := &fakeRefs{texts: map[domain.DocumentType]string{domain.TypeTechInfo: "spec template"}}
	uc := NewReadDocumentsUseCase(newFakeRepo(), refs)

	content, err := uc.Example(context.Background(), domain.TypeTechInfo)
	if err != nil {
		t.Fatalf("Example() error = %v", err)
	}
	if content != "spec template" {
		t.Fatalf("expected reference text, got %q", content)
	}
}
