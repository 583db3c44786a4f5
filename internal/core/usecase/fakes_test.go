package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/secureai/docshield/internal/core/domain"
)

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) Extract(_ context.Context, _ string, _ io.Reader) (string, error) {
	return f.text, f.err
}

type fakeMasking struct {
	reply string
	err   error
	calls int
}

func (f *fakeMasking) Mask(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.reply, f.err
}

type fakeRepo struct {
	saved   []*domain.DocumentResult
	byID    map[string]*domain.DocumentResult
	all     []domain.DocumentResult
	saveErr error
	findErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]*domain.DocumentResult{}}
}

func (f *fakeRepo) Save(_ context.Context, result *domain.DocumentResult) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	saved := *result
	f.saved = append(f.saved, &saved)
	f.byID[result.ID] = &saved
	return nil
}

func (f *fakeRepo) FindByID(_ context.Context, id string) (*domain.DocumentResult, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	result, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("find document result: %w", domain.ErrDocumentNotFound)
	}
	copied := *result
	return &copied, nil
}

func (f *fakeRepo) ExistsByID(_ context.Context, id string) (bool, error) {
	_, ok := f.byID[id]
	return ok, nil
}

func (f *fakeRepo) FindAll(_ context.Context) ([]domain.DocumentResult, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.all, nil
}

type fakeCache struct {
	entries map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]string{}}
}

func (f *fakeCache) Save(id, text string) {
	f.entries[id] = text
}

func (f *fakeCache) Get(id string) (string, bool) {
	text, ok := f.entries[id]
	return text, ok
}

type fakeQueue struct {
	published []string
	err       error
}

func (f *fakeQueue) PublishReclassify(_ context.Context, documentID string) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, documentID)
	return nil
}

func (f *fakeQueue) SubscribeReclassify(_ context.Context, _ func(context.Context, string) error) error {
	return nil
}

type fakeLLM struct {
	envelope []byte
	err      error
	lastSys  string
	lastUser string
}

func (f *fakeLLM) GenerateContent(_ context.Context, systemPrompt, userPrompt string) ([]byte, error) {
	f.lastSys = systemPrompt
	f.lastUser = userPrompt
	return f.envelope, f.err
}

type fakeRefs struct {
	texts  map[domain.DocumentType]string
	frames map[domain.DocumentType]string
}

func (f *fakeRefs) ReferenceText(docType domain.DocumentType) string {
	return f.texts[docType]
}

func (f *fakeRefs) PromptFrame(docType domain.DocumentType) string {
	return f.frames[docType]
}
