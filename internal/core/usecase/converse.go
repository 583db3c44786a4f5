package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/secureai/docshield/internal/core/domain"
	"github.com/secureai/docshield/internal/core/ports"
)

// DegradedAnswerPrefix marks answers produced when the model call or its
// reply parsing failed; the failure description follows the prefix.
const DegradedAnswerPrefix = "AI request failed: "

type ConverseUseCase struct {
	repo ports.ResultRepository
	llm  ports.LLMService
	refs ports.ReferenceLibrary
}

func NewConverseUseCase(
	repo ports.ResultRepository,
	llm ports.LLMService,
	refs ports.ReferenceLibrary,
) *ConverseUseCase {
	return &ConverseUseCase{
		repo: repo,
		llm:  llm,
		refs: refs,
	}
}

// Ask answers one independent question over a stored masked document. An
// unknown identifier is a hard failure; a model call or envelope parse
// failure degrades into an error-describing answer instead, which is
// persisted and returned like any other. Concurrent asks for the same
// identifier race on the store's last-save-wins semantics; there is no
// per-document lock.
func (uc *ConverseUseCase) Ask(ctx context.Context, documentID, question string) (string, error) {
	result, err := uc.loadResult(ctx, documentID)
	if err != nil {
		return "", err
	}

	answer := uc.generateAnswer(ctx, result, question)

	result.AnswerMarkdown = answer
	result.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Save(ctx, result); err != nil {
		return "", fmt.Errorf("persist answer: %w", err)
	}

	return answer, nil
}

// Report generates the structured report decomposition for a stored
// document. Nothing is persisted; report parsing is fail-soft and the
// returned report is always usable.
func (uc *ConverseUseCase) Report(ctx context.Context, documentID string) (domain.Report, error) {
	result, err := uc.loadResult(ctx, documentID)
	if err != nil {
		return domain.Report{}, err
	}

	systemPrompt := uc.systemPromptFor(result)
	envelope, err := uc.llm.GenerateContent(ctx, systemPrompt, buildReportPrompt(result.MaskedMarkdown))
	if err != nil {
		return degradedReport(err), nil
	}

	text, err := ExtractCandidateText(envelope)
	if err != nil {
		return degradedReport(err), nil
	}

	report, parseErr := ParseReport(text)
	if parseErr != nil {
		slog.Warn("report_parse_fallback", "document_id", documentID, "error", parseErr)
	}
	return report, nil
}

func (uc *ConverseUseCase) loadResult(ctx context.Context, documentID string) (*domain.DocumentResult, error) {
	result, err := uc.repo.FindByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("load document result: %w", err)
	}
	return result, nil
}

func (uc *ConverseUseCase) generateAnswer(ctx context.Context, result *domain.DocumentResult, question string) string {
	systemPrompt := uc.systemPromptFor(result)
	userPrompt := buildUserPrompt(result.MaskedMarkdown, question)

	envelope, err := uc.llm.GenerateContent(ctx, systemPrompt, userPrompt)
	if err != nil {
		slog.Warn("llm_call_failed", "document_id", result.ID, "error", err)
		return DegradedAnswerPrefix + err.Error()
	}

	answer, err := ExtractCandidateText(envelope)
	if err != nil {
		slog.Warn("llm_reply_malformed", "document_id", result.ID, "error", err)
		return DegradedAnswerPrefix + err.Error()
	}
	return answer
}

func (uc *ConverseUseCase) systemPromptFor(result *domain.DocumentResult) string {
	var frame, reference string
	if result.Classified() {
		frame = uc.refs.PromptFrame(result.Type)
		reference = uc.refs.ReferenceText(result.Type)
	}
	return buildSystemPrompt(string(result.Type), frame, reference)
}

func degradedReport(err error) domain.Report {
	return domain.Report{
		Summary:         ReportFallbackSummary,
		Risks:           []string{},
		Recommendations: []string{},
		Extra:           map[string]any{"error": err.Error()},
	}
}
