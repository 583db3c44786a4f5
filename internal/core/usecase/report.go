package usecase

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/secureai/docshield/internal/core/domain"
)

const (
	// ReportNoSummary stands in when the model returned no summary field.
	ReportNoSummary = "no summary"
	// ReportFallbackSummary marks a report whose JSON could not be decoded.
	ReportFallbackSummary = "failed to parse AI report"
)

// ExtractCandidateText navigates the LLM reply envelope down to the first
// candidate's first content part. An envelope without a candidate, without
// parts, or without a text field is malformed and surfaced as such; an empty
// answer must stay distinguishable from a broken reply.
func ExtractCandidateText(envelope []byte) (string, error) {
	var reply struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text *string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.Unmarshal(envelope, &reply); err != nil {
		return "", domain.WrapError(domain.ErrMalformedAIReply, "decode llm envelope", err)
	}
	if len(reply.Candidates) == 0 {
		return "", domain.WrapError(domain.ErrMalformedAIReply, "decode llm envelope",
			fmt.Errorf("no candidates"))
	}
	parts := reply.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return "", domain.WrapError(domain.ErrMalformedAIReply, "decode llm envelope",
			fmt.Errorf("first candidate has no content parts"))
	}
	if parts[0].Text == nil {
		return "", domain.WrapError(domain.ErrMalformedAIReply, "decode llm envelope",
			fmt.Errorf("first content part has no text field"))
	}
	return *parts[0].Text, nil
}

// StripCodeFences removes markdown fence markers the model tends to wrap
// JSON replies in: the json-tagged opening fence, plain fences, and stray
// single backticks, then trims surrounding whitespace.
func StripCodeFences(text string) string {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.ReplaceAll(cleaned, "`", "")
	return strings.TrimSpace(cleaned)
}

// ParseReport decodes raw model text, expected to contain a JSON object
// possibly wrapped in code fences, into a Report. It recovers locally on any
// decode failure: the returned report is always valid and the diagnostic
// travels both in the error and in the report's extra["error"] entry.
func ParseReport(text string) (domain.Report, error) {
	cleaned := StripCodeFences(text)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		decodeErr := fmt.Errorf("decode report json: %w", err)
		return domain.Report{
			Summary:         ReportFallbackSummary,
			Risks:           []string{},
			Recommendations: []string{},
			Extra:           map[string]any{"error": decodeErr.Error()},
		}, decodeErr
	}

	report := domain.Report{
		Summary:         ReportNoSummary,
		Risks:           stringList(fields["risks"]),
		Recommendations: stringList(fields["recommendations"]),
		Extra:           map[string]any{},
	}

	if raw, ok := fields["summary"]; ok {
		var summary string
		if err := json.Unmarshal(raw, &summary); err == nil {
			report.Summary = summary
		}
	}

	for name, raw := range fields {
		switch name {
		case "summary", "risks", "recommendations":
		default:
			report.Extra[name] = raw
		}
	}

	return report, nil
}

// stringList converts a JSON array into its elements' text form, preserving
// order. Anything that is not an array yields an empty list.
func stringList(raw json.RawMessage) []string {
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return []string{}
	}

	out := make([]string, 0, len(elements))
	for _, element := range elements {
		var text string
		if err := json.Unmarshal(element, &text); err == nil {
			out = append(out, text)
			continue
		}
		out = append(out, string(element))
	}
	return out
}
