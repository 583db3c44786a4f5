package usecase

import (
	"fmt"
	"strings"
)

// buildSystemPrompt composes the model/context turn: the analyst framing,
// the document type label with its per-type frame, and optional literal
// reference material.
func buildSystemPrompt(typeLabel, promptFrame, referenceText string) string {
	if typeLabel == "" {
		typeLabel = "UNCLASSIFIED"
	}

	var b strings.Builder
	b.WriteString("You are an analyst for corporate documents.\n")
	fmt.Fprintf(&b, "Document type: %s\n", typeLabel)
	if promptFrame != "" {
		b.WriteString(promptFrame)
		b.WriteString("\n")
	}
	b.WriteString(`
The document has already been partially masked. Do not attempt restoration.
Analyze content, patterns and meaning according to the user's question and
answer in Markdown.

[Output format - Markdown only]
- Do not use backticks or JSON code blocks.
- Separate title, summary, key points, and suggested follow-up analysis.
`)
	if referenceText != "" {
		b.WriteString("\nReference material:\n")
		b.WriteString(referenceText)
		b.WriteString("\n")
	}
	return b.String()
}

func buildUserPrompt(maskedMarkdown, question string) string {
	return fmt.Sprintf("Document (Markdown):\n%s\n\nQuestion: %s", maskedMarkdown, question)
}

// buildReportPrompt asks for the structured JSON report the report parser
// expects; unknown extra fields are allowed and carried through verbatim.
func buildReportPrompt(maskedMarkdown string) string {
	return fmt.Sprintf(`Produce a JSON object describing the document below with keys:
summary (string), risks (array of strings), recommendations (array of strings).
You may add further category-specific keys. Return JSON only.

Document (Markdown):
%s`, maskedMarkdown)
}
