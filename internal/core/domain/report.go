package domain

// Report is the structured decomposition of an AI-generated document report.
// Extra carries every top-level field the model returned beyond the three
// known ones, values left as the model produced them.
type Report struct {
	Summary         string         `json:"summary"`
	Risks           []string       `json:"risks"`
	Recommendations []string       `json:"recommendations"`
	Extra           map[string]any `json:"extra,omitempty"`
}
