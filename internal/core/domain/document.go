package domain

import "time"

// DocumentType is the closed set of classification categories assigned
// by the masking service.
type DocumentType string

const (
	TypeHRInfo       DocumentType = "HR_INFO"
	TypeBusinessInfo DocumentType = "BUSINESS_INFO"
	TypeTechInfo     DocumentType = "TECH_INFO"
	TypePublicInfo   DocumentType = "PUBLIC_INFO"
	TypePersonalInfo DocumentType = "PERSONAL_INFO"
)

func AllDocumentTypes() []DocumentType {
	return []DocumentType{
		TypeHRInfo,
		TypeBusinessInfo,
		TypeTechInfo,
		TypePublicInfo,
		TypePersonalInfo,
	}
}

// ParseDocumentType maps a wire string onto the enumeration. The second
// return is false for anything outside the closed set, including "".
func ParseDocumentType(raw string) (DocumentType, bool) {
	t := DocumentType(raw)
	switch t {
	case TypeHRInfo, TypeBusinessInfo, TypeTechInfo, TypePublicInfo, TypePersonalInfo:
		return t, true
	default:
		return "", false
	}
}

// DocumentResult is the durable aggregate kept per uploaded document.
// Type is empty when classification parsing fell back at upload time;
// AnswerMarkdown is empty until the first question is asked and holds
// only the most recent answer afterwards.
type DocumentResult struct {
	ID             string       `json:"id"`
	Type           DocumentType `json:"document_type,omitempty"`
	MaskedMarkdown string       `json:"masked_markdown"`
	AnswerMarkdown string       `json:"answer_markdown,omitempty"`
	Filename       string       `json:"filename"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

func (r *DocumentResult) Classified() bool {
	return r.Type != ""
}

// ClassificationResponse is the parsed form of the masking service reply.
// Type is empty when the reply carried no parsable category.
type ClassificationResponse struct {
	Markdown string
	Type     DocumentType
}

// DocumentSummary is the listing projection: identifier plus original filename.
type DocumentSummary struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
}
