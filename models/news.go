package models

// NewsData is the result of one news enrichment run: a narrative summary of
// recent public information about the insured entity plus the web citations
// the summary is grounded on. A nil NewsData means "nothing found", which is
// a valid, non-exceptional outcome.
type NewsData struct {
	Summary   *string    `json:"summary"`
	Citations []Citation `json:"citations"`
}

// Citation is one grounded web source, deduplicated by URI.
type Citation struct {
	Title string `json:"title,omitempty"`
	URI   string `json:"uri"`
}
