package model

// Summaries holds the four audience-specific texts produced by the summarizer.
type Summaries struct {
	Overall        string `json:"overall"`
	Customer       string `json:"customer"`
	Adjuster       string `json:"adjuster"`
	Recommendation string `json:"recommendation"`
}

// ClaimSummary is a derived view of a claim. It is built on every request and never stored.
type ClaimSummary struct {
	ClaimID     string        `json:"claimId"`
	Summaries   Summaries     `json:"summaries"`
	GeneratedAt LocalDateTime `json:"generatedAt"`
	ModelUsed   string        `json:"modelUsed"`
}

// FileGeneration describes the outcome of a document generation run.
type FileGeneration struct {
	ClaimID        string   `json:"claimId"`
	GeneratedFiles []string `json:"generatedFiles"`
	Message        string   `json:"message,omitempty"`
}

// FileLink is a time-limited download link for a generated claim document.
type FileLink struct {
	Name      string `json:"name"`
	Key       string `json:"key"`
	URL       string `json:"url"`
	ExpiresIn int    `json:"expires_in"`
}
