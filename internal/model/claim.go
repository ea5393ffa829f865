package model

// ClaimStatus is the lifecycle state of an insurance claim.
type ClaimStatus string

const (
	StatusPending     ClaimStatus = "PENDING"
	StatusApproved    ClaimStatus = "APPROVED"
	StatusDenied      ClaimStatus = "DENIED"
	StatusUnderReview ClaimStatus = "UNDER_REVIEW"
)

// Valid reports whether s is one of the known claim statuses.
func (s ClaimStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusDenied, StatusUnderReview:
		return true
	}
	return false
}

// Claim represents a persisted insurance claim.
// This is a pure domain model with no store-specific tags; the repository owns
// the mapping to the key-value attribute layout.
type Claim struct {
	ClaimID     string        `json:"claimId"`
	CustomerID  string        `json:"customerId"`
	Status      ClaimStatus   `json:"status"`
	Description string        `json:"description"`
	CreatedDate LocalDateTime `json:"createdDate"`
	UpdatedDate LocalDateTime `json:"updatedDate"`
	Notes       []string      `json:"notes"`
	Amount      float64       `json:"amount"`
}

// CreateClaimRequest is the inbound payload for creating a claim.
type CreateClaimRequest struct {
	ClaimID     string      `json:"claimId"`
	CustomerID  string      `json:"customerId"`
	Status      ClaimStatus `json:"status"`
	Description string      `json:"description"`
	Amount      float64     `json:"amount"`
}
