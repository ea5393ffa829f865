package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"claimsapi/internal/model"
)

// ErrNotFound is returned by FindByID when no claim exists for the id.
var ErrNotFound = errors.New("claim not found")

// FallbackNotes replaces claim notes whenever the notes blob cannot be read.
const FallbackNotes = "No additional notes available."

// Sentinels written into a summary whose response could not be parsed.
const (
	SummaryFailed         = "Summary generation failed"
	RecommendationUnknown = "UNKNOWN"
)

// NotesKey is the blob key holding free-text notes for a claim.
func NotesKey(claimID string) string {
	return claimID + "/notes.txt"
}

// ClaimRepository defines data access for claims and the remote functions
// that derive summaries and documents from them.
type ClaimRepository interface {
	// FindByID returns ErrNotFound for an absent claim and a *MappingError when
	// the stored record cannot be turned back into a claim.
	FindByID(ctx context.Context, id string) (*model.Claim, error)

	// GenerateSummary asks the summarizer function for the four claim summaries.
	GenerateSummary(ctx context.Context, claim *model.Claim) (*model.ClaimSummary, error)

	// GenerateClaimFiles asks the file generator function to produce the claim documents.
	GenerateClaimFiles(ctx context.Context, claim *model.Claim) (*model.FileGeneration, error)

	// Save stamps created/updated dates and writes the claim, overwriting any existing record.
	Save(ctx context.Context, req model.CreateClaimRequest) (*model.Claim, error)
}

// MappingError means a stored record is structurally inconsistent.
type MappingError struct {
	ClaimID string
	Field   string
	Err     error
}

func (e *MappingError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("map claim %s: %v", e.ClaimID, e.Err)
	}
	return fmt.Sprintf("map claim %s: field %s: %v", e.ClaimID, e.Field, e.Err)
}

func (e *MappingError) Unwrap() error { return e.Err }

// FailurePolicy decides what an operation does when a remote step fails
// after the invocation itself succeeded.
type FailurePolicy string

const (
	// PolicySentinel absorbs the failure and substitutes fixed placeholder values.
	PolicySentinel FailurePolicy = "sentinel"
	// PolicyPropagate returns the failure to the caller.
	PolicyPropagate FailurePolicy = "propagate"
)

// ParseFailurePolicy accepts "sentinel" or "propagate" (case-insensitive).
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch p := FailurePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicySentinel, PolicyPropagate:
		return p, nil
	}
	return "", fmt.Errorf("unknown failure policy %q", s)
}
