package service

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"claimsapi/internal/model"
)

var (
	statusRx  = regexp.MustCompile(`^(PENDING|APPROVED|DENIED|UNDER_REVIEW)$`)
	claimIDRx = regexp.MustCompile(`^[^/\s](?:[^/]*[^/\s])?$`)
)

// ValidationError describes the first invalid field of a request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap lets callers match any validation failure with ErrInvalidRequest.
func (e *ValidationError) Unwrap() error { return ErrInvalidRequest }

// ValidateCreateClaim checks a create request before it reaches the repository.
func ValidateCreateClaim(req model.CreateClaimRequest) error {
	if err := claimIDOK(req.ClaimID); err != nil {
		return err
	}
	if strings.TrimSpace(req.CustomerID) == "" {
		return &ValidationError{Field: "customerId", Message: "must not be blank"}
	}
	if !statusRx.MatchString(string(req.Status)) {
		return &ValidationError{Field: "status", Message: "must be one of PENDING, APPROVED, DENIED, UNDER_REVIEW"}
	}
	if strings.TrimSpace(req.Description) == "" {
		return &ValidationError{Field: "description", Message: "must not be blank"}
	}
	if math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) || req.Amount <= 0 {
		return &ValidationError{Field: "amount", Message: "must be greater than 0"}
	}
	return nil
}

// claimIDOK rejects blank ids and ids containing '/', which would escape the
// claim's blob key prefix.
func claimIDOK(id string) error {
	if strings.TrimSpace(id) == "" {
		return &ValidationError{Field: "claimId", Message: "must not be blank"}
	}
	if !claimIDRx.MatchString(id) {
		return &ValidationError{Field: "claimId", Message: "must not contain '/' or surrounding whitespace"}
	}
	return nil
}

