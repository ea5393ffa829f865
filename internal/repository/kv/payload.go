package kv

import (
	"bytes"
	"encoding/json"

	"claimsapi/internal/model"
)

// summaryRequest is the summarizer function input.
type summaryRequest struct {
	ClaimID     string `json:"claimId"`
	Description string `json:"description"`
	Status      string `json:"status"`
	CustomerID  string `json:"customerId"`
}

type claimData struct {
	ClaimID     string `json:"claimId"`
	Status      string `json:"status"`
	CustomerID  string `json:"customerId"`
	Description string `json:"description"`
}

// filesRequest is the file generator function input.
type filesRequest struct {
	ClaimID   string    `json:"claimId"`
	ClaimData claimData `json:"claimData"`
	Notes     string    `json:"notes"`
}

// filesResponse is what the file generator returns. Any error value other
// than null or "" means the function caught its own failure and reported it
// in the body.
type filesResponse struct {
	StatusCode     int             `json:"statusCode"`
	ClaimID        string          `json:"claimId"`
	GeneratedFiles []string        `json:"generatedFiles"`
	Message        string          `json:"message"`
	Error          json.RawMessage `json:"error"`
}

func (r filesResponse) failed() bool {
	e := bytes.TrimSpace(r.Error)
	return len(e) > 0 && !bytes.Equal(e, []byte("null")) && !bytes.Equal(e, []byte(`""`))
}

// decodeFilesResponse reports ok=false when payload is not a JSON object. A
// body whose other fields are mistyped still has its error field honored.
func decodeFilesResponse(payload []byte) (filesResponse, bool) {
	var body filesResponse
	if err := json.Unmarshal(payload, &body); err == nil {
		return body, true
	}
	var errOnly struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(payload, &errOnly); err != nil {
		return filesResponse{}, false
	}
	return filesResponse{Error: errOnly.Error}, true
}

func summaryPayload(c *model.Claim) ([]byte, error) {
	return json.Marshal(summaryRequest{
		ClaimID:     c.ClaimID,
		Description: c.Description,
		Status:      string(c.Status),
		CustomerID:  c.CustomerID,
	})
}

func filesPayload(c *model.Claim, notes string) ([]byte, error) {
	return json.Marshal(filesRequest{
		ClaimID: c.ClaimID,
		ClaimData: claimData{
			ClaimID:     c.ClaimID,
			Status:      string(c.Status),
			CustomerID:  c.CustomerID,
			Description: c.Description,
		},
		Notes: notes,
	})
}
