package kv

import (
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"claimsapi/internal/kvstore"
	"claimsapi/internal/model"
	"claimsapi/internal/repository"
)

// claimRecord is the flat persisted layout of a claim.
type claimRecord struct {
	ClaimID     string   `dynamodbav:"claimId"`
	CustomerID  string   `dynamodbav:"customerId"`
	Status      string   `dynamodbav:"status"`
	Description string   `dynamodbav:"description"`
	Amount      float64  `dynamodbav:"amount"`
	CreatedDate string   `dynamodbav:"createdDate"`
	UpdatedDate string   `dynamodbav:"updatedDate"`
	Notes       []string `dynamodbav:"notes,omitempty"`
}

type attrKind int

const (
	kindString attrKind = iota
	kindNumber
)

func (k attrKind) String() string {
	if k == kindNumber {
		return "N"
	}
	return "S"
}

// requiredAttributes lists the attributes every claim record carries, in
// the order they are checked.
var requiredAttributes = []struct {
	name string
	kind attrKind
}{
	{"claimId", kindString},
	{"customerId", kindString},
	{"status", kindString},
	{"description", kindString},
	{"amount", kindNumber},
	{"createdDate", kindString},
	{"updatedDate", kindString},
}

var (
	errMissingAttribute = errors.New("missing attribute")
	errAttributeType    = errors.New("unexpected attribute type")
)

func checkKind(v types.AttributeValue, want attrKind) error {
	switch v.(type) {
	case *types.AttributeValueMemberS:
		if want == kindString {
			return nil
		}
	case *types.AttributeValueMemberN:
		if want == kindNumber {
			return nil
		}
	}
	return fmt.Errorf("%w: want %s, got %T", errAttributeType, want, v)
}

type claimKeyRecord struct {
	ClaimID string `dynamodbav:"claimId"`
}

func claimKey(id string) (kvstore.Item, error) {
	return attributevalue.MarshalMap(claimKeyRecord{ClaimID: id})
}

// ToItem converts a claim to its store attributes. Amount is a number
// attribute, notes a list of strings, dates local date-time strings.
func ToItem(c model.Claim) (kvstore.Item, error) {
	return attributevalue.MarshalMap(claimRecord{
		ClaimID:     c.ClaimID,
		CustomerID:  c.CustomerID,
		Status:      string(c.Status),
		Description: c.Description,
		Amount:      c.Amount,
		CreatedDate: c.CreatedDate.String(),
		UpdatedDate: c.UpdatedDate.String(),
		Notes:       c.Notes,
	})
}

// FromItem rebuilds a claim from store attributes. Timestamps are read in loc.
// Every failure is a *repository.MappingError. Status values and date order
// are taken as stored.
func FromItem(item kvstore.Item, loc *time.Location) (*model.Claim, error) {
	id := ""
	if v, ok := item["claimId"].(*types.AttributeValueMemberS); ok {
		id = v.Value
	}

	for _, attr := range requiredAttributes {
		v, ok := item[attr.name]
		if !ok || v == nil {
			return nil, &repository.MappingError{ClaimID: id, Field: attr.name, Err: errMissingAttribute}
		}
		if err := checkKind(v, attr.kind); err != nil {
			return nil, &repository.MappingError{ClaimID: id, Field: attr.name, Err: err}
		}
	}

	var rec claimRecord
	if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
		return nil, &repository.MappingError{ClaimID: id, Err: err}
	}

	created, err := model.ParseLocalDateTime(rec.CreatedDate, loc)
	if err != nil {
		return nil, &repository.MappingError{ClaimID: id, Field: "createdDate", Err: err}
	}
	updated, err := model.ParseLocalDateTime(rec.UpdatedDate, loc)
	if err != nil {
		return nil, &repository.MappingError{ClaimID: id, Field: "updatedDate", Err: err}
	}

	notes := rec.Notes
	if notes == nil {
		notes = []string{}
	}

	return &model.Claim{
		ClaimID:     rec.ClaimID,
		CustomerID:  rec.CustomerID,
		Status:      model.ClaimStatus(rec.Status),
		Description: rec.Description,
		CreatedDate: created,
		UpdatedDate: updated,
		Notes:       notes,
		Amount:      rec.Amount,
	}, nil
}
