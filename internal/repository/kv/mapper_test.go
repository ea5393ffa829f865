package kv

import (
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claimsapi/internal/kvstore"
	"claimsapi/internal/model"
	"claimsapi/internal/repository"
)

func storedItem() kvstore.Item {
	return kvstore.Item{
		"claimId":     &types.AttributeValueMemberS{Value: "CLM-001"},
		"customerId":  &types.AttributeValueMemberS{Value: "CUST-9"},
		"status":      &types.AttributeValueMemberS{Value: "PENDING"},
		"description": &types.AttributeValueMemberS{Value: "Water damage in kitchen"},
		"amount":      &types.AttributeValueMemberN{Value: "1500.00"},
		"createdDate": &types.AttributeValueMemberS{Value: "2024-03-01T10:15:30"},
		"updatedDate": &types.AttributeValueMemberS{Value: "2024-03-02T08:00:00.123456"},
	}
}

func TestToItem_Layout(t *testing.T) {
	ts := model.NewLocalDateTime(time.Date(2024, 3, 1, 10, 15, 30, 0, time.UTC))
	item, err := ToItem(model.Claim{
		ClaimID:     "CLM-001",
		CustomerID:  "CUST-9",
		Status:      model.StatusApproved,
		Description: "d",
		CreatedDate: ts,
		UpdatedDate: ts,
		Notes:       []string{"first", "second"},
		Amount:      1500.5,
	})
	require.NoError(t, err)

	assert.Equal(t, &types.AttributeValueMemberS{Value: "CLM-001"}, item["claimId"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "APPROVED"}, item["status"])
	assert.Equal(t, &types.AttributeValueMemberN{Value: "1500.5"}, item["amount"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "2024-03-01T10:15:30"}, item["createdDate"])

	notes, ok := item["notes"].(*types.AttributeValueMemberL)
	require.True(t, ok, "notes must be a list attribute")
	assert.Equal(t, []types.AttributeValue{
		&types.AttributeValueMemberS{Value: "first"},
		&types.AttributeValueMemberS{Value: "second"},
	}, notes.Value)
}

func TestToItem_EmptyNotesOmitted(t *testing.T) {
	item, err := ToItem(model.Claim{ClaimID: "c", Notes: []string{}})
	require.NoError(t, err)
	_, ok := item["notes"]
	assert.False(t, ok)
}

func TestFromItem(t *testing.T) {
	c, err := FromItem(storedItem(), time.UTC)
	require.NoError(t, err)

	assert.Equal(t, "CLM-001", c.ClaimID)
	assert.Equal(t, "CUST-9", c.CustomerID)
	assert.Equal(t, model.StatusPending, c.Status)
	assert.Equal(t, 1500.00, c.Amount)
	assert.Equal(t, []string{}, c.Notes)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 15, 30, 0, time.UTC), c.CreatedDate.Time)
	assert.Equal(t, 123456000, c.UpdatedDate.Nanosecond())
}

func TestFromItem_Notes(t *testing.T) {
	item := storedItem()
	item["notes"] = &types.AttributeValueMemberL{Value: []types.AttributeValue{
		&types.AttributeValueMemberS{Value: "called customer"},
		&types.AttributeValueMemberS{Value: "photos received"},
	}}

	c, err := FromItem(item, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, []string{"called customer", "photos received"}, c.Notes)
}

func TestFromItem_MappingErrors(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(kvstore.Item)
		field string
	}{
		{"missing customerId", func(i kvstore.Item) { delete(i, "customerId") }, "customerId"},
		{"missing amount", func(i kvstore.Item) { delete(i, "amount") }, "amount"},
		{"missing updatedDate", func(i kvstore.Item) { delete(i, "updatedDate") }, "updatedDate"},
		{"bad created date", func(i kvstore.Item) {
			i["createdDate"] = &types.AttributeValueMemberS{Value: "01/03/2024 10:15"}
		}, "createdDate"},
		{"offset in date", func(i kvstore.Item) {
			i["updatedDate"] = &types.AttributeValueMemberS{Value: "2024-03-02T08:00:00Z"}
		}, "updatedDate"},
		{"amount wrong type", func(i kvstore.Item) {
			i["amount"] = &types.AttributeValueMemberS{Value: "1500.00"}
		}, "amount"},
		{"status stored as number", func(i kvstore.Item) {
			i["status"] = &types.AttributeValueMemberN{Value: "5"}
		}, "status"},
		{"customerId null", func(i kvstore.Item) {
			i["customerId"] = &types.AttributeValueMemberNULL{Value: true}
		}, "customerId"},
		{"description as list", func(i kvstore.Item) {
			i["description"] = &types.AttributeValueMemberL{}
		}, "description"},
		{"createdDate as number", func(i kvstore.Item) {
			i["createdDate"] = &types.AttributeValueMemberN{Value: "1709288130"}
		}, "createdDate"},
		{"amount grouped", func(i kvstore.Item) {
			i["amount"] = &types.AttributeValueMemberN{Value: "1,500.00"}
		}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := storedItem()
			tt.edit(item)

			c, err := FromItem(item, time.UTC)
			assert.Nil(t, c)

			var me *repository.MappingError
			require.True(t, errors.As(err, &me), "want MappingError, got %v", err)
			assert.Equal(t, "CLM-001", me.ClaimID)
			assert.Equal(t, tt.field, me.Field)
			assert.NotErrorIs(t, err, repository.ErrNotFound)
		})
	}
}

func TestFromItem_ClaimIDTypeChecked(t *testing.T) {
	item := storedItem()
	item["claimId"] = &types.AttributeValueMemberN{Value: "7"}

	_, err := FromItem(item, time.UTC)
	var me *repository.MappingError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "claimId", me.Field)
	assert.Empty(t, me.ClaimID)
}

func TestFromItem_LenientReads(t *testing.T) {
	item := storedItem()
	item["status"] = &types.AttributeValueMemberS{Value: "ESCALATED"}
	item["createdDate"] = &types.AttributeValueMemberS{Value: "2024-04-01T00:00:00"}

	c, err := FromItem(item, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, model.ClaimStatus("ESCALATED"), c.Status)
	assert.True(t, c.CreatedDate.After(c.UpdatedDate.Time))
}

func TestFromItem_ReadsInLocation(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	c, err := FromItem(storedItem(), loc)
	require.NoError(t, err)
	assert.Equal(t, loc, c.CreatedDate.Location())
	assert.Equal(t, "2024-03-01T10:15:30", c.CreatedDate.String())
}

func TestAmountRoundTrip(t *testing.T) {
	ts := model.NewLocalDateTime(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	for _, amount := range []float64{1500.00, 0.01, 123456789.99, 42} {
		item, err := ToItem(model.Claim{
			ClaimID: "c", CustomerID: "u", Status: model.StatusPending, Description: "d",
			CreatedDate: ts, UpdatedDate: ts, Amount: amount,
		})
		require.NoError(t, err)

		c, err := FromItem(item, time.UTC)
		require.NoError(t, err)
		assert.Equal(t, amount, c.Amount)
	}
}
