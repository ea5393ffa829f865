package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"claimsapi/internal/function"
	fnmocks "claimsapi/internal/function/mocks"
	"claimsapi/internal/kvstore"
	kvmocks "claimsapi/internal/kvstore/mocks"
	"claimsapi/internal/model"
	"claimsapi/internal/repository"
	"claimsapi/internal/storage"
	storagemocks "claimsapi/internal/storage/mocks"
)

var fixedNow = time.Date(2024, 5, 10, 14, 30, 0, 250000000, time.UTC)

func newBoltStore(t *testing.T) *kvstore.Bolt {
	t.Helper()
	b, err := kvstore.OpenBolt(filepath.Join(t.TempDir(), "claims.db"), kvstore.KeySchema{"claims": "claimId"})
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })
	return b
}

func newRepo(store kvstore.Store, blobs storage.Storage, fn function.Invoker, opts Options) *ClaimKV {
	opts.SummarizerName = "claims-summarizer"
	opts.FileGeneratorName = "claim-data-notes-generator"
	opts.Now = func() time.Time { return fixedNow }
	return NewClaimKV(store, blobs, fn, opts)
}

func sampleClaim() *model.Claim {
	ts := model.NewLocalDateTime(fixedNow)
	return &model.Claim{
		ClaimID:     "CLM-001",
		CustomerID:  "CUST-9",
		Status:      model.StatusUnderReview,
		Description: "Hail damage to roof",
		CreatedDate: ts,
		UpdatedDate: ts,
		Notes:       []string{},
		Amount:      1500.00,
	}
}

func TestClaimKV_SaveThenFindByID(t *testing.T) {
	repo := newRepo(newBoltStore(t), nil, nil, Options{})
	ctx := context.Background()

	req := model.CreateClaimRequest{
		ClaimID:     "CLM-001",
		CustomerID:  "CUST-9",
		Status:      model.StatusPending,
		Description: `Rear-ended at a "stop" light`,
		Amount:      1500.00,
	}
	saved, err := repo.Save(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, []string{}, saved.Notes)
	assert.True(t, saved.CreatedDate.Equal(saved.UpdatedDate.Time))
	assert.True(t, saved.CreatedDate.Equal(fixedNow))

	got, err := repo.FindByID(ctx, "CLM-001")
	require.NoError(t, err)
	assert.Equal(t, req.ClaimID, got.ClaimID)
	assert.Equal(t, req.CustomerID, got.CustomerID)
	assert.Equal(t, req.Status, got.Status)
	assert.Equal(t, req.Description, got.Description)
	assert.Equal(t, 1500.00, got.Amount)
	assert.Equal(t, []string{}, got.Notes)
	assert.True(t, got.CreatedDate.Equal(got.UpdatedDate.Time))
	assert.True(t, got.CreatedDate.Equal(saved.CreatedDate.Time))
}

func TestClaimKV_SaveOverwrites(t *testing.T) {
	store := newBoltStore(t)
	ctx := context.Background()
	req := model.CreateClaimRequest{ClaimID: "CLM-1", CustomerID: "u", Status: model.StatusPending, Description: "d", Amount: 1}

	first := NewClaimKV(store, nil, nil, Options{Now: func() time.Time { return fixedNow }})
	_, err := first.Save(ctx, req)
	require.NoError(t, err)

	later := fixedNow.Add(time.Hour)
	second := NewClaimKV(store, nil, nil, Options{Now: func() time.Time { return later }})
	req.Amount = 2
	_, err = second.Save(ctx, req)
	require.NoError(t, err)

	got, err := second.FindByID(ctx, "CLM-1")
	require.NoError(t, err)
	assert.Equal(t, 2.0, got.Amount)
	assert.True(t, got.CreatedDate.Equal(later))
}

func TestClaimKV_SaveUsesLocation(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	store := new(kvmocks.MockStore)
	store.On("PutItem", mock.Anything, "claims", mock.MatchedBy(func(item kvstore.Item) bool {
		v, ok := item["createdDate"].(*types.AttributeValueMemberS)
		return ok && v.Value == "2024-05-10T21:30:00.25"
	})).Return(nil)

	repo := newRepo(store, nil, nil, Options{Location: loc})
	_, err := repo.Save(context.Background(), model.CreateClaimRequest{ClaimID: "c", Status: model.StatusPending})
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestClaimKV_SaveStoreError(t *testing.T) {
	store := new(kvmocks.MockStore)
	store.On("PutItem", mock.Anything, "claims", mock.Anything).Return(errors.New("ProvisionedThroughputExceeded"))

	repo := newRepo(store, nil, nil, Options{})
	_, err := repo.Save(context.Background(), model.CreateClaimRequest{ClaimID: "c"})
	assert.EqualError(t, err, "put claim c: ProvisionedThroughputExceeded")
}

func TestClaimKV_FindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		repo := newRepo(newBoltStore(t), nil, nil, Options{})
		c, err := repo.FindByID(ctx, "missing")
		assert.Nil(t, c)
		assert.ErrorIs(t, err, repository.ErrNotFound)

		var me *repository.MappingError
		assert.False(t, errors.As(err, &me))
	})

	t.Run("mapping error", func(t *testing.T) {
		store := newBoltStore(t)
		require.NoError(t, store.PutItem(ctx, "claims", kvstore.Item{
			"claimId":     &types.AttributeValueMemberS{Value: "CLM-BAD"},
			"customerId":  &types.AttributeValueMemberS{Value: "u"},
			"status":      &types.AttributeValueMemberS{Value: "PENDING"},
			"description": &types.AttributeValueMemberS{Value: "d"},
			"amount":      &types.AttributeValueMemberN{Value: "10"},
			"createdDate": &types.AttributeValueMemberS{Value: "yesterday"},
			"updatedDate": &types.AttributeValueMemberS{Value: "2024-01-01T00:00:00"},
		}))

		repo := newRepo(store, nil, nil, Options{})
		_, err := repo.FindByID(ctx, "CLM-BAD")

		var me *repository.MappingError
		require.ErrorAs(t, err, &me)
		assert.Equal(t, "createdDate", me.Field)
		assert.NotErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("store error", func(t *testing.T) {
		store := new(kvmocks.MockStore)
		store.On("GetItem", mock.Anything, "claims", mock.Anything).Return(nil, errors.New("timeout"))

		repo := newRepo(store, nil, nil, Options{})
		_, err := repo.FindByID(ctx, "CLM-001")
		assert.EqualError(t, err, "get claim CLM-001: timeout")
		assert.NotErrorIs(t, err, repository.ErrNotFound)
	})
}

func summaryResponse() []byte {
	return []byte(`{"claimId":"CLM-001","summaries":{"overall":"Roof damaged by hail.","customer":"We are reviewing your claim.","adjuster":"Verify roof inspection photos.","recommendation":"APPROVE"},"generatedAt":"2024-05-10T14:30:00","modelUsed":"x"}`)
}

func TestClaimKV_GenerateSummary(t *testing.T) {
	fn := new(fnmocks.MockInvoker)
	fn.On("Invoke", mock.Anything, "claims-summarizer", mock.Anything).
		Return(&function.Result{StatusCode: 200, Payload: summaryResponse()}, nil)

	repo := newRepo(nil, nil, fn, Options{})
	s, err := repo.GenerateSummary(context.Background(), sampleClaim())
	require.NoError(t, err)

	assert.Equal(t, "CLM-001", s.ClaimID)
	assert.Equal(t, model.Summaries{
		Overall:        "Roof damaged by hail.",
		Customer:       "We are reviewing your claim.",
		Adjuster:       "Verify roof inspection photos.",
		Recommendation: "APPROVE",
	}, s.Summaries)
	assert.Equal(t, DefaultModelID, s.ModelUsed)
	assert.True(t, s.GeneratedAt.Equal(fixedNow))

	payload := fn.Calls[0].Arguments.Get(2).([]byte)
	assert.JSONEq(t, `{"claimId":"CLM-001","description":"Hail damage to roof","status":"UNDER_REVIEW","customerId":"CUST-9"}`, string(payload))
}

func TestClaimKV_GenerateSummary_ParseFailureYieldsSentinels(t *testing.T) {
	for _, body := range [][]byte{[]byte(`Task timed out`), nil, []byte(`{"summaries": {"overall": "x"`)} {
		fn := new(fnmocks.MockInvoker)
		fn.On("Invoke", mock.Anything, mock.Anything, mock.Anything).
			Return(&function.Result{StatusCode: 200, Payload: body}, nil)

		repo := newRepo(nil, nil, fn, Options{})
		s, err := repo.GenerateSummary(context.Background(), sampleClaim())
		require.NoError(t, err)
		assert.Equal(t, model.Summaries{
			Overall:        "Summary generation failed",
			Customer:       "Summary generation failed",
			Adjuster:       "Summary generation failed",
			Recommendation: "UNKNOWN",
		}, s.Summaries)
	}
}

func TestClaimKV_GenerateSummary_PartialFields(t *testing.T) {
	fn := new(fnmocks.MockInvoker)
	fn.On("Invoke", mock.Anything, mock.Anything, mock.Anything).
		Return(&function.Result{StatusCode: 200, Payload: []byte(`{"summaries":{"overall":"ok","recommendation":"DENY"}}`)}, nil)

	repo := newRepo(nil, nil, fn, Options{})
	s, err := repo.GenerateSummary(context.Background(), sampleClaim())
	require.NoError(t, err)
	assert.Equal(t, "ok", s.Summaries.Overall)
	assert.Equal(t, "Not available", s.Summaries.Customer)
	assert.Equal(t, "Not available", s.Summaries.Adjuster)
	assert.Equal(t, "DENY", s.Summaries.Recommendation)
}

func TestClaimKV_GenerateSummary_PropagatePolicy(t *testing.T) {
	fn := new(fnmocks.MockInvoker)
	fn.On("Invoke", mock.Anything, mock.Anything, mock.Anything).
		Return(&function.Result{StatusCode: 200, Payload: []byte(`not json`)}, nil)

	repo := newRepo(nil, nil, fn, Options{SummaryParsePolicy: repository.PolicyPropagate})
	s, err := repo.GenerateSummary(context.Background(), sampleClaim())
	assert.Nil(t, s)
	assert.ErrorContains(t, err, "summary for claim CLM-001")
}

func TestClaimKV_GenerateSummary_InvocationFailuresPropagate(t *testing.T) {
	ctx := context.Background()

	t.Run("transport", func(t *testing.T) {
		fn := new(fnmocks.MockInvoker)
		fn.On("Invoke", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &function.InvocationError{Function: "claims-summarizer", Err: errors.New("dial tcp")})

		repo := newRepo(nil, nil, fn, Options{})
		_, err := repo.GenerateSummary(ctx, sampleClaim())
		var ie *function.InvocationError
		assert.ErrorAs(t, err, &ie)
	})

	t.Run("function error", func(t *testing.T) {
		fn := new(fnmocks.MockInvoker)
		fn.On("Invoke", mock.Anything, mock.Anything, mock.Anything).
			Return(&function.Result{StatusCode: 200, FunctionError: "Unhandled", Payload: []byte(`{"errorMessage":"KeyError"}`)}, nil)

		repo := newRepo(nil, nil, fn, Options{})
		_, err := repo.GenerateSummary(ctx, sampleClaim())
		var fe *function.FunctionError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, `{"errorMessage":"KeyError"}`, fe.Payload)
	})
}

func notesBlob(text string) *storagemocks.MockStorage {
	blobs := new(storagemocks.MockStorage)
	blobs.On("Get", mock.Anything, "CLM-001/notes.txt").
		Return(io.NopCloser(strings.NewReader(text)), storage.ObjectInfo{}, nil)
	return blobs
}

func missingBlob() *storagemocks.MockStorage {
	blobs := new(storagemocks.MockStorage)
	blobs.On("Get", mock.Anything, "CLM-001/notes.txt").
		Return(nil, storage.ObjectInfo{}, fmt.Errorf("get: %w", storage.ErrObjectNotFound))
	return blobs
}

func filesOK() *function.Result {
	return &function.Result{StatusCode: 200, Payload: []byte(`{"statusCode":200,"claimId":"CLM-001","generatedFiles":["s3://bucket/CLM-001/adjuster-notes.json","s3://bucket/CLM-001/customer-correspondence.json"],"message":"Claim documents generated successfully"}`)}
}

func TestClaimKV_GenerateClaimFiles(t *testing.T) {
	fn := new(fnmocks.MockInvoker)
	fn.On("Invoke", mock.Anything, "claim-data-notes-generator", mock.Anything).Return(filesOK(), nil)

	notes := "Customer said: \"the roof leaked\"\nSecond line\t{braces}"
	repo := newRepo(nil, notesBlob(notes), fn, Options{})

	out, err := repo.GenerateClaimFiles(context.Background(), sampleClaim())
	require.NoError(t, err)
	assert.Equal(t, "CLM-001", out.ClaimID)
	assert.Len(t, out.GeneratedFiles, 2)
	assert.Equal(t, "Claim documents generated successfully", out.Message)

	var sent filesRequest
	require.NoError(t, json.Unmarshal(fn.Calls[0].Arguments.Get(2).([]byte), &sent))
	assert.Equal(t, notes, sent.Notes)
	assert.Equal(t, "CLM-001", sent.ClaimID)
	assert.Equal(t, claimData{ClaimID: "CLM-001", Status: "UNDER_REVIEW", CustomerID: "CUST-9", Description: "Hail damage to roof"}, sent.ClaimData)
}

func TestClaimKV_GenerateClaimFiles_BlobFailureUsesFallback(t *testing.T) {
	fn := new(fnmocks.MockInvoker)
	fn.On("Invoke", mock.Anything, mock.Anything, mock.Anything).Return(filesOK(), nil)

	repo := newRepo(nil, missingBlob(), fn, Options{})
	_, err := repo.GenerateClaimFiles(context.Background(), sampleClaim())
	require.NoError(t, err)

	var sent filesRequest
	require.NoError(t, json.Unmarshal(fn.Calls[0].Arguments.Get(2).([]byte), &sent))
	assert.Equal(t, "No additional notes available.", sent.Notes)
}

func TestClaimKV_GenerateClaimFiles_Failures(t *testing.T) {
	tests := []struct {
		name   string
		res    *function.Result
		err    error
		assert func(t *testing.T, err error)
	}{
		{
			name: "function error",
			res:  &function.Result{StatusCode: 200, FunctionError: "Unhandled"},
			assert: func(t *testing.T, err error) {
				var fe *function.FunctionError
				require.ErrorAs(t, err, &fe)
				assert.Equal(t, "<no payload>", fe.Payload)
			},
		},
		{
			name: "transport error",
			err:  &function.InvocationError{Function: "claim-data-notes-generator", Err: context.DeadlineExceeded},
			assert: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, context.DeadlineExceeded)
			},
		},
		{
			name: "handled error in body",
			res:  &function.Result{StatusCode: 200, Payload: []byte(`{"statusCode":500,"error":"Claim CLM-001 not found in database"}`)},
			assert: func(t *testing.T, err error) {
				var fe *function.FunctionError
				require.ErrorAs(t, err, &fe)
				assert.Equal(t, "Handled", fe.Kind)
				assert.Contains(t, fe.Payload, "not found in database")
			},
		},
		{
			name: "handled error object in body",
			res:  &function.Result{StatusCode: 200, Payload: []byte(`{"statusCode":500,"error":{"type":"KeyError","message":"claimData"}}`)},
			assert: func(t *testing.T, err error) {
				var fe *function.FunctionError
				require.ErrorAs(t, err, &fe)
				assert.Equal(t, "Handled", fe.Kind)
				assert.Contains(t, fe.Payload, "KeyError")
			},
		},
		{
			name: "handled error with mistyped files",
			res:  &function.Result{StatusCode: 200, Payload: []byte(`{"generatedFiles":"none","error":"bucket missing"}`)},
			assert: func(t *testing.T, err error) {
				var fe *function.FunctionError
				require.ErrorAs(t, err, &fe)
				assert.Equal(t, "Handled", fe.Kind)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn := new(fnmocks.MockInvoker)
			fn.On("Invoke", mock.Anything, mock.Anything, mock.Anything).Return(tt.res, tt.err)

			repo := newRepo(nil, missingBlob(), fn, Options{})
			out, err := repo.GenerateClaimFiles(context.Background(), sampleClaim())
			assert.Nil(t, out)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "generate files for claim CLM-001")
			tt.assert(t, err)
		})
	}
}

func TestClaimKV_GenerateClaimFiles_SentinelPolicy(t *testing.T) {
	fn := new(fnmocks.MockInvoker)
	fn.On("Invoke", mock.Anything, mock.Anything, mock.Anything).
		Return(&function.Result{StatusCode: 200, FunctionError: "Unhandled"}, nil)

	repo := newRepo(nil, missingBlob(), fn, Options{FileGenerationPolicy: repository.PolicySentinel})
	out, err := repo.GenerateClaimFiles(context.Background(), sampleClaim())
	require.NoError(t, err)
	assert.Equal(t, "Files generation failed", out.Message)
	assert.Empty(t, out.GeneratedFiles)
}

func TestClaimKV_GenerateClaimFiles_NonJSONSuccess(t *testing.T) {
	fn := new(fnmocks.MockInvoker)
	fn.On("Invoke", mock.Anything, mock.Anything, mock.Anything).
		Return(&function.Result{StatusCode: 200}, nil)

	repo := newRepo(nil, notesBlob("n"), fn, Options{})
	out, err := repo.GenerateClaimFiles(context.Background(), sampleClaim())
	require.NoError(t, err)
	assert.Equal(t, []string{}, out.GeneratedFiles)
}

func TestClaimKV_GenerateClaimFiles_NullErrorIsSuccess(t *testing.T) {
	fn := new(fnmocks.MockInvoker)
	fn.On("Invoke", mock.Anything, mock.Anything, mock.Anything).
		Return(&function.Result{StatusCode: 200, Payload: []byte(`{"generatedFiles":["a"],"error":null}`)}, nil)

	repo := newRepo(nil, notesBlob("n"), fn, Options{})
	out, err := repo.GenerateClaimFiles(context.Background(), sampleClaim())
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, out.GeneratedFiles)
}
