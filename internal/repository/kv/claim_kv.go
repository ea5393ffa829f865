package kv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"claimsapi/internal/extract"
	"claimsapi/internal/function"
	"claimsapi/internal/kvstore"
	"claimsapi/internal/logger"
	"claimsapi/internal/model"
	"claimsapi/internal/repository"
	"claimsapi/internal/storage"
)

const (
	DefaultTable   = "claims"
	DefaultModelID = "anthropic.claude-3-sonnet-20240229-v1:0"

	filesFailedMessage = "Files generation failed"
)

// Options configures a ClaimKV. Zero values fall back to defaults.
type Options struct {
	Table                string
	SummarizerName       string
	FileGeneratorName    string
	ModelID              string
	SummaryParsePolicy   repository.FailurePolicy
	FileGenerationPolicy repository.FailurePolicy
	// Location is the zone claim timestamps are written and read in.
	Location *time.Location
	Logger   *slog.Logger
	Now      func() time.Time
}

// ClaimKV is a repository.ClaimRepository over a key-value store, a blob
// store for notes and a remote function platform.
type ClaimKV struct {
	store  kvstore.Store
	fn     function.Invoker
	notes  *NotesFetcher
	opts   Options
	log    *slog.Logger
	tracer trace.Tracer
}

var _ repository.ClaimRepository = (*ClaimKV)(nil)

// NewClaimKV creates a new ClaimKV repository.
func NewClaimKV(store kvstore.Store, blobs storage.Storage, fn function.Invoker, opts Options) *ClaimKV {
	if opts.Table == "" {
		opts.Table = DefaultTable
	}
	if opts.ModelID == "" {
		opts.ModelID = DefaultModelID
	}
	if opts.SummaryParsePolicy == "" {
		opts.SummaryParsePolicy = repository.PolicySentinel
	}
	if opts.FileGenerationPolicy == "" {
		opts.FileGenerationPolicy = repository.PolicyPropagate
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &ClaimKV{
		store:  store,
		fn:     fn,
		notes:  NewNotesFetcher(blobs, opts.Logger),
		opts:   opts,
		log:    opts.Logger,
		tracer: otel.Tracer("claimsapi/internal/repository"),
	}
}

func (r *ClaimKV) FindByID(ctx context.Context, id string) (*model.Claim, error) {
	key, err := claimKey(id)
	if err != nil {
		return nil, fmt.Errorf("build key for claim %s: %w", id, err)
	}

	item, err := r.store.GetItem(ctx, r.opts.Table, key)
	if err != nil {
		if errors.Is(err, kvstore.ErrItemNotFound) {
			return nil, fmt.Errorf("claim %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("get claim %s: %w", id, err)
	}
	return FromItem(item, r.opts.Location)
}

func (r *ClaimKV) GenerateSummary(ctx context.Context, claim *model.Claim) (*model.ClaimSummary, error) {
	name := r.opts.SummarizerName
	ctx, span := r.tracer.Start(ctx, "claims.GenerateSummary", trace.WithAttributes(
		attribute.String("claim.id", claim.ClaimID),
		attribute.String("faas.invoked_name", name),
	))
	defer span.End()

	payload, err := summaryPayload(claim)
	if err != nil {
		return nil, r.spanErr(span, fmt.Errorf("build summary payload: %w", err))
	}

	r.log.InfoContext(ctx, "summary.invoke", "claim_id", claim.ClaimID, "function", name)
	res, err := r.fn.Invoke(ctx, name, payload)
	if err != nil {
		r.log.ErrorContext(ctx, "summary.invoke_failed", "claim_id", claim.ClaimID, "function", name, "error", err.Error())
		return nil, r.spanErr(span, err)
	}
	if ferr := res.Err(name); ferr != nil {
		r.log.ErrorContext(ctx, "summary.function_failed", "claim_id", claim.ClaimID, "function", name, "error", ferr.Error())
		return nil, r.spanErr(span, ferr)
	}

	summaries, err := parseSummaries(res.PayloadText())
	if err != nil {
		if r.opts.SummaryParsePolicy == repository.PolicyPropagate {
			return nil, r.spanErr(span, fmt.Errorf("summary for claim %s: %w", claim.ClaimID, err))
		}
		r.log.WarnContext(ctx, "summary.degraded", "claim_id", claim.ClaimID, "function", name, "error", err.Error())
		span.SetAttributes(attribute.Bool("summary.degraded", true))
		summaries = failedSummaries()
	}

	return &model.ClaimSummary{
		ClaimID:     claim.ClaimID,
		Summaries:   summaries,
		GeneratedAt: model.NewLocalDateTime(r.opts.Now().In(r.opts.Location)),
		ModelUsed:   r.opts.ModelID,
	}, nil
}

func (r *ClaimKV) GenerateClaimFiles(ctx context.Context, claim *model.Claim) (*model.FileGeneration, error) {
	name := r.opts.FileGeneratorName
	ctx, span := r.tracer.Start(ctx, "claims.GenerateClaimFiles", trace.WithAttributes(
		attribute.String("claim.id", claim.ClaimID),
		attribute.String("faas.invoked_name", name),
	))
	defer span.End()

	notes := r.notes.Fetch(ctx, claim.ClaimID)

	payload, err := filesPayload(claim, notes)
	if err != nil {
		return nil, r.spanErr(span, fmt.Errorf("build files payload: %w", err))
	}

	r.log.InfoContext(ctx, "files.invoke", "claim_id", claim.ClaimID, "function", name, "payload_bytes", len(payload))
	res, err := r.fn.Invoke(ctx, name, payload)
	if err != nil {
		return r.filesFailed(ctx, span, claim.ClaimID, err)
	}
	if ferr := res.Err(name); ferr != nil {
		return r.filesFailed(ctx, span, claim.ClaimID, ferr)
	}

	text := res.PayloadText()
	out := &model.FileGeneration{ClaimID: claim.ClaimID, GeneratedFiles: []string{}}

	if body, ok := decodeFilesResponse(res.Payload); ok {
		if body.failed() {
			return r.filesFailed(ctx, span, claim.ClaimID,
				&function.FunctionError{Function: name, Kind: "Handled", Payload: text})
		}
		if body.GeneratedFiles != nil {
			out.GeneratedFiles = body.GeneratedFiles
		}
		out.Message = body.Message
	}

	r.log.InfoContext(ctx, "files.generated", "claim_id", claim.ClaimID, "function", name,
		"status_code", res.StatusCode, "files", len(out.GeneratedFiles))
	return out, nil
}

func (r *ClaimKV) Save(ctx context.Context, req model.CreateClaimRequest) (*model.Claim, error) {
	now := model.NewLocalDateTime(r.opts.Now().In(r.opts.Location))
	claim := model.Claim{
		ClaimID:     req.ClaimID,
		CustomerID:  req.CustomerID,
		Status:      req.Status,
		Description: req.Description,
		CreatedDate: now,
		UpdatedDate: now,
		Notes:       []string{},
		Amount:      req.Amount,
	}

	item, err := ToItem(claim)
	if err != nil {
		return nil, fmt.Errorf("map claim %s: %w", req.ClaimID, err)
	}
	if err := r.store.PutItem(ctx, r.opts.Table, item); err != nil {
		return nil, fmt.Errorf("put claim %s: %w", req.ClaimID, err)
	}
	return &claim, nil
}

func (r *ClaimKV) filesFailed(ctx context.Context, span trace.Span, claimID string, err error) (*model.FileGeneration, error) {
	r.log.ErrorContext(ctx, "files.failed", "claim_id", claimID, "function", r.opts.FileGeneratorName, "error", err.Error())
	r.spanErr(span, err)
	if r.opts.FileGenerationPolicy == repository.PolicySentinel {
		return &model.FileGeneration{ClaimID: claimID, GeneratedFiles: []string{}, Message: filesFailedMessage}, nil
	}
	return nil, fmt.Errorf("generate files for claim %s: %w", claimID, err)
}

func (r *ClaimKV) spanErr(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// parseSummaries fails only when the response is not JSON at all. A parsed
// response missing some fields yields extract.NotAvailable for those fields.
func parseSummaries(text string) (model.Summaries, error) {
	doc, err := extract.Parse(text)
	if err != nil {
		return model.Summaries{}, err
	}
	return model.Summaries{
		Overall:        doc.Field("summaries", "overall"),
		Customer:       doc.Field("summaries", "customer"),
		Adjuster:       doc.Field("summaries", "adjuster"),
		Recommendation: doc.Field("summaries", "recommendation"),
	}, nil
}

func failedSummaries() model.Summaries {
	return model.Summaries{
		Overall:        repository.SummaryFailed,
		Customer:       repository.SummaryFailed,
		Adjuster:       repository.SummaryFailed,
		Recommendation: repository.RecommendationUnknown,
	}
}
