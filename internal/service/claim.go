package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"claimsapi/internal/model"
	"claimsapi/internal/repository"
	"claimsapi/internal/storage"
)

var (
	ErrIDRequired     = errors.New("claim id is required")
	ErrNotFound       = errors.New("claim not found")
	ErrInvalidRequest = errors.New("invalid request")
	ErrReaderNil      = errors.New("reader is nil")
)

// Documents written by the file generator function under "{claimId}/".
var GeneratedDocuments = []string{"adjuster-notes.json", "customer-correspondence.json"}

// ClaimService defines the use cases for handling claims.
type ClaimService interface {
	// Get returns a single claim by its ID.
	Get(ctx context.Context, id string) (*model.Claim, error)

	// Summarize loads the claim and asks the summarizer for its summaries.
	Summarize(ctx context.Context, id string) (*model.ClaimSummary, error)

	// GenerateFiles loads the claim and triggers generation of its documents.
	GenerateFiles(ctx context.Context, id string) (*model.FileGeneration, error)

	// Create validates and stores a new claim.
	Create(ctx context.Context, req model.CreateClaimRequest) (*model.Claim, error)

	// UploadNotes replaces the free-text notes blob of an existing claim.
	UploadNotes(ctx context.Context, id string, r io.Reader, size int64) error

	// ListFiles returns download links for the generated documents of a claim.
	ListFiles(ctx context.Context, id string) ([]model.FileLink, error)
}

// claimService is a concrete implementation of ClaimService.
type claimService struct {
	repo       repository.ClaimRepository
	blobs      storage.Storage
	presignTTL time.Duration
}

// NewClaimService constructs a new ClaimService.
func NewClaimService(repo repository.ClaimRepository, blobs storage.Storage, presignTTL time.Duration) ClaimService {
	if presignTTL <= 0 {
		presignTTL = 15 * time.Minute
	}
	return &claimService{repo: repo, blobs: blobs, presignTTL: presignTTL}
}

func (s *claimService) Get(ctx context.Context, id string) (*model.Claim, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	claim, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return claim, nil
}

func (s *claimService) Summarize(ctx context.Context, id string) (*model.ClaimSummary, error) {
	claim, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.repo.GenerateSummary(ctx, claim)
}

func (s *claimService) GenerateFiles(ctx context.Context, id string) (*model.FileGeneration, error) {
	claim, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.repo.GenerateClaimFiles(ctx, claim)
}

func (s *claimService) Create(ctx context.Context, req model.CreateClaimRequest) (*model.Claim, error) {
	if err := ValidateCreateClaim(req); err != nil {
		return nil, err
	}
	return s.repo.Save(ctx, req)
}

func (s *claimService) UploadNotes(ctx context.Context, id string, r io.Reader, size int64) error {
	if r == nil {
		return ErrReaderNil
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	_, err := s.blobs.Put(ctx, repository.NotesKey(id), r, storage.PutObjectOptions{
		Size:        size,
		ContentType: "text/plain; charset=utf-8",
	})
	if err != nil {
		return fmt.Errorf("upload notes: %w", err)
	}
	return nil
}

func (s *claimService) ListFiles(ctx context.Context, id string) ([]model.FileLink, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	links := make([]model.FileLink, 0, len(GeneratedDocuments))
	for _, name := range GeneratedDocuments {
		key := id + "/" + name
		url, err := s.blobs.PresignGet(ctx, key, s.presignTTL)
		if err != nil {
			return nil, fmt.Errorf("presign %s: %w", key, err)
		}
		links = append(links, model.FileLink{
			Name:      name,
			Key:       key,
			URL:       url,
			ExpiresIn: int(s.presignTTL.Seconds()),
		})
	}
	return links, nil
}
