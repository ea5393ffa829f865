package kv

import (
	"context"
	"io"
	"log/slog"

	"claimsapi/internal/repository"
	"claimsapi/internal/storage"
)

// NotesFetcher reads the free-text notes blob of a claim on a best-effort basis.
type NotesFetcher struct {
	blobs storage.Storage
	log   *slog.Logger
}

func NewNotesFetcher(blobs storage.Storage, log *slog.Logger) *NotesFetcher {
	return &NotesFetcher{blobs: blobs, log: log}
}

// Fetch returns the notes text, or repository.FallbackNotes on any failure.
// It never returns an error.
func (f *NotesFetcher) Fetch(ctx context.Context, claimID string) string {
	key := repository.NotesKey(claimID)
	if f.blobs == nil {
		f.log.WarnContext(ctx, "notes.unavailable", "claim_id", claimID, "key", key, "error", "no blob storage configured")
		return repository.FallbackNotes
	}

	rc, _, err := f.blobs.Get(ctx, key)
	if err != nil {
		f.log.WarnContext(ctx, "notes.unavailable", "claim_id", claimID, "key", key, "error", err.Error())
		return repository.FallbackNotes
	}
	defer rc.Close()

	b, err := io.ReadAll(rc)
	if err != nil {
		f.log.WarnContext(ctx, "notes.unreadable", "claim_id", claimID, "key", key, "error", err.Error())
		return repository.FallbackNotes
	}
	return string(b)
}
