// Package storage holds claim notes and generated claim documents in an
// S3-compatible bucket. Backends are AWS S3 (SDK v2) and MinIO; both stream
// bodies and never touch local disk.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"
)

// DefaultContentType is stored when an upload does not name one.
const DefaultContentType = "application/octet-stream"

// ErrObjectNotFound is returned when the key (or its bucket) does not exist.
var ErrObjectNotFound = errors.New("object not found")

// PutObjectOptions describe an upload. Size is the exact byte count, or -1
// when unknown.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is an object store bound to one bucket. Implementations are safe
// for concurrent use.
type Storage interface {
	// Put uploads r under key.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get streams the object. A missing key yields an error matching ErrObjectNotFound.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// PresignGet returns a download URL valid for expiry. Browsers save the
	// object under the last element of key.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

func contentType(opt PutObjectOptions) string {
	if opt.ContentType == "" {
		return DefaultContentType
	}
	return opt.ContentType
}

// attachment is the Content-Disposition served with presigned downloads.
func attachment(key string) string {
	return fmt.Sprintf("attachment; filename=%q", path.Base(key))
}
