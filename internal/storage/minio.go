package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"claimsapi/internal/config"
)

const bucketCheckTimeout = 10 * time.Second

type minioStorage struct {
	client *minio.Client
	bucket string
}

// NewMinIO connects to a MinIO (or other S3-compatible) endpoint and creates
// the bucket when it is missing.
func NewMinIO(cfg config.MinIOConfig) (Storage, error) {
	switch {
	case cfg.Endpoint == "":
		return nil, fmt.Errorf("minio endpoint is required")
	case cfg.AccessKey == "" || cfg.SecretKey == "":
		return nil, fmt.Errorf("minio credentials are required")
	case cfg.Bucket == "":
		return nil, fmt.Errorf("minio bucket is required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), bucketCheckTimeout)
	defer cancel()
	if err := ensureBucket(ctx, cli, cfg.Bucket); err != nil {
		return nil, err
	}
	return &minioStorage{client: cli, bucket: cfg.Bucket}, nil
}

func ensureBucket(ctx context.Context, cli *minio.Client, bucket string) error {
	exists, err := cli.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if exists {
		return nil
	}
	if err := cli.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket %s: %w", bucket, err)
	}
	return nil
}

func (m *minioStorage) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	ct := contentType(opt)
	info, err := m.client.PutObject(ctx, m.bucket, key, r, opt.Size, minio.PutObjectOptions{
		ContentType:  ct,
		UserMetadata: opt.Metadata,
	})
	if err != nil {
		return ObjectInfo{}, minioErr("put", key, err)
	}
	return ObjectInfo{
		Key:          key,
		Size:         info.Size,
		ETag:         info.ETag,
		ContentType:  ct,
		LastModified: info.LastModified,
		Metadata:     opt.Metadata,
	}, nil
}

func (m *minioStorage) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, ObjectInfo{}, minioErr("get", key, err)
	}
	// GetObject is lazy; Stat surfaces a missing key.
	st, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, ObjectInfo{}, minioErr("get", key, err)
	}
	return obj, ObjectInfo{
		Key:          key,
		Size:         st.Size,
		ETag:         st.ETag,
		ContentType:  st.ContentType,
		LastModified: st.LastModified,
		Metadata:     st.UserMetadata,
	}, nil
}

func (m *minioStorage) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	params := url.Values{}
	params.Set("response-content-disposition", attachment(key))
	u, err := m.client.PresignedGetObject(ctx, m.bucket, key, expiry, params)
	if err != nil {
		return "", minioErr("presign", key, err)
	}
	return u.String(), nil
}

func minioErr(op, key string, err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return fmt.Errorf("minio %s %s: %w", op, key, ErrObjectNotFound)
	}
	return fmt.Errorf("minio %s %s: %w", op, key, err)
}
