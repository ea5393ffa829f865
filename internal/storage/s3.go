package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3API is the subset of *s3.Client used by the S3 backend.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Presigner defines the interface for presigning S3 GET requests.
type Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// s3Storage implements Storage on AWS S3 (or LocalStack) through the AWS SDK v2.
type s3Storage struct {
	client    S3API
	presigner Presigner
	bucket    string
}

// NewS3 creates a Storage bound to bucket.
func NewS3(client S3API, presigner Presigner, bucket string) (Storage, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	return &s3Storage{client: client, presigner: presigner, bucket: bucket}, nil
}

func (s *s3Storage) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	ct := contentType(opt)
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(ct),
		Metadata:    opt.Metadata,
	}
	if opt.Size >= 0 {
		input.ContentLength = aws.Int64(opt.Size)
	}

	out, err := s.client.PutObject(ctx, input)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("s3 put %s: %w", key, err)
	}
	return ObjectInfo{
		Key:          key,
		Size:         opt.Size,
		ETag:         strings.Trim(aws.ToString(out.ETag), "\""),
		ContentType:  ct,
		LastModified: time.Now(),
		Metadata:     opt.Metadata,
	}, nil
}

func (s *s3Storage) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, ObjectInfo{}, fmt.Errorf("s3 get %s: %w", key, ErrObjectNotFound)
		}
		return nil, ObjectInfo{}, fmt.Errorf("s3 get %s: %w", key, err)
	}

	info := ObjectInfo{
		Key:         key,
		Size:        aws.ToInt64(out.ContentLength),
		ETag:        strings.Trim(aws.ToString(out.ETag), "\""),
		ContentType: aws.ToString(out.ContentType),
		Metadata:    out.Metadata,
	}
	if out.LastModified != nil {
		info.LastModified = *out.LastModified
	}
	return out.Body, info, nil
}

func (s *s3Storage) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if s.presigner == nil {
		return "", fmt.Errorf("s3 presign %s: no presigner configured", key)
	}
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket:                     aws.String(s.bucket),
		Key:                        aws.String(key),
		ResponseContentDisposition: aws.String(attachment(key)),
	}, func(o *s3.PresignOptions) { o.Expires = expiry })
	if err != nil {
		return "", fmt.Errorf("s3 presign %s: %w", key, err)
	}
	return req.URL, nil
}

func isS3NotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "NoSuchBucket":
			return true
		}
	}
	return false
}
