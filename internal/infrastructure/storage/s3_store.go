package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/cleversamer/accountsvc/domain"
)

// S3StoreImpl implements domain.FileStore on an S3-compatible bucket
// (AWS or MinIO).
type S3StoreImpl struct {
	client *s3.Client
	bucket string
}

// S3Options configures the store.
type S3Options struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

// NewS3Store creates the avatar object store.
func NewS3Store(ctx context.Context, opts S3Options) (domain.FileStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3StoreImpl{client: client, bucket: opts.Bucket}, nil
}

// Store implements domain.FileStore. Keys are date-bucketed and
// randomized so uploads never collide.
func (s *S3StoreImpl) Store(ctx context.Context, name string, contentType string, r io.Reader) (string, error) {
	now := time.Now()
	key := fmt.Sprintf("avatars/%d/%02d/%s-%s", now.Year(), now.Month(), uuid.New(), name)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to store object: %w", err)
	}

	return key, nil
}

// Delete implements domain.FileStore. Deleting a missing key is not an
// error; S3 treats it as a no-op and so do we.
func (s *S3StoreImpl) Delete(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}
