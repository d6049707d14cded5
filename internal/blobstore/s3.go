package blobstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds S3 connection configuration.
type S3Config struct {
	Bucket   string
	Region   string
	Endpoint string // for S3-compatible services like MinIO
	BasePath string // key prefix inside the bucket
}

// S3Store implements BlobStore against AWS S3 or any S3-compatible service.
type S3Store struct {
	client   *s3.Client
	presign  *s3.PresignClient
	bucket   string
	basePath string
}

// NewS3Store creates an S3-backed blob store.
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	if cfg.Endpoint != "" {
		awsCfg.BaseEndpoint = aws.String(cfg.Endpoint)
	}

	client := s3.NewFromConfig(awsCfg)

	return &S3Store{
		client:   client,
		presign:  s3.NewPresignClient(client),
		bucket:   cfg.Bucket,
		basePath: cfg.BasePath,
	}, nil
}

// UploadURL signs a PUT URL for the given key and content type.
func (s *S3Store) UploadURL(ctx context.Context, path, contentType string, ttl time.Duration) (string, error) {
	out, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(path)),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("presign upload for %s: %w", path, err)
	}
	return out.URL, nil
}

// DownloadURL signs a GET URL for the given key. SigV4 caps presign
// validity at 7 days; callers asking for more get the maximum.
func (s *S3Store) DownloadURL(ctx context.Context, path string, ttl time.Duration) (string, error) {
	if max := 7 * 24 * time.Hour; ttl > max {
		ttl = max
	}

	out, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(path)),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("presign download for %s: %w", path, err)
	}
	return out.URL, nil
}

// Delete removes the object at path. S3 DeleteObject is idempotent, so a
// missing object is not an error.
func (s *S3Store) Delete(ctx context.Context, path string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(path)),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", path, err)
	}
	return nil
}

func (s *S3Store) key(path string) string {
	if s.basePath == "" {
		return path
	}
	return strings.TrimSuffix(s.basePath, "/") + "/" + strings.TrimPrefix(path, "/")
}
