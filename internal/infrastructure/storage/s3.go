package storage

import (
	"context"
	"fmt"
	"mime"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/wichananm65/buytouch-backend/internal/usecase"
)

// s3API is the subset of *s3.Client the store uses.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store keeps uploads in a bucket under the same uploads/ keys the local
// store uses.
type S3Store struct {
	client  s3API
	bucket  string
	baseURL string
}

var _ usecase.ImageStore = (*S3Store)(nil)

// NewS3Client loads the default AWS configuration. A non-empty endpoint
// targets an S3-compatible service such as LocalStack or MinIO.
func NewS3Client(ctx context.Context, endpoint string) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func NewS3Store(client s3API, bucket, endpoint string) *S3Store {
	baseURL := "https://" + bucket + ".s3.amazonaws.com"
	if endpoint != "" {
		baseURL = strings.TrimRight(endpoint, "/") + "/" + bucket
	}
	return &S3Store{client: client, bucket: bucket, baseURL: baseURL}
}

func (s *S3Store) Store(ctx context.Context, file usecase.Upload) (string, error) {
	key, err := objectPath(file.Filename)
	if err != nil {
		return "", err
	}
	body, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer body.Close()

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		input.ContentType = aws.String(ct)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to put object: %w", err)
	}
	return key, nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	if _, ok := ownedName(key); !ok {
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path.Clean(strings.TrimPrefix(key, "/"))),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

func (s *S3Store) URL(key string) string {
	return s.baseURL + "/" + key
}
