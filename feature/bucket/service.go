package bucket

import (
	"context"
	"fmt"
	"io"
	"strings"

	"dev-launcher/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Service reads objects from a single bucket.
type Service struct {
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewService creates a new bucket service.
func NewService(client storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// Bucket returns the bucket name served.
func (s *Service) Bucket() string {
	return s.bucket
}

// Check verifies the bucket exists and is reachable.
func (s *Service) Check(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", s.bucket)
	}
	return nil
}

// Open returns the object's metadata and a reader over its content.
func (s *Service) Open(ctx context.Context, key string) (minio.ObjectInfo, io.ReadCloser, error) {
	info, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return minio.ObjectInfo{}, nil, err
	}
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return minio.ObjectInfo{}, nil, err
	}
	return info, obj, nil
}

// List returns the keys directly under prefix. Common prefixes end with "/".
func (s *Service) List(ctx context.Context, prefix string) ([]string, error) {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	var keys []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		keys = append(keys, strings.TrimPrefix(obj.Key, prefix))
	}
	return keys, nil
}
