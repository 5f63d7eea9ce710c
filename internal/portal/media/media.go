// Package media stores uploaded images (avatars, company logos) and hands
// back public URLs. The production backend is MinIO; deployments without an
// object store run with a nil Storage and the upload endpoints report the
// feature as unavailable.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var (
	ErrUnsupportedType = errors.New("media: unsupported content type")
)

// Storage persists uploaded binaries under a key and serves them publicly.
type Storage interface {
	// Upload writes the object and returns its public URL.
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)

	// Remove deletes the object. Removing a missing object is not an error.
	Remove(ctx context.Context, key string) error
}

// allowed image types for avatars and logos.
var imageTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

// ImageExt maps an image content type to a file extension, or
// ErrUnsupportedType.
func ImageExt(contentType string) (string, error) {
	ext, ok := imageTypes[strings.ToLower(contentType)]
	if !ok {
		return "", ErrUnsupportedType
	}
	return ext, nil
}

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool

	// PublicBaseURL is the externally reachable prefix for stored objects.
	// Defaults to the endpoint itself.
	PublicBaseURL string
}

type MinioStorage struct {
	client *minio.Client
	bucket string
	base   string
}

var _ Storage = (*MinioStorage)(nil)

// NewMinio connects and ensures the bucket exists.
func NewMinio(ctx context.Context, cfg Config) (*MinioStorage, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, errors.New("media: endpoint and bucket are required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("media: create client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("media: check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("media: create bucket: %w", err)
		}
	}

	base := cfg.PublicBaseURL
	if base == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}

	return &MinioStorage{
		client: client,
		bucket: cfg.Bucket,
		base:   strings.TrimRight(base, "/"),
	}, nil
}

func (m *MinioStorage) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := m.client.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("media: put object: %w", err)
	}
	return m.base + "/" + pathEscape(key), nil
}

func (m *MinioStorage) Remove(ctx context.Context, key string) error {
	err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" {
			return nil
		}
		return fmt.Errorf("media: remove object: %w", err)
	}
	return nil
}

// pathEscape escapes each segment but keeps the separators.
func pathEscape(key string) string {
	parts := strings.Split(path.Clean(key), "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
