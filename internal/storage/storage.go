// Package storage writes ticket artifacts to S3-compatible object storage.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/flightkit/flightd/internal/config"
)

// ArtifactStore is the blob boundary of the purchase flow: one write per
// ticket plus deterministic URL construction. Artifacts are never updated
// or deleted by this service.
type ArtifactStore interface {
	Put(ctx context.Context, key string, body []byte) error
	ObjectURL(key string) string
}

// ObjectStorage is the minio-backed ArtifactStore.
type ObjectStorage struct {
	client         *minio.Client
	bucket         string
	publicEndpoint string
}

// New builds an ObjectStorage from configuration. The endpoint is given
// as a full URL; scheme selects TLS.
func New(cfg config.StorageConfig) (*ObjectStorage, error) {
	u, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid storage endpoint %q: %w", cfg.Endpoint, err)
	}
	client, err := minio.New(u.Host, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: u.Scheme == "https",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &ObjectStorage{
		client:         client,
		bucket:         cfg.Bucket,
		publicEndpoint: strings.TrimRight(cfg.PublicEndpoint, "/"),
	}, nil
}

// Put uploads a text artifact under the given key.
func (s *ObjectStorage) Put(ctx context.Context, key string, body []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, key,
		bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: "text/plain; charset=utf-8"})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return nil
}

// ObjectURL returns the public retrieval URL for a key. The bucket is
// expected to be world readable.
func (s *ObjectStorage) ObjectURL(key string) string {
	return s.publicEndpoint + "/" + s.bucket + "/" + key
}
