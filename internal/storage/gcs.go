package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	gcs "cloud.google.com/go/storage"

	"smartsummary/internal/config"
)

// gcsStorage implements Storage on a Google Cloud Storage bucket.
type gcsStorage struct {
	client *gcs.Client
	bucket *gcs.BucketHandle
}

// NewGCS creates a client using application default credentials and checks
// that the bucket is reachable.
func NewGCS(ctx context.Context, cfg config.GCSConfig) (Storage, func() error, error) {
	if cfg.Bucket == "" {
		return nil, nil, fmt.Errorf("gcs bucket is required")
	}
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("create gcs client: %w", err)
	}
	bucket := client.Bucket(cfg.Bucket)

	checkCtx, cancel := context.WithTimeout(ctx, bucketCheckTimeout)
	defer cancel()
	if _, err := bucket.Attrs(checkCtx); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("check bucket: %w", err)
	}

	return &gcsStorage{client: client, bucket: bucket}, client.Close, nil
}

func (g *gcsStorage) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	w := g.bucket.Object(key).NewWriter(ctx)
	w.ContentType = opt.ContentType
	w.Metadata = opt.Metadata

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return ObjectInfo{}, fmt.Errorf("failed to write to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return ObjectInfo{}, fmt.Errorf("failed to finalize GCS write: %w", err)
	}

	attrs := w.Attrs()
	return ObjectInfo{
		Key:          key,
		Size:         attrs.Size,
		ETag:         attrs.Etag,
		ContentType:  attrs.ContentType,
		LastModified: attrs.Updated,
		Metadata:     attrs.Metadata,
	}, nil
}

func (g *gcsStorage) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	obj := g.bucket.Object(key)
	attrs, err := obj.Attrs(ctx)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	rc, err := obj.NewReader(ctx)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	return rc, ObjectInfo{
		Key:          key,
		Size:         attrs.Size,
		ETag:         attrs.Etag,
		ContentType:  attrs.ContentType,
		LastModified: attrs.Updated,
		Metadata:     attrs.Metadata,
	}, nil
}

// Delete treats a missing object as already deleted.
func (g *gcsStorage) Delete(ctx context.Context, key string) error {
	err := g.bucket.Object(key).Delete(ctx)
	if errors.Is(err, gcs.ErrObjectNotExist) {
		return nil
	}
	return err
}

// PresignGet signs a V4 download URL that keeps the export's download name.
// Signing needs a service account identity; under plain user ADC it fails and
// ErrPresignUnsupported is returned so callers stream the object instead.
func (g *gcsStorage) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := g.bucket.SignedURL(key, signedURLOptions(expiry, g.downloadName(ctx, key)))
	if err != nil {
		// SignedURL does no object I/O, so any failure is a signing setup problem.
		return "", fmt.Errorf("%w: sign gcs url: %w", ErrPresignUnsupported, err)
	}
	return u, nil
}

func signedURLOptions(expiry time.Duration, filename string) *gcs.SignedURLOptions {
	return &gcs.SignedURLOptions{
		Method:          "GET",
		Expires:         time.Now().Add(expiry),
		Scheme:          gcs.SigningSchemeV4,
		QueryParameters: downloadParams(filename),
	}
}

// downloadName reads the stored download name, or "" when it is unavailable.
func (g *gcsStorage) downloadName(ctx context.Context, key string) string {
	attrs, err := g.bucket.Object(key).Attrs(ctx)
	if err != nil {
		return ""
	}
	return downloadFilename(attrs.Metadata)
}
