// Package storage keeps exported documents in an object store. Keys are
// slash-separated paths such as "exports/<session>/<id>.pdf".
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"
)

// filenameMetadata is set by the export service and replayed on presigned downloads.
const filenameMetadata = "download-filename"

var (
	// ErrPresignUnsupported is returned by backends that cannot issue download URLs.
	ErrPresignUnsupported = errors.New("presigned URLs are not supported by this storage backend")
	ErrInvalidKey         = errors.New("invalid object key")
)

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known, or -1 if unknown.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is an object storage client. Implementations are safe for concurrent use.
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL that can be used to download the object without credentials.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// downloadParams returns the query parameters that make a presigned URL
// download as name. Both S3 and GCS honour response-content-disposition.
func downloadParams(name string) url.Values {
	params := url.Values{}
	if name != "" {
		params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", name))
	}
	return params
}

// downloadFilename looks the download name up in object metadata. Stores
// differ in how they case metadata keys, so the match ignores case.
func downloadFilename(metadata map[string]string) string {
	for k, v := range metadata {
		if strings.EqualFold(k, filenameMetadata) {
			return v
		}
	}
	return ""
}
