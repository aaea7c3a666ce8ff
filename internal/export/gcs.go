package export

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"cloud.google.com/go/storage"
)

// Uploader stores one exported workbook and returns its location.
type Uploader interface {
	Upload(ctx context.Context, name string, r io.Reader) (string, error)
}

// IsBucketURI reports whether dest names a Cloud Storage location.
func IsBucketURI(dest string) bool {
	return strings.HasPrefix(dest, "gs://")
}

// ParseBucketURI splits gs://bucket/prefix into its parts.
func ParseBucketURI(uri string) (bucket, prefix string, err error) {
	if !IsBucketURI(uri) {
		return "", "", fmt.Errorf("not a gs:// uri: %q", uri)
	}
	parts := strings.SplitN(strings.TrimPrefix(uri, "gs://"), "/", 2)
	if parts[0] == "" {
		return "", "", fmt.Errorf("missing bucket in %q", uri)
	}
	if len(parts) == 2 {
		prefix = strings.Trim(parts[1], "/")
	}
	return parts[0], prefix, nil
}

// GCS uploads workbooks under a bucket prefix.
type GCS struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCS opens a storage client using application default credentials.
func NewGCS(ctx context.Context, uri string) (*GCS, error) {
	bucket, prefix, err := ParseBucketURI(uri)
	if err != nil {
		return nil, err
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCS{client: client, bucket: bucket, prefix: prefix}, nil
}

// Object returns the object path for name.
func (g *GCS) Object(name string) string {
	if g.prefix == "" {
		return name
	}
	return path.Join(g.prefix, name)
}

// Upload implements Uploader.
func (g *GCS) Upload(ctx context.Context, name string, r io.Reader) (string, error) {
	obj := g.Object(name)
	w := g.client.Bucket(g.bucket).Object(obj).NewWriter(ctx)
	w.ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to upload %s: %w", obj, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize %s: %w", obj, err)
	}
	return fmt.Sprintf("gs://%s/%s", g.bucket, obj), nil
}

// Close releases the storage client.
func (g *GCS) Close() error { return g.client.Close() }
