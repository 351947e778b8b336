package storage

import "context"

// Client is the blob store used by the upload pipeline. Save returns the
// public URL of the stored object. Delete is idempotent: removing a missing
// key is not an error, which keeps saga compensation safe to replay.
type Client interface {
	Save(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
	Health(ctx context.Context) error
}
