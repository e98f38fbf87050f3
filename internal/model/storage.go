package model

import (
	"context"
	"io"
)

// Storage abstracts the object storage bucket holding avatar images.
// Upload overwrites an existing object under the same key.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}
