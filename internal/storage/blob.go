package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

var (
	ErrNotFound   = errors.New("blob not found")
	ErrInvalidKey = errors.New("invalid blob key")
)

// BlobStore keeps uploaded documents and 3D models.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, r io.Reader) (string, error) // returns canonical key
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	List(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, key string) error // missing keys are not an error
	SignedURL(ctx context.Context, key string) (string, error) // fs returns "file://..." for dev
}

// CleanKey normalizes a slash-separated key and rejects anything that would
// escape the store root.
func CleanKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" || strings.ContainsAny(key, "\x00\\") {
		return "", ErrInvalidKey
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == ".." {
			return "", ErrInvalidKey
		}
	}
	c := strings.TrimPrefix(path.Clean("/"+key), "/")
	if c == "" {
		return "", ErrInvalidKey
	}
	return c, nil
}
