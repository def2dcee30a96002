// Package storage persists uploaded binaries and hands back a public URL.
package storage

import (
	"context"
	"io"
	"net/url"
	"strings"

	"blogcms/internal/config"
)

type Store interface {
	// Put stores body under key and returns the URL clients can fetch it from.
	Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// New picks S3 when a bucket is configured and the local directory otherwise.
func New(cfg *config.Config) (Store, error) {
	if cfg.S3Bucket != "" {
		return NewS3Store(cfg.S3Bucket, cfg.S3Region, cfg.S3PublicPrefix)
	}
	return NewLocalStore(cfg.UploadDir, cfg.UploadURLBase)
}

// publicPath escapes each segment of key for use in a URL path.
func publicPath(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
