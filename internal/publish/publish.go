// Package publish uploads finished clips to object storage.
package publish

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// Publisher uploads a local file and returns the remote URL.
type Publisher interface {
	Publish(ctx context.Context, localPath string) (string, error)
	Close() error
}

// Config carries credentials and endpoints for the supported backends.
type Config struct {
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string // optional, for S3-compatible stores

	GCSCredentialsFile string // optional; application default credentials otherwise
}

// Destination is a parsed s3://bucket/prefix or gs://bucket/prefix.
type Destination struct {
	Scheme string // "s3" or "gs"
	Bucket string
	Prefix string // no leading or trailing slash
}

func (d Destination) String() string {
	if d.Prefix == "" {
		return d.Scheme + "://" + d.Bucket
	}
	return d.Scheme + "://" + d.Bucket + "/" + d.Prefix
}

// ObjectKey returns the key a local file is stored under.
func (d Destination) ObjectKey(localPath string) string {
	return path.Join(d.Prefix, filepath.Base(localPath))
}

// ParseDestination validates a publish destination.
func ParseDestination(raw string) (Destination, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Destination{}, fmt.Errorf("invalid publish destination %q: %w", raw, err)
	}
	switch u.Scheme {
	case "s3", "gs":
	default:
		return Destination{}, fmt.Errorf("invalid publish destination %q (expected s3://bucket/prefix or gs://bucket/prefix)", raw)
	}
	if u.Host == "" {
		return Destination{}, fmt.Errorf("invalid publish destination %q: missing bucket", raw)
	}
	return Destination{
		Scheme: u.Scheme,
		Bucket: u.Host,
		Prefix: strings.Trim(u.Path, "/"),
	}, nil
}

// Open builds the Publisher for dest.
func Open(ctx context.Context, dest string, cfg Config) (Publisher, error) {
	d, err := ParseDestination(dest)
	if err != nil {
		return nil, err
	}
	if d.Scheme == "s3" {
		return NewS3(d, cfg)
	}
	return NewGCS(ctx, d, cfg)
}

// ContentType maps clip extensions to MIME types.
func ContentType(localPath string) string {
	switch strings.ToLower(filepath.Ext(localPath)) {
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	case ".gif":
		return "image/gif"
	default:
		return "application/octet-stream"
	}
}
