package publish

import (
	"context"
	"fmt"
	"io"
	"os"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCS streams files into a Cloud Storage bucket.
type GCS struct {
	dest   Destination
	client *storage.Client
}

// NewGCS creates a GCS publisher. Without a credentials file the client
// falls back to application default credentials.
func NewGCS(ctx context.Context, dest Destination, cfg Config) (*GCS, error) {
	var opts []option.ClientOption
	if cfg.GCSCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.GCSCredentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage.NewClient: %w", err)
	}
	return &GCS{dest: dest, client: client}, nil
}

// Publish uploads localPath under the destination prefix.
func (p *GCS) Publish(ctx context.Context, localPath string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	key := p.dest.ObjectKey(localPath)
	wc := p.client.Bucket(p.dest.Bucket).Object(key).NewWriter(ctx)
	wc.ContentType = ContentType(localPath)
	if _, err := io.Copy(wc, f); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("finalize %s: %w", key, err)
	}
	return "gs://" + p.dest.Bucket + "/" + key, nil
}

func (p *GCS) Close() error {
	return p.client.Close()
}
