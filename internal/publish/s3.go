package publish

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3 uploads through the multipart-aware upload manager.
type S3 struct {
	dest     Destination
	endpoint string
	uploader *manager.Uploader
}

// NewS3 creates an S3 publisher with static credentials.
func NewS3(dest Destination, cfg Config) (*S3, error) {
	if cfg.S3AccessKey == "" || cfg.S3SecretKey == "" {
		return nil, errors.New("s3 publish requires s3.access_key and s3.secret_key")
	}
	region := cfg.S3Region
	if region == "" {
		region = "us-east-1"
	}
	o := s3.Options{
		Region:      region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
	}
	if cfg.S3Endpoint != "" {
		o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		o.UsePathStyle = true
	}
	client := s3.New(o)
	return &S3{
		dest:     dest,
		endpoint: cfg.S3Endpoint,
		uploader: manager.NewUploader(client),
	}, nil
}

// Publish uploads localPath under the destination prefix.
func (p *S3) Publish(ctx context.Context, localPath string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	key := p.dest.ObjectKey(localPath)
	out, err := p.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.dest.Bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(ContentType(localPath)),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s to bucket %s: %w", key, p.dest.Bucket, err)
	}
	if out.Location != "" {
		return out.Location, nil
	}
	return "s3://" + p.dest.Bucket + "/" + key, nil
}

// Close is a no-op; the SDK client holds no resources that need releasing.
func (p *S3) Close() error { return nil }
