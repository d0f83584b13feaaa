package archive

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"audio-notes/internal/app/model"
)

// Mirror uploads archived originals to an S3-compatible bucket, as an
// off-box copy of recordings that have already been transcribed.
type Mirror struct {
	client *minio.Client
	bucket string
}

// NewMirror creates a Mirror from the pipeline's mirror configuration.
func NewMirror(cfg model.MirrorConfig) (*Mirror, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create object storage client: %w", err)
	}
	return &Mirror{client: client, bucket: cfg.Bucket}, nil
}

// Upload copies the archived file into the bucket under its filename.
func (m *Mirror) Upload(ctx context.Context, path, filename string) error {
	_, err := m.client.FPutObject(ctx, m.bucket, filename, path, minio.PutObjectOptions{})
	if err != nil {
		return fmt.Errorf("upload %s to bucket %s: %w", filename, m.bucket, err)
	}
	return nil
}
