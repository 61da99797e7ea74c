// Package s3 sube blobs a un bucket S3 (o compatible, ej. MinIO).
package s3

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"bird-collector/internal/ports/blobstore"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
)

type Options struct {
	BaseURL string
	Region  string

	// Opcionales. Endpoint vacío => AWS; credenciales vacías => cadena default del SDK.
	Endpoint        string
	UsePathStyle    bool
	AccessKeyID     string
	SecretAccessKey string
}

type Store struct {
	uploader *manager.Uploader
	baseURL  string
}

// New arma el cliente. Sin reintentos: una falla de transporte se reporta directo.
func New(ctx context.Context, opts Options) (*Store, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRetryer(func() aws.Retryer { return aws.NopRetryer{} }),
	}
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	if opts.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := awss3.NewFromConfig(cfg, func(o *awss3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
		o.UsePathStyle = opts.UsePathStyle
	})
	return NewWithClient(client, opts.BaseURL), nil
}

func NewWithClient(client manager.UploadAPIClient, baseURL string) *Store {
	return &Store{
		uploader: manager.NewUploader(client, func(u *manager.Uploader) {
			u.Concurrency = 1
		}),
		baseURL: baseURL,
	}
}

func (s *Store) URL(bucket, key string) string {
	return blobstore.RetrievalURL(s.baseURL, bucket, key)
}

func (s *Store) Put(ctx context.Context, bucket, key string, content io.Reader) (string, error) {
	in := &awss3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   content,
	}
	if ct := contentType(key); ct != "" {
		in.ContentType = aws.String(ct)
	}

	if _, err := s.uploader.Upload(ctx, in); err != nil {
		return "", fmt.Errorf("s3 put %s/%s: %w", bucket, key, err)
	}
	return s.URL(bucket, key), nil
}

func contentType(key string) string {
	ext := strings.ToLower(path.Ext(key))
	if ext == "" {
		return ""
	}
	return mime.TypeByExtension(ext)
}
