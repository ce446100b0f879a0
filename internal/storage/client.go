// Package storage is the gateway to the remote object store. The
// backend speaks the S3 protocol, addressed by "bucket/key" locator
// strings where the first path segment names the bucket.
package storage

import (
	"context"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/agroxeque/ortho-gateway/internal/config"
)

// transferTimeout bounds a single backend call. Orthomosaics are
// multi-gigabyte, so this is far above the SDK default.
const transferTimeout = 300 * time.Second

// publicURLExpiry is the lifetime of presigned URLs returned by
// Upload.
const publicURLExpiry = 15 * time.Minute

type objectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

type presignAPI interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Client is a stateless handle to the storage backend, safe for
// concurrent use by any number of runs.
type Client struct {
	api     objectAPI
	presign presignAPI
	logger  zerolog.Logger
}

// New builds a Client from the environment-supplied credentials.
// It fails fast with ErrNotConfigured when any of them is absent.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Client, error) {
	if !cfg.StorageConfigured() {
		return nil, ErrNotConfigured
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.StorageRegion),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.StorageAccessKey, cfg.StorageSecretKey, ""),
		),
		awsconfig.WithHTTPClient(&http.Client{Timeout: transferTimeout}),
	)
	if err != nil {
		return nil, &StorageError{Op: "connect", Locator: cfg.StorageURL, Err: err}
	}

	api := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.StorageURL)
		o.UsePathStyle = true
	})

	logger.Info().Str("endpoint", cfg.StorageURL).Msg("storage client ready")

	return &Client{
		api:     api,
		presign: s3.NewPresignClient(api),
		logger:  logger,
	}, nil
}
