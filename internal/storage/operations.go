package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Download fetches the object at locator and writes it byte-for-byte
// to destPath, creating intermediate directories as needed. It
// returns destPath on success.
func (c *Client) Download(ctx context.Context, locator, destPath string) (string, error) {
	bucket, key := ParseLocator(locator)

	c.logger.Info().Str("bucket", bucket).Str("key", key).Str("dest", destPath).Msg("downloading object")

	if err := os.MkdirAll(filepath.Dir(destPath), os.ModePerm); err != nil {
		return "", &StorageError{Op: "download", Locator: locator, Err: fmt.Errorf("create destination dir: %w", err)}
	}

	resp, err := c.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", &StorageError{Op: "download", Locator: locator, Err: err}
	}
	defer resp.Body.Close()

	out, err := os.Create(destPath)
	if err != nil {
		return "", &StorageError{Op: "download", Locator: locator, Err: fmt.Errorf("create file: %w", err)}
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", &StorageError{Op: "download", Locator: locator, Err: fmt.Errorf("write object data: %w", err)}
	}

	c.logger.Info().Str("dest", destPath).Msg("download complete")
	return destPath, nil
}

// Upload streams the local file to the object at locator, replacing
// any existing object under the same key. On success it attempts to
// resolve a public URL for the object; if URL resolution fails the
// upload is already committed, so it logs a warning and returns ""
// instead of failing the call.
func (c *Client) Upload(ctx context.Context, localPath, locator string) (string, error) {
	bucket, key := ParseLocator(locator)

	if _, err := os.Stat(localPath); err != nil {
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, localPath)
	}

	c.logger.Info().Str("local", localPath).Str("bucket", bucket).Str("key", key).Msg("uploading file")

	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, localPath)
	}
	defer f.Close()

	// The file handle is passed straight through so the transfer
	// streams instead of buffering whole mosaics in memory.
	_, err = c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String("application/octet-stream"),
	})
	if err != nil {
		return "", &StorageError{Op: "upload", Locator: locator, Err: err}
	}

	c.logger.Info().Str("locator", locator).Msg("upload complete")

	req, err := c.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(publicURLExpiry))
	if err != nil {
		c.logger.Warn().Err(err).Str("locator", locator).Msg("could not resolve public URL for uploaded object")
		return "", nil
	}

	return req.URL, nil
}

// List returns the backend's listing for the bucket root.
func (c *Client) List(ctx context.Context, bucket string) ([]s3types.Object, error) {
	c.logger.Info().Str("bucket", bucket).Msg("listing bucket")

	out, err := c.api.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return nil, &StorageError{Op: "list", Locator: bucket, Err: err}
	}
	return out.Contents, nil
}

// Delete removes the object at locator and reports success.
func (c *Client) Delete(ctx context.Context, locator string) (bool, error) {
	bucket, key := ParseLocator(locator)

	c.logger.Info().Str("bucket", bucket).Str("key", key).Msg("deleting object")

	if _, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}); err != nil {
		return false, &StorageError{Op: "delete", Locator: locator, Err: err}
	}
	return true, nil
}
