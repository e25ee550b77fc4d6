// Package archive uploads generated cover sheets to S3-compatible blob
// storage and exposes the retrievable URL for the record back-reference.
package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ErrNotConfigured indicates blob storage credentials are absent.
var ErrNotConfigured = errors.New("blob storage is not configured")

const objectPrefix = "cover-sheets"

// Config carries S3-compatible storage settings.
type Config struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string
}

// Uploader stores cover sheets in a blob bucket.
type Uploader struct {
	cfg Config
	put func(ctx context.Context, key string, body []byte) error
}

// NewUploader builds an Uploader. When the endpoint or bucket is absent the
// Uploader is returned in an unconfigured state and Upload fails with
// ErrNotConfigured.
func NewUploader(cfg Config) (*Uploader, error) {
	u := &Uploader{cfg: cfg}
	if !u.Configured() {
		return u, nil
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("build blob client: %w", err)
	}
	u.put = func(ctx context.Context, key string, body []byte) error {
		_, err := client.PutObject(ctx, cfg.Bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
			ContentType: "application/pdf",
		})
		return err
	}
	return u, nil
}

// Configured reports whether storage credentials are present.
func (u *Uploader) Configured() bool {
	return u != nil && u.cfg.Endpoint != "" && u.cfg.Bucket != ""
}

// Upload stores the PDF under the record's key and returns its URL.
func (u *Uploader) Upload(ctx context.Context, pdf []byte, recordID, filename string) (string, error) {
	if !u.Configured() || u.put == nil {
		return "", ErrNotConfigured
	}
	key := fmt.Sprintf("%s/%s/%s", objectPrefix, recordID, filename)
	if err := u.put(ctx, key, pdf); err != nil {
		return "", fmt.Errorf("upload cover sheet: %w", err)
	}
	return u.objectURL(key), nil
}

func (u *Uploader) objectURL(key string) string {
	if u.cfg.PublicBaseURL != "" {
		return strings.TrimRight(u.cfg.PublicBaseURL, "/") + "/" + key
	}
	scheme := "http"
	if u.cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, u.cfg.Endpoint, u.cfg.Bucket, key)
}
