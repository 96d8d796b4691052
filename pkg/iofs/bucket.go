package iofs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const defaultRegion = "us-east-1"

var ErrBucketConfig = errors.New("invalid bucket config")

// BucketConfig names an S3-compatible bucket and an optional key prefix.
type BucketConfig struct {
	Endpoint  string
	Bucket    string
	Prefix    string
	Region    string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// BucketFS writes objects to an S3-compatible bucket. Directories do not
// exist in a bucket, so MkdirAll is a no-op.
type BucketFS struct {
	client *minio.Client
	bucket string
	prefix string
	region string

	initOnce sync.Once
	initErr  error
}

// FromBucket creates a bucket destination. No request is made until the
// first EnsureRoot, Exists or Write.
func FromBucket(cfg BucketConfig) (*BucketFS, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("%w: endpoint is required", ErrBucketConfig)
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("%w: bucket is required", ErrBucketConfig)
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("%w: access key and secret key are required", ErrBucketConfig)
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = defaultRegion
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}

	return &BucketFS{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
		region: region,
	}, nil
}

// EnsureRoot creates the bucket when it does not exist. It runs once.
func (b *BucketFS) EnsureRoot(ctx context.Context) error {
	b.initOnce.Do(func() {
		exists, err := b.client.BucketExists(ctx, b.bucket)
		if err != nil {
			b.initErr = err
			return
		}
		if exists {
			return
		}
		b.initErr = b.client.MakeBucket(ctx, b.bucket, minio.MakeBucketOptions{Region: b.region})
	})
	return b.initErr
}

func (b *BucketFS) MkdirAll(rel string, perm fs.FileMode) error {
	return nil
}

func (b *BucketFS) Exists(ctx context.Context, rel string) (bool, error) {
	if err := b.EnsureRoot(ctx); err != nil {
		return false, fmt.Errorf("ensure bucket: %w", err)
	}
	_, err := b.client.StatObject(ctx, b.bucket, b.Key(rel), minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Write uploads the generated content. An object with identical content is
// left alone.
func (b *BucketFS) Write(ctx context.Context, rel string, gen WriterFunc) (bool, error) {
	if err := b.EnsureRoot(ctx); err != nil {
		return false, fmt.Errorf("ensure bucket: %w", err)
	}

	var buf bytes.Buffer
	if err := gen(&buf); err != nil {
		return false, err
	}

	key := b.Key(rel)
	current, err := b.read(ctx, key)
	if err != nil {
		return false, err
	}
	if current != nil && bytes.Equal(current, buf.Bytes()) {
		return false, nil
	}

	_, err = b.client.PutObject(ctx, b.bucket, key, bytes.NewReader(buf.Bytes()), int64(buf.Len()), minio.PutObjectOptions{
		ContentType: contentType(rel),
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// read returns the object content, or nil when it does not exist.
func (b *BucketFS) read(ctx context.Context, key string) ([]byte, error) {
	obj, err := b.client.GetObject(ctx, b.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// Key maps a relative path to its object key.
func (b *BucketFS) Key(rel string) string {
	rel = strings.TrimLeft(path.Clean("/"+strings.TrimSpace(rel)), "/")
	if b.prefix == "" {
		return rel
	}
	return b.prefix + "/" + rel
}

func (b *BucketFS) DisplayPath(rel string) string {
	return "s3://" + b.bucket + "/" + b.Key(rel)
}

func isNotFound(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NoSuchBucket"
}

func contentType(rel string) string {
	switch strings.ToLower(path.Ext(rel)) {
	case ".json":
		return "application/json"
	case ".ts":
		return "text/plain; charset=utf-8"
	case ".html":
		return "text/html; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
