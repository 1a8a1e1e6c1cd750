// Package s3coldstore implements a small blob-overflow client backed
// by S3, for return values too large to keep inline in the primary
// Store. It is not itself a store.Store: it has no conditional or
// counter operations, just Put/Get addressed by opaque references the
// memory package embeds in place of raw value bytes. Value entries are
// write-once and never removed, so there is no Delete.
package s3coldstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/justapithecus/brrr/types"
)

// refPrefix marks a value-namespace entry as a reference into cold
// storage rather than an inline payload. memory.Memory checks for
// this prefix before decoding a value.
const refPrefix = "s3cold://"

// Config configures the S3-backed ColdStore.
type Config struct {
	// Bucket is the S3 bucket name (required).
	Bucket string
	// Prefix is the key prefix within the bucket (optional).
	Prefix string
	// Region is the AWS region (optional, uses the default chain if empty).
	Region string
	// Endpoint is a custom S3 endpoint URL for S3-compatible providers
	// (e.g. MinIO, R2). Empty uses the default AWS endpoint.
	Endpoint string
	// UsePathStyle forces path-style addressing, required by most
	// S3-compatible providers.
	UsePathStyle bool
}

// ColdStore overflows oversized value payloads to S3.
type ColdStore struct {
	client *s3.Client
	bucket string
	prefix string
}

// New loads AWS credentials via the default chain (env vars, shared
// config, IAM role) and builds a ColdStore against cfg.
func New(ctx context.Context, cfg Config) (*ColdStore, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("s3coldstore: bucket is required")
	}

	var loadOpts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(cfg.Region))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("s3coldstore: load AWS config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		endpoint := cfg.Endpoint
		s3Opts = append(s3Opts, func(o *s3.Options) { o.BaseEndpoint = &endpoint })
	}
	if cfg.UsePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) { o.UsePathStyle = true })
	}

	return &ColdStore{
		client: s3.NewFromConfig(awsCfg, s3Opts...),
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}, nil
}

// objectKey derives the bucket key for memoKey under the store's prefix.
func (c *ColdStore) objectKey(memoKey string) string {
	if c.prefix == "" {
		return memoKey
	}
	return c.prefix + "/" + memoKey
}

// Put uploads v under memoKey and returns an opaque reference that
// IsRef reports true for and Get accepts.
func (c *ColdStore) Put(ctx context.Context, memoKey string, v []byte) (string, error) {
	key := c.objectKey(memoKey)
	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(v),
	})
	if err != nil {
		return "", fmt.Errorf("s3coldstore: put %s: %w", key, err)
	}
	return refPrefix + c.bucket + "/" + key, nil
}

// Get dereferences ref (as returned by Put) and returns the stored bytes.
func (c *ColdStore) Get(ctx context.Context, ref string) ([]byte, error) {
	bucket, key, err := parseRef(ref)
	if err != nil {
		return nil, err
	}

	out, err := c.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	var notFound *s3types.NoSuchKey
	if errors.As(err, &notFound) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("s3coldstore: get %s: %w", ref, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3coldstore: read %s: %w", ref, err)
	}
	return data, nil
}

// IsRef reports whether raw is a cold-storage reference rather than
// an inline value payload.
func IsRef(raw []byte) bool {
	return bytes.HasPrefix(raw, []byte(refPrefix))
}

func parseRef(ref string) (bucket, key string, err error) {
	trimmed := strings.TrimPrefix(ref, refPrefix)
	if trimmed == ref {
		return "", "", fmt.Errorf("s3coldstore: malformed reference %q", ref)
	}
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("s3coldstore: malformed reference %q", ref)
	}
	return parts[0], parts[1], nil
}
