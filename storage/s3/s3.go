// Package s3 provides a core.Storage backed by AWS S3 (or a compatible API).
// Each key is stored as one object below a configurable prefix.
//
// Example usage:
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	store := s3.New(awss3.NewFromConfig(cfg), func(o *s3.Options) {
//	    o.Bucket = "my-bucket"
//	    o.Prefix = "strapikit/"
//	})
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hupe1980/strapikit/core"
)

// API is the subset of *s3.Client used by Store.
type API interface {
	GetObject(ctx context.Context, params *awss3.GetObjectInput, optFns ...func(*awss3.Options)) (*awss3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *awss3.DeleteObjectInput, optFns ...func(*awss3.Options)) (*awss3.DeleteObjectOutput, error)
}

// Options configures a Store.
type Options struct {
	// Bucket is the target bucket. Required.
	Bucket string
	// Prefix is prepended to every key (e.g. "apps/blog/").
	Prefix string
	// ContentType is set on written objects. Defaults to application/json.
	ContentType string
	// ServerSideEncryption is applied to written objects when non-empty.
	ServerSideEncryption types.ServerSideEncryption
}

// Store implements core.Storage on top of S3 objects.
type Store struct {
	client API
	opts   Options
}

var _ core.Storage = (*Store)(nil)

// New creates a Store using client. Use optFns to set bucket and prefix.
func New(client API, optFns ...func(o *Options)) *Store {
	opts := Options{ContentType: "application/json"}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Store{client: client, opts: opts}
}

func (s *Store) objectKey(key string) (string, error) {
	if s.opts.Bucket == "" {
		return "", errors.New("s3 storage: bucket not configured")
	}
	if key == "" {
		return "", errors.New("s3 storage: empty key")
	}
	return s.opts.Prefix + key, nil
}

// Get downloads the object for key. A missing object yields core.ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	objectKey, err := s.objectKey(key)
	if err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.opts.Bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("s3 get %s: %w", objectKey, err)
	}
	defer out.Body.Close()
	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 read %s: %w", objectKey, err)
	}
	return data, nil
}

// Set uploads value as the object for key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	objectKey, err := s.objectKey(key)
	if err != nil {
		return err
	}
	in := &awss3.PutObjectInput{
		Bucket:      aws.String(s.opts.Bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(value),
		ContentType: aws.String(s.opts.ContentType),
	}
	if s.opts.ServerSideEncryption != "" {
		in.ServerSideEncryption = s.opts.ServerSideEncryption
	}
	if _, err := s.client.PutObject(ctx, in); err != nil {
		return fmt.Errorf("s3 put %s: %w", objectKey, err)
	}
	return nil
}

// Delete removes the object for key. S3 does not report missing keys on
// delete, which matches the core.Storage contract.
func (s *Store) Delete(ctx context.Context, key string) error {
	objectKey, err := s.objectKey(key)
	if err != nil {
		return err
	}
	if _, err := s.client.DeleteObject(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(s.opts.Bucket),
		Key:    aws.String(objectKey),
	}); err != nil {
		return fmt.Errorf("s3 delete %s: %w", objectKey, err)
	}
	return nil
}
