// Package storage stages files through S3 for platform processing. The
// source bucket receives the document to extract; the platform writes its
// element JSON to the destination bucket, keyed "<basename>.json".
//
// Both buckets are treated as scratch space: after every extraction they are
// emptied so that stale objects from a previous request can never be picked
// up by a later workflow run.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ErrObjectNotFound is returned by Download when the key does not exist.
var ErrObjectNotFound = errors.New("object not found")

// Store wraps an S3 client with the two staging buckets.
type Store struct {
	client *s3.Client
}

// New builds a Store using static credentials, matching the deployment model
// where keys arrive via environment variables rather than instance profiles.
func New(ctx context.Context, region, key, secret string) (*Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, secret, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &Store{client: s3.NewFromConfig(cfg)}, nil
}

// Upload copies the local file at path into bucket under its base name and
// returns the object key.
func (s *Store) Upload(ctx context.Context, bucket, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	key := filepath.Base(path)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s to s3://%s/%s: %w", path, bucket, key, err)
	}
	return key, nil
}

// Download fetches bucket/key into dir, creating dir if needed, and returns
// the local path of the written file.
func (s *Store) Download(ctx context.Context, bucket, key, dir string) (string, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return "", fmt.Errorf("s3://%s/%s: %w", bucket, key, ErrObjectNotFound)
		}
		return "", fmt.Errorf("download s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}

	local := filepath.Join(dir, filepath.Base(key))
	f, err := os.Create(local)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", local, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, out.Body); err != nil {
		os.Remove(local)
		return "", fmt.Errorf("write %s: %w", local, err)
	}
	return local, nil
}

// Empty deletes every object in bucket and returns the deleted keys.
// Pagination is handled so buckets with more than 1000 objects are fully
// cleared.
func (s *Store) Empty(ctx context.Context, bucket string) ([]string, error) {
	var deleted []string

	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return deleted, fmt.Errorf("list s3://%s: %w", bucket, err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
				Bucket: aws.String(bucket),
				Key:    aws.String(key),
			})
			if err != nil {
				return deleted, fmt.Errorf("delete s3://%s/%s: %w", bucket, key, err)
			}
			deleted = append(deleted, key)
		}
	}
	return deleted, nil
}
