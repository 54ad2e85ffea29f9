// Package blobs stores entry images in an S3-compatible bucket (MinIO in
// development) and addresses them by public-style URLs of the form
// <endpoint>/<bucket>/<key>.
package blobs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/dmitrijs2005/journalkeeper/internal/common"
	sc "github.com/dmitrijs2005/journalkeeper/internal/server/config"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) s3API {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// s3API is the subset of *s3.Client the store uses.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// Store reads and writes image objects.
type Store interface {
	Put(ctx context.Context, key string, data []byte) (string, error)
	Get(ctx context.Context, url string) ([]byte, error)
	Ping(ctx context.Context) error
	KeyFromURL(url string) (string, bool)
}

// ImageKey is the object key of an entry image:
// users/<userID>/journal_images/<entryID>/<filename>.
func ImageKey(userID, entryID, filename string) string {
	return path.Join("users", userID, "journal_images", entryID, filename)
}

// UserPrefix is the key prefix every object of userID lives under.
func UserPrefix(userID string) string {
	return "users/" + userID + "/"
}

// S3Store is a Store backed by aws-sdk-go-v2.
type S3Store struct {
	client   s3API
	bucket   string
	endpoint string
}

// NewS3Store builds an S3 client from the server configuration. Path-style
// addressing is forced so MinIO endpoints work without DNS tricks.
func NewS3Store(ctx context.Context, cfg *sc.Config) (*S3Store, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(cfg.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	endpoint := strings.TrimRight(cfg.S3BaseEndpoint, "/")
	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &S3Store{client: client, bucket: cfg.S3Bucket, endpoint: endpoint}, nil
}

// URL returns the address of key inside the store's bucket.
func (s *S3Store) URL(key string) string {
	return s.endpoint + "/" + s.bucket + "/" + key
}

// KeyFromURL is the inverse of URL. It reports false for addresses outside
// this store's bucket.
func (s *S3Store) KeyFromURL(url string) (string, bool) {
	prefix := s.endpoint + "/" + s.bucket + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	if key == "" || strings.Contains(key, "..") {
		return "", false
	}
	return key, true
}

// Put uploads data under key and returns its URL.
func (s *S3Store) Put(ctx context.Context, key string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(http.DetectContentType(data)),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return s.URL(key), nil
}

// Get downloads the object addressed by url. Missing objects and foreign
// URLs yield common.ErrorNotFound.
func (s *S3Store) Get(ctx context.Context, url string) ([]byte, error) {
	key, ok := s.KeyFromURL(url)
	if !ok {
		return nil, common.ErrorNotFound
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("get object %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", key, err)
	}
	return data, nil
}

// Ping checks that the bucket is reachable with the configured credentials.
func (s *S3Store) Ping(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err != nil {
		return fmt.Errorf("head bucket %s: %w", s.bucket, err)
	}
	return nil
}
