package blobs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/dmitrijs2005/journalkeeper/internal/common"
	sc "github.com/dmitrijs2005/journalkeeper/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string][]byte
	types   map[string]string
	putErr  error
	getErr  error
	headErr error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = data
	f.types[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) HeadBucket(ctx context.Context, in *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	return &s3.HeadBucketOutput{}, f.headErr
}

func testConfig() *sc.Config {
	return &sc.Config{
		S3Region:       "us-east-1",
		S3RootUser:     "minioadmin",
		S3RootPassword: "minioadmin",
		S3BaseEndpoint: "http://127.0.0.1:9000/",
		S3Bucket:       "journal",
	}
}

func newStoreWithFake(t *testing.T) (*S3Store, *fakeS3) {
	t.Helper()
	fake := newFakeS3()

	origLoad, origNew := loadDefaultAWSConfig, newS3ClientFromConfig
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "us-east-1", lo.Region)
		assert.NotNil(t, lo.Credentials)
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) s3API {
		var opts s3.Options
		for _, fn := range optFns {
			fn(&opts)
		}
		assert.Equal(t, "http://127.0.0.1:9000", aws.ToString(opts.BaseEndpoint))
		assert.True(t, opts.UsePathStyle)
		return fake
	}

	store, err := NewS3Store(context.Background(), testConfig())
	require.NoError(t, err)
	return store, fake
}

func TestNewS3Store_ConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no config")
	}

	_, err := NewS3Store(context.Background(), testConfig())
	require.Error(t, err)
}

func TestImageKey(t *testing.T) {
	assert.Equal(t, "users/u1/journal_images/2025-06-01/a.jpg", ImageKey("u1", "2025-06-01", "a.jpg"))
	assert.Equal(t, "users/u1/", UserPrefix("u1"))
}

func TestPutGet_RoundTrip(t *testing.T) {
	store, fake := newStoreWithFake(t)
	ctx := context.Background()

	png := []byte("\x89PNG\r\n\x1a\n0000")
	url, err := store.Put(ctx, ImageKey("u1", "2025-06-01", "a.png"), png)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9000/journal/users/u1/journal_images/2025-06-01/a.png", url)
	assert.Equal(t, "image/png", fake.types["users/u1/journal_images/2025-06-01/a.png"])

	got, err := store.Get(ctx, url)
	require.NoError(t, err)
	assert.Equal(t, png, got)
}

func TestGet_Errors(t *testing.T) {
	store, fake := newStoreWithFake(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "http://127.0.0.1:9000/journal/users/u1/missing.jpg")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = store.Get(ctx, "https://elsewhere.example/journal/users/u1/a.jpg")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	fake.getErr = errors.New("timeout")
	_, err = store.Get(ctx, "http://127.0.0.1:9000/journal/users/u1/a.jpg")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}

func TestPut_Error(t *testing.T) {
	store, fake := newStoreWithFake(t)
	fake.putErr = errors.New("denied")

	_, err := store.Put(context.Background(), "users/u1/x", []byte("x"))
	require.Error(t, err)
}

func TestKeyFromURL(t *testing.T) {
	store, _ := newStoreWithFake(t)

	tests := []struct {
		name string
		url  string
		key  string
		ok   bool
	}{
		{"own bucket", "http://127.0.0.1:9000/journal/users/u1/a.jpg", "users/u1/a.jpg", true},
		{"other bucket", "http://127.0.0.1:9000/other/users/u1/a.jpg", "", false},
		{"empty key", "http://127.0.0.1:9000/journal/", "", false},
		{"traversal", "http://127.0.0.1:9000/journal/users/u1/../u2/a.jpg", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := store.KeyFromURL(tt.url)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestPing(t *testing.T) {
	store, fake := newStoreWithFake(t)
	require.NoError(t, store.Ping(context.Background()))

	fake.headErr = errors.New("no bucket")
	require.Error(t, store.Ping(context.Background()))
}
