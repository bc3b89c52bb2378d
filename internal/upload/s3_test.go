package upload

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObject struct {
	body        []byte
	contentType string
	metadata    map[string]string
	modified    time.Time
}

// fakeS3 is an in-memory bucket implementing the calls S3Storage makes
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string]fakeObject
	listErr error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string]fakeObject{}}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Key)] = fakeObject{
		body:        body,
		contentType: aws.ToString(in.ContentType),
		metadata:    in.Metadata,
		modified:    time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
	}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	obj, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{ContentLength: aws.Int64(int64(len(obj.body)))}, nil
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}

	keys := make([]string, 0, len(f.objects))
	for k := range f.objects {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(false)}
	for _, k := range keys {
		obj := f.objects[k]
		out.Contents = append(out.Contents, types.Object{
			Key:          aws.String(k),
			Size:         aws.Int64(int64(len(obj.body))),
			LastModified: aws.Time(obj.modified),
		})
	}
	return out, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Storage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	fake := newFakeS3()
	fake.objects["other/ignored.png"] = fakeObject{body: []byte("x")}
	fake.objects["uploads/nested/deep.png"] = fakeObject{body: []byte("x")}

	u := NewUploader(newS3Storage(fake, "tunel-assets", "uploads/"), "https://cdn.tunel.com", MaxFileSize)
	u.newID = func() string { return "abc" }

	fh := fileHeaders(t, "image", testFile{name: "logo.svg", contentType: "image/svg+xml", body: []byte("<svg/>")})[0]
	img, err := u.Save(ctx, "image", fh)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.tunel.com/image-abc.svg", img.URL)

	stored, ok := fake.objects["uploads/image-abc.svg"]
	require.True(t, ok)
	assert.Equal(t, "<svg/>", string(stored.body))
	assert.Equal(t, "image/svg+xml", stored.contentType)
	assert.Equal(t, "logo.svg", stored.metadata["original-name"])

	images, err := u.List(ctx)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "image-abc.svg", images[0].Filename)
	assert.Equal(t, "image/svg+xml", images[0].Mimetype)
	assert.Equal(t, int64(6), images[0].Size)

	require.NoError(t, u.Delete(ctx, "image-abc.svg"))
	assert.ErrorIs(t, u.Delete(ctx, "image-abc.svg"), ErrNotFound)
}

func TestS3Storage_ListError(t *testing.T) {
	fake := newFakeS3()
	fake.listErr = errors.New("access denied")
	u := NewUploader(newS3Storage(fake, "b", ""), "", 0)

	_, err := u.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}
