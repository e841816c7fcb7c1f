package s3client

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type fakeObject struct {
	body        []byte
	contentType string
	metadata    map[string]string
}

// fakeS3 is an in-memory bucket. failures holds errors returned, in order,
// by the next calls of the named method.
type fakeS3 struct {
	objects  map[string]*fakeObject
	failures map[string][]error
	calls    map[string]int
}

func newFakeS3() *fakeS3 {
	return &fakeS3{
		objects:  make(map[string]*fakeObject),
		failures: make(map[string][]error),
		calls:    make(map[string]int),
	}
}

func (f *fakeS3) fail(method string) error {
	f.calls[method]++
	queue := f.failures[method]
	if len(queue) == 0 {
		return nil
	}
	f.failures[method] = queue[1:]
	return queue[0]
}

func copyMeta(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (f *fakeS3) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	if err := f.fail("ListObjectsV2"); err != nil {
		return nil, err
	}
	prefix := aws.ToString(params.Prefix)
	var keys []string
	for key := range f.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(false)}
	for _, key := range keys {
		out.Contents = append(out.Contents, types.Object{
			Key:  aws.String(key),
			Size: aws.Int64(int64(len(f.objects[key].body))),
		})
	}
	return out, nil
}

func (f *fakeS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if err := f.fail("GetObject"); err != nil {
		return nil, err
	}
	obj, ok := f.objects[aws.ToString(params.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("The specified key does not exist.")}
	}
	return &s3.GetObjectOutput{
		Body:        io.NopCloser(bytes.NewReader(obj.body)),
		ContentType: aws.String(obj.contentType),
		Metadata:    copyMeta(obj.metadata),
	}, nil
}

func (f *fakeS3) HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if err := f.fail("HeadObject"); err != nil {
		return nil, err
	}
	obj, ok := f.objects[aws.ToString(params.Key)]
	if !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{
		ContentLength: aws.Int64(int64(len(obj.body))),
		ContentType:   aws.String(obj.contentType),
		Metadata:      copyMeta(obj.metadata),
	}, nil
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if err := f.fail("PutObject"); err != nil {
		return nil, err
	}
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(params.Key)] = &fakeObject{
		body:        body,
		contentType: aws.ToString(params.ContentType),
		metadata:    copyMeta(params.Metadata),
	}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if err := f.fail("DeleteObject"); err != nil {
		return nil, err
	}
	delete(f.objects, aws.ToString(params.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) CopyObject(ctx context.Context, params *s3.CopyObjectInput, optFns ...func(*s3.Options)) (*s3.CopyObjectOutput, error) {
	if err := f.fail("CopyObject"); err != nil {
		return nil, err
	}
	_, srcKey, _ := strings.Cut(aws.ToString(params.CopySource), "/")
	src, ok := f.objects[srcKey]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	dst := &fakeObject{body: src.body, contentType: src.contentType, metadata: copyMeta(src.metadata)}
	if params.MetadataDirective == types.MetadataDirectiveReplace {
		dst.metadata = copyMeta(params.Metadata)
		dst.contentType = aws.ToString(params.ContentType)
	}
	f.objects[aws.ToString(params.Key)] = dst
	return &s3.CopyObjectOutput{}, nil
}

var errMultipart = errors.New("multipart uploads are not supported by the fake")

func (f *fakeS3) CreateMultipartUpload(ctx context.Context, params *s3.CreateMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error) {
	return nil, errMultipart
}

func (f *fakeS3) UploadPart(ctx context.Context, params *s3.UploadPartInput, optFns ...func(*s3.Options)) (*s3.UploadPartOutput, error) {
	return nil, errMultipart
}

func (f *fakeS3) CompleteMultipartUpload(ctx context.Context, params *s3.CompleteMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error) {
	return nil, errMultipart
}

func (f *fakeS3) AbortMultipartUpload(ctx context.Context, params *s3.AbortMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error) {
	return nil, errMultipart
}

type fakePresigner struct{}

func (fakePresigner) PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	return &v4.PresignedHTTPRequest{
		URL:    "https://" + aws.ToString(params.Bucket) + ".example.com/" + aws.ToString(params.Key) + "?X-Amz-Signature=fake",
		Method: "GET",
	}, nil
}

var _ API = (*fakeS3)(nil)
