// internal/common/aws/s3.go
package aws

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3API is the subset of the S3 client the archive uses.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// DocumentArchive stores generated PDFs under a key prefix.
type DocumentArchive struct {
	client S3API
	bucket string
	prefix string
}

func NewDocumentArchive(client S3API, bucket, prefix string) *DocumentArchive {
	return &DocumentArchive{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

func NewDocumentArchiveFromConfig(cfg awssdk.Config, bucket, prefix string) *DocumentArchive {
	return NewDocumentArchive(s3.NewFromConfig(cfg), bucket, prefix)
}

// Key builds "<prefix>/<applicationID>/<name>.pdf".
func (a *DocumentArchive) Key(applicationID, name string) string {
	return path.Join(a.prefix, applicationID, name+".pdf")
}

// Put uploads a PDF and returns its s3:// location.
func (a *DocumentArchive) Put(ctx context.Context, key string, body []byte, metadata map[string]string) (string, error) {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:               awssdk.String(a.bucket),
		Key:                  awssdk.String(key),
		Body:                 bytes.NewReader(body),
		ContentLength:        awssdk.Int64(int64(len(body))),
		ContentType:          awssdk.String("application/pdf"),
		Metadata:             metadata,
		ServerSideEncryption: types.ServerSideEncryptionAes256,
	})
	if err != nil {
		return "", fmt.Errorf("put s3://%s/%s: %w", a.bucket, key, err)
	}
	return fmt.Sprintf("s3://%s/%s", a.bucket, key), nil
}
