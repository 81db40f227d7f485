// Package attachments stores task documents in an S3-compatible bucket and
// resolves their public links.
package attachments

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// seams for tests
var (
	loadDefaultAWSConfig  = config.LoadDefaultConfig
	newS3ClientFromConfig = s3.NewFromConfig
)

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Options configures an S3Store.
type Options struct {
	Region         string
	AccessKey      string
	SecretKey      string
	BaseEndpoint   string
	Bucket         string
	PublicTemplate string
}

type S3Store struct {
	client   objectPutter
	bucket   string
	template string
}

func NewS3Store(ctx context.Context, o Options) (*S3Store, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(o.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			o.AccessKey,
			o.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(so *s3.Options) {
		if o.BaseEndpoint != "" {
			so.BaseEndpoint = aws.String(o.BaseEndpoint)
			// MinIO serves buckets under the path, not a subdomain
			so.UsePathStyle = true
		}
	})

	return &S3Store{client: client, bucket: o.Bucket, template: o.PublicTemplate}, nil
}

// PutObject writes data under key, replacing any existing object.
func (s *S3Store) PutObject(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}

// PublicURL expands the {bucket} and {key} placeholders of the configured template.
func (s *S3Store) PublicURL(key string) string {
	r := strings.NewReplacer("{bucket}", url.PathEscape(s.bucket), "{key}", url.PathEscape(key))
	return r.Replace(s.template)
}

// ObjectKey names the object for a task's upload: {taskID}_{unixMillis}.{ext}.
// A file name without an extension gets "bin".
func ObjectKey(taskID, fileName string, at time.Time) string {
	ext := "bin"
	if i := strings.LastIndex(fileName, "."); i >= 0 && i < len(fileName)-1 {
		ext = fileName[i+1:]
	}
	return fmt.Sprintf("%s_%d.%s", taskID, at.UnixMilli(), ext)
}
