package locator

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/jkter/pcp/internal/config"
	"github.com/jkter/pcp/pkg/pcplog"
)

// s3Backend lists and opens metadata objects under a bucket/prefix in an
// S3-compatible object store, grounded on the teacher's (stub) S3Archive
// (pkg/archive/s3Backend.go) and fleshed out against the rest of the AWS
// SDK go.mod surface the teacher carries but never wires up.
type s3Backend struct {
	client *s3.Client
	bucket string
	prefix string
}

func newS3Backend(ctx context.Context, cfg config.LocatorConfig) (*s3Backend, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("locator: s3 backend requires bucket")
	}

	opts := []func(*awsconfig.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("locator: loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	pcplog.Debugf("locator: opened s3 backend bucket=%s prefix=%s", cfg.Bucket, cfg.Prefix)
	return &s3Backend{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

func (b *s3Backend) List(ctx context.Context) ([]string, error) {
	var names []string
	paginator := s3.NewListObjectsV2Paginator(b.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(b.bucket),
		Prefix: aws.String(b.prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("locator: listing s3 objects: %w", err)
		}
		for _, obj := range page.Contents {
			if obj.Key == nil {
				continue
			}
			names = append(names, strings.TrimPrefix(aws.ToString(obj.Key), b.prefix))
		}
	}
	return names, nil
}

func (b *s3Backend) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	key := b.prefix + name
	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("locator: getting s3 object %s: %w", key, err)
	}
	return out.Body, nil
}
