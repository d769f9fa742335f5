package seed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"bucketlist/internal/core/config"
)

type Source interface {
	Name() string
	Open(ctx context.Context) (io.ReadCloser, error)
}

type EmbeddedSource struct{}

func (EmbeddedSource) Name() string { return "embedded" }

func (EmbeddedSource) Open(context.Context) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(embeddedCatalog)), nil
}

type FileSource struct{ Path string }

func (s FileSource) Name() string { return "file:" + s.Path }

func (s FileSource) Open(context.Context) (io.ReadCloser, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	return f, nil
}

// ObjectGetter s3.Client 的子集，便于测试替换
type ObjectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type S3Source struct {
	Client ObjectGetter
	Bucket string
	Key    string
}

func (s *S3Source) Name() string { return "s3://" + s.Bucket + "/" + s.Key }

func (s *S3Source) Open(ctx context.Context) (io.ReadCloser, error) {
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3 object %s: %w", s.Name(), err)
	}
	return out.Body, nil
}

// NewS3Client 有显式密钥用静态凭证，否则走默认链（环境变量 / IAM role）
func NewS3Client(ctx context.Context, c config.S3) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(c.Region)}
	if c.AccessKey != "" && c.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			// MinIO 等兼容存储
			o.BaseEndpoint = aws.String(c.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func NewSource(ctx context.Context, c config.Seed) (Source, error) {
	switch c.Source {
	case "", "embedded":
		return EmbeddedSource{}, nil
	case "file":
		if c.Path == "" {
			return nil, fmt.Errorf("seed.path is required for file source")
		}
		return FileSource{Path: c.Path}, nil
	case "s3":
		if c.S3.Bucket == "" || c.S3.Key == "" {
			return nil, fmt.Errorf("seed.s3.bucket and seed.s3.key are required for s3 source")
		}
		client, err := NewS3Client(ctx, c.S3)
		if err != nil {
			return nil, err
		}
		return &S3Source{Client: client, Bucket: c.S3.Bucket, Key: c.S3.Key}, nil
	default:
		return nil, fmt.Errorf("unknown seed source %q", c.Source)
	}
}

func Load(ctx context.Context, src Source) (*File, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return Parse(rc)
}
