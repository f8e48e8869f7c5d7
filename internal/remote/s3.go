package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/gokturk078/cektakip/internal/common"
	"github.com/gokturk078/cektakip/internal/logging"
)

// S3Store keeps the snapshot as a single object in an S3-compatible bucket
// (MinIO works too). The object ETag is the version token; writes are
// conditional via If-Match, so a stale token is rejected by the service
// with 412 Precondition Failed.
type S3Store struct {
	client *s3.Client
	bucket string
	key    string
	log    logging.Logger
}

type S3Options struct {
	Bucket    string
	Key       string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

func NewS3Store(ctx context.Context, opts S3Options, log logging.Logger) (*S3Store, error) {
	if opts.AccessKey == "" || opts.SecretKey == "" {
		return nil, common.ErrNoCredential
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{client: client, bucket: opts.Bucket, key: opts.Key, log: log}, nil
}

func (s *S3Store) Fetch(ctx context.Context) (*Document, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &s.key,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrRemote, err)
	}
	defer out.Body.Close()

	content, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrRemote, err)
	}

	return &Document{Content: content, Token: etagToken(out.ETag)}, nil
}

func (s *S3Store) Put(ctx context.Context, content []byte, token string) (string, error) {
	in := &s3.PutObjectInput{
		Bucket: &s.bucket,
		Key:    &s.key,
		Body:   bytes.NewReader(content),
	}
	if token != "" {
		in.IfMatch = aws.String(`"` + token + `"`)
	} else {
		// First write: only succeed if nobody created the object meanwhile.
		in.IfNoneMatch = aws.String("*")
	}

	out, err := s.client.PutObject(ctx, in)
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "PreconditionFailed" {
			return "", fmt.Errorf("%w: %v", common.ErrVersionConflict, err)
		}
		return "", fmt.Errorf("%w: %v", common.ErrRemote, err)
	}

	return etagToken(out.ETag), nil
}

func etagToken(etag *string) string {
	if etag == nil {
		return ""
	}
	return strings.Trim(*etag, `"`)
}
