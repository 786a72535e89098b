// Package s3 probes objects in Amazon S3 or S3-compatible services such as
// MinIO. Metadata comes from a HeadObject request; object bodies are never
// fetched.
package s3

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/tendant/simple-upload/pkg/simpleupload"
)

// Config options for the S3 prober
type Config struct {
	Region          string // AWS region (default: us-east-1)
	AccessKeyID     string // AWS access key ID
	SecretAccessKey string // AWS secret access key
	Endpoint        string // Optional custom endpoint for S3-compatible services
	UsePathStyle    bool   // Use path-style addressing (default: false)
}

// Probe resolves s3://bucket/key URLs.
type Probe struct {
	client *s3.Client
}

// New creates an S3 prober. Static credentials are used when both key fields
// are set; otherwise the default AWS credential chain applies.
func New(ctx context.Context, config Config) (*Probe, error) {
	if config.Region == "" {
		config.Region = "us-east-1"
	}

	var awsCfg aws.Config
	var err error

	if config.AccessKeyID != "" && config.SecretAccessKey != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(config.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				config.AccessKeyID,
				config.SecretAccessKey,
				"",
			)),
		)
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(config.Region),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Custom endpoint for S3-compatible services (MinIO, etc.)
	var s3Options []func(*s3.Options)
	if config.Endpoint != "" {
		s3Options = append(s3Options, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(config.Endpoint)
			o.UsePathStyle = config.UsePathStyle
		})
	}

	return &Probe{client: s3.NewFromConfig(awsCfg, s3Options...)}, nil
}

// SplitObjectURL decomposes an s3://bucket/key URL into its bucket and key.
func SplitObjectURL(rawURL string) (bucket, key string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", &simpleupload.ProtocolError{URL: rawURL, Op: "parse", Err: err}
	}

	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", &simpleupload.ProtocolError{URL: rawURL, Op: "parse", Err: errors.New("want s3://bucket/key")}
	}
	return bucket, key, nil
}

// Probe reports the stored content type and size of the addressed object.
func (p *Probe) Probe(ctx context.Context, rawURL string, _ simpleupload.ProbeOptions) (*simpleupload.ResourceMetadata, error) {
	bucket, key, err := SplitObjectURL(rawURL)
	if err != nil {
		return nil, err
	}

	result, err := p.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, &simpleupload.ProtocolError{URL: rawURL, Op: "head", Err: err}
	}

	meta := &simpleupload.ResourceMetadata{
		ContentType: aws.ToString(result.ContentType),
		Size:        simpleupload.SizeUnknown,
	}
	if result.ContentLength != nil {
		meta.Size = *result.ContentLength
	}
	return meta, nil
}
