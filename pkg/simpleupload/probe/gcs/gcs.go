// Package gcs probes objects in Google Cloud Storage. Metadata comes from an
// object attrs lookup; object bodies are never fetched.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/tendant/simple-upload/pkg/simpleupload"
)

// Probe resolves gs://bucket/object URLs.
type Probe struct {
	client *storage.Client
}

// New creates a GCS prober using Application Default Credentials. The
// STORAGE_EMULATOR_HOST environment variable is honored, which keeps local
// setups and tests off the real service.
func New(ctx context.Context) (*Probe, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &Probe{client: client}, nil
}

// Close releases the underlying client connections.
func (p *Probe) Close() error { return p.client.Close() }

// SplitObjectURL decomposes a gs://bucket/object URL into its bucket and
// object name.
func SplitObjectURL(rawURL string) (bucket, object string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", &simpleupload.ProtocolError{URL: rawURL, Op: "parse", Err: err}
	}

	bucket = u.Host
	object = strings.TrimPrefix(u.Path, "/")
	if bucket == "" || object == "" {
		return "", "", &simpleupload.ProtocolError{URL: rawURL, Op: "parse", Err: errors.New("want gs://bucket/object")}
	}
	return bucket, object, nil
}

// Probe reports the stored content type and size of the addressed object.
func (p *Probe) Probe(ctx context.Context, rawURL string, _ simpleupload.ProbeOptions) (*simpleupload.ResourceMetadata, error) {
	bucket, object, err := SplitObjectURL(rawURL)
	if err != nil {
		return nil, err
	}

	attrs, err := p.client.Bucket(bucket).Object(object).Attrs(ctx)
	if err != nil {
		return nil, &simpleupload.ProtocolError{URL: rawURL, Op: "attrs", Err: err}
	}

	return &simpleupload.ResourceMetadata{
		ContentType: attrs.ContentType,
		Size:        attrs.Size,
	}, nil
}
