package s3_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-upload/pkg/simpleupload"
	s3probe "github.com/tendant/simple-upload/pkg/simpleupload/probe/s3"
)

func TestSplitObjectURL(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		wantBucket string
		wantKey    string
		expectErr  bool
	}{
		{
			name:       "bucket and key",
			url:        "s3://reports/2024/summary.pdf",
			wantBucket: "reports",
			wantKey:    "2024/summary.pdf",
		},
		{
			name:       "single segment key",
			url:        "s3://media/track.mp3",
			wantBucket: "media",
			wantKey:    "track.mp3",
		},
		{
			name:      "missing key",
			url:       "s3://media",
			expectErr: true,
		},
		{
			name:      "missing bucket",
			url:       "s3:///orphan.txt",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, key, err := s3probe.SplitObjectURL(tt.url)
			if tt.expectErr {
				require.Error(t, err)
				assert.True(t, simpleupload.IsProtocolError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBucket, bucket)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}

// newFakeS3 stands in for an S3-compatible endpoint. Path-style addressing
// keeps the bucket in the request path so a plain test server can route it.
func newFakeS3(t *testing.T, handler http.HandlerFunc) *s3probe.Probe {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := s3probe.New(context.Background(), s3probe.Config{
		Region:          "us-east-1",
		AccessKeyID:     "test",
		SecretAccessKey: "test",
		Endpoint:        srv.URL,
		UsePathStyle:    true,
	})
	require.NoError(t, err)
	return p
}

func TestProbeHeadObject(t *testing.T) {
	var gotMethod, gotPath string
	p := newFakeS3(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Length", strconv.Itoa(102400))
		w.WriteHeader(http.StatusOK)
	})

	meta, err := p.Probe(context.Background(), "s3://reports/2024/summary.pdf", simpleupload.ProbeOptions{})
	require.NoError(t, err)

	assert.Equal(t, http.MethodHead, gotMethod)
	assert.Equal(t, "/reports/2024/summary.pdf", gotPath)
	assert.Equal(t, "application/pdf", meta.ContentType)
	assert.Equal(t, int64(102400), meta.Size)
}

func TestProbeObjectMissing(t *testing.T) {
	p := newFakeS3(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	meta, err := p.Probe(context.Background(), "s3://reports/absent.pdf", simpleupload.ProbeOptions{})
	assert.Nil(t, meta)
	require.Error(t, err)

	var protoErr *simpleupload.ProtocolError
	require.ErrorAs(t, err, &protoErr)
	assert.Equal(t, "head", protoErr.Op)
}

func TestProbeBadURL(t *testing.T) {
	p := newFakeS3(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an unparseable URL")
	})

	_, err := p.Probe(context.Background(), "s3://bucketonly", simpleupload.ProbeOptions{})
	require.Error(t, err)

	var protoErr *simpleupload.ProtocolError
	require.ErrorAs(t, err, &protoErr)
	assert.Equal(t, "parse", protoErr.Op)
}
