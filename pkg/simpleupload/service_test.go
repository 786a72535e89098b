package simpleupload_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-upload/pkg/simpleupload"
)

// fakeProber records its last call and returns canned results.
type fakeProber struct {
	lastURL  string
	lastOpts simpleupload.ProbeOptions
	calls    int
	meta     *simpleupload.ResourceMetadata
	err      error
}

func (f *fakeProber) Probe(ctx context.Context, rawURL string, opts simpleupload.ProbeOptions) (*simpleupload.ResourceMetadata, error) {
	f.lastURL = rawURL
	f.lastOpts = opts
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.meta, nil
}

func TestResolverCreation(t *testing.T) {
	tests := []struct {
		name        string
		options     []simpleupload.Option
		expectError bool
	}{
		{
			name:        "no probers should fail",
			options:     []simpleupload.Option{},
			expectError: true,
		},
		{
			name: "with prober should succeed",
			options: []simpleupload.Option{
				simpleupload.WithProber(simpleupload.SchemeHTTP, &fakeProber{}),
			},
			expectError: false,
		},
		{
			name: "with several probers should succeed",
			options: []simpleupload.Option{
				simpleupload.WithProber(simpleupload.SchemeHTTP, &fakeProber{}),
				simpleupload.WithProber(simpleupload.SchemeFTP, &fakeProber{}),
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver, err := simpleupload.New(tt.options...)
			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, resolver)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, resolver)
			}
		})
	}
}

func TestResolveDispatch(t *testing.T) {
	httpProber := &fakeProber{meta: &simpleupload.ResourceMetadata{ContentType: "text/html", Size: 10}}
	ftpProber := &fakeProber{meta: &simpleupload.ResourceMetadata{ContentType: "application/pdf", Size: 20}}

	resolver, err := simpleupload.New(
		simpleupload.WithProber(simpleupload.SchemeHTTP, httpProber),
		simpleupload.WithProber(simpleupload.SchemeFTP, ftpProber),
	)
	require.NoError(t, err)

	tests := []struct {
		name   string
		url    string
		target *fakeProber
	}{
		{"http goes to http prober", "http://example.com/a", httpProber},
		{"https goes to http prober", "https://example.com/a", httpProber},
		{"unknown scheme goes to http prober", "gopher://example.com/a", httpProber},
		{"ftp goes to ftp prober", "ftp://example.com/a.pdf", ftpProber},
		{"sftp goes to ftp prober", "sftp://example.com/a.pdf", ftpProber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.target.calls
			meta, err := resolver.Resolve(context.Background(), simpleupload.ResolveRequest{URL: tt.url})
			require.NoError(t, err)
			assert.NotNil(t, meta)
			assert.Equal(t, before+1, tt.target.calls)
			assert.Equal(t, tt.url, tt.target.lastURL)
		})
	}
}

func TestResolveEmptyURL(t *testing.T) {
	resolver, err := simpleupload.New(
		simpleupload.WithProber(simpleupload.SchemeHTTP, &fakeProber{}),
	)
	require.NoError(t, err)

	meta, err := resolver.Resolve(context.Background(), simpleupload.ResolveRequest{})
	assert.Nil(t, meta)
	assert.ErrorIs(t, err, simpleupload.ErrEmptyURL)
}

func TestResolveUnregisteredScheme(t *testing.T) {
	resolver, err := simpleupload.New(
		simpleupload.WithProber(simpleupload.SchemeHTTP, &fakeProber{meta: &simpleupload.ResourceMetadata{}}),
	)
	require.NoError(t, err)

	meta, err := resolver.Resolve(context.Background(), simpleupload.ResolveRequest{URL: "ftp://example.com/a"})
	assert.Nil(t, meta)
	assert.ErrorIs(t, err, simpleupload.ErrProberNotRegistered)
}

func TestResolvePropagatesBlockFlag(t *testing.T) {
	prober := &fakeProber{meta: &simpleupload.ResourceMetadata{}}
	resolver, err := simpleupload.New(
		simpleupload.WithProber(simpleupload.SchemeHTTP, prober),
	)
	require.NoError(t, err)

	_, err = resolver.Resolve(context.Background(), simpleupload.ResolveRequest{
		URL:             "https://example.com/a",
		BlockLocalAddrs: true,
	})
	require.NoError(t, err)
	assert.True(t, prober.lastOpts.BlockLocalAddrs)

	_, err = resolver.Resolve(context.Background(), simpleupload.ResolveRequest{
		URL: "https://example.com/a",
	})
	require.NoError(t, err)
	assert.False(t, prober.lastOpts.BlockLocalAddrs)
}

func TestResolvePropagatesProbeError(t *testing.T) {
	probeErr := &simpleupload.ProtocolError{URL: "https://example.com/a", Op: "head", Err: errors.New("connection refused")}
	resolver, err := simpleupload.New(
		simpleupload.WithProber(simpleupload.SchemeHTTP, &fakeProber{err: probeErr}),
	)
	require.NoError(t, err)

	meta, err := resolver.Resolve(context.Background(), simpleupload.ResolveRequest{URL: "https://example.com/a"})
	assert.Nil(t, meta)
	assert.True(t, simpleupload.IsProtocolError(err))
}

func TestProberRegistry(t *testing.T) {
	httpProber := &fakeProber{}
	resolver, err := simpleupload.New(
		simpleupload.WithProber(simpleupload.SchemeHTTP, httpProber),
	)
	require.NoError(t, err)

	got, err := resolver.GetProber(simpleupload.SchemeHTTP)
	require.NoError(t, err)
	assert.Same(t, httpProber, got)

	_, err = resolver.GetProber(simpleupload.SchemeGCS)
	assert.ErrorIs(t, err, simpleupload.ErrProberNotRegistered)

	gcsProber := &fakeProber{}
	resolver.RegisterProber(simpleupload.SchemeGCS, gcsProber)
	got, err = resolver.GetProber(simpleupload.SchemeGCS)
	require.NoError(t, err)
	assert.Same(t, gcsProber, got)
}
