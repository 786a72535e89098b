package simpleupload

import (
	"context"
	"net"
	"net/http"
)

// Prober defines the interface for per-scheme probe backends
type Prober interface {
	// Probe returns the metadata for rawURL without transferring its body
	Probe(ctx context.Context, rawURL string, opts ProbeOptions) (*ResourceMetadata, error)
}

// DialFunc opens a single network connection. It matches the contract of
// net.Dialer.DialContext.
type DialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// RedirectPolicy decides, hop by hop, whether the HTTP probe may follow a
// redirect.
type RedirectPolicy interface {
	// CheckRedirect returns the function installed on the probe's
	// http.Client for a single resolution. Returning an error from that
	// function aborts the redirect chain and surfaces the error.
	CheckRedirect(originalURL string, blockLocalAddrs bool) func(req *http.Request, via []*http.Request) error
}

// ConnectionProvisioner supplies the dialer used for every connection a
// probe opens. Implementations that block local addresses here see the
// literal post-DNS socket address, which redirect-time checks alone do not
// (DNS rebinding).
type ConnectionProvisioner interface {
	// DialContext returns the dialer for connections belonging to one
	// resolution of a URL with the given scheme.
	DialContext(scheme string, blockLocalAddrs bool) DialFunc
}

// TypeResolver maps a file path to a content type. Probes for protocols
// that do not report one (FTP) use it. Empty string means unknown.
type TypeResolver interface {
	TypeByPath(path string) string
}
