// Package http implements the HTTP(S) metadata probe: exactly one HEAD
// request per resolution, with redirect and connection policy supplied by
// pluggable collaborators.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/tendant/simple-upload/pkg/simpleupload"
)

// Config contains configuration for the HTTP probe
type Config struct {
	// RedirectPolicy decides, per resolution, whether redirect hops may
	// be followed. Required.
	RedirectPolicy simpleupload.RedirectPolicy

	// Provisioner supplies the socket dialer for every connection the
	// probe opens. Required.
	Provisioner simpleupload.ConnectionProvisioner

	// UserAgent is sent with probe requests when non-empty.
	UserAgent string
}

// Probe implements simpleupload.Prober for HTTP(S) URLs.
type Probe struct {
	redirects simpleupload.RedirectPolicy
	conns     simpleupload.ConnectionProvisioner
	userAgent string
}

// New creates a new HTTP probe
func New(cfg Config) (*Probe, error) {
	if cfg.RedirectPolicy == nil {
		return nil, fmt.Errorf("redirect policy is required")
	}
	if cfg.Provisioner == nil {
		return nil, fmt.Errorf("connection provisioner is required")
	}

	return &Probe{
		redirects: cfg.RedirectPolicy,
		conns:     cfg.Provisioner,
		userAgent: cfg.UserAgent,
	}, nil
}

// Probe issues one HEAD request for rawURL. Content-Type is reported
// verbatim; a missing or unparsable Content-Length yields SizeUnknown, not
// an error. The probe adds no retries and no timeout of its own.
func (p *Probe) Probe(ctx context.Context, rawURL string, opts simpleupload.ProbeOptions) (*simpleupload.ResourceMetadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return nil, &simpleupload.ProtocolError{URL: rawURL, Op: "parse", Err: err}
	}
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	// A fresh client per resolution: policy hooks are per-request values
	// and connections must not be pooled across policy boundaries.
	transport := &http.Transport{
		Proxy:             http.ProxyFromEnvironment,
		DialContext:       p.conns.DialContext(req.URL.Scheme, opts.BlockLocalAddrs),
		DisableKeepAlives: true,
	}
	defer transport.CloseIdleConnections()

	client := &http.Client{
		Transport:     transport,
		CheckRedirect: p.redirects.CheckRedirect(rawURL, opts.BlockLocalAddrs),
	}

	resp, err := client.Do(req)
	if err != nil {
		var blocked *simpleupload.BlockedAddressError
		if errors.As(err, &blocked) {
			// Connect-time refusals happen below the URL layer; fill
			// in the resource they were probing for.
			if blocked.URL == "" {
				blocked.URL = rawURL
			}
			return nil, blocked
		}
		return nil, &simpleupload.ProtocolError{URL: rawURL, Op: "head", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, &simpleupload.HTTPStatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	meta := &simpleupload.ResourceMetadata{
		ContentType: resp.Header.Get("Content-Type"),
		Size:        simpleupload.SizeUnknown,
	}
	if cl := resp.Header.Get("Content-Length"); cl != "" {
		if size, err := strconv.ParseInt(cl, 10, 64); err == nil && size >= 0 {
			meta.Size = size
		}
	}

	return meta, nil
}
