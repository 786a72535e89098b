// Package ftp implements the FTP/SFTP metadata probe. Size comes from the
// SIZE command on the control channel; content type from a static
// extension table, since FTP servers report none. No data connection is
// ever opened.
package ftp

import (
	"context"
	"time"

	"github.com/jlaffaye/ftp"

	"github.com/tendant/simple-upload/pkg/simpleupload"
	"github.com/tendant/simple-upload/pkg/simpleupload/mimetypes"
)

// RFC 1635 conventional credentials for URLs that carry none.
const (
	anonymousUser = "anonymous"
	anonymousPass = "anonymous"
)

// Config contains configuration for the FTP probe
type Config struct {
	// Types maps remote paths to content types. Defaults to the built-in
	// static table.
	Types simpleupload.TypeResolver

	// DialTimeout bounds the control-connection handshake when positive.
	// Zero keeps the no-internal-timeout contract; deadlines then come
	// only from the caller's context.
	DialTimeout time.Duration
}

// Probe implements simpleupload.Prober for FTP and SFTP URLs.
type Probe struct {
	types       simpleupload.TypeResolver
	dialTimeout time.Duration
}

// New creates a new FTP probe
func New(cfg Config) (*Probe, error) {
	types := cfg.Types
	if types == nil {
		types = mimetypes.Default()
	}

	return &Probe{
		types:       types,
		dialTimeout: cfg.DialTimeout,
	}, nil
}

// Probe opens one control connection, logs in, and issues SIZE for the
// located path. Every transport or command failure surfaces as a
// ProtocolError carrying the failed operation.
func (p *Probe) Probe(ctx context.Context, rawURL string, _ simpleupload.ProbeOptions) (*simpleupload.ResourceMetadata, error) {
	loc, err := ParseLocation(rawURL)
	if err != nil {
		return nil, err
	}

	dialOpts := []ftp.DialOption{ftp.DialWithContext(ctx)}
	if p.dialTimeout > 0 {
		dialOpts = append(dialOpts, ftp.DialWithTimeout(p.dialTimeout))
	}

	conn, err := ftp.Dial(loc.Addr(), dialOpts...)
	if err != nil {
		return nil, &simpleupload.ProtocolError{URL: rawURL, Op: "connect", Err: err}
	}
	defer conn.Quit()

	user, pass := loc.User, loc.Pass
	if user == "" {
		user, pass = anonymousUser, anonymousPass
	}
	if err := conn.Login(user, pass); err != nil {
		return nil, &simpleupload.ProtocolError{URL: rawURL, Op: "login", Err: err}
	}

	size, err := conn.FileSize(loc.Path)
	if err != nil {
		return nil, &simpleupload.ProtocolError{URL: rawURL, Op: "size", Err: err}
	}

	return &simpleupload.ResourceMetadata{
		ContentType: p.types.TypeByPath(loc.Path),
		Size:        size,
	}, nil
}
