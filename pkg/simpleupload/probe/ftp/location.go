package ftp

import (
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/tendant/simple-upload/pkg/simpleupload"
)

// DefaultPort is the control-channel port used when the URL carries none.
const DefaultPort = 21

// Location is the connection target parsed from an FTP or SFTP URL.
// Immutable once parsed.
type Location struct {
	Host string
	Port int
	// User and Pass stay empty when the URL carries no credentials;
	// probing then logs in anonymously.
	User string
	Pass string
	// Path is the absolute remote path, "/" when the URL has none.
	Path string
}

// Addr renders the dial target as host:port.
func (l *Location) Addr() string {
	return net.JoinHostPort(l.Host, strconv.Itoa(l.Port))
}

// ParseLocation splits rawURL into its FTP connection parts. SFTP URLs
// parse identically, default port included.
func ParseLocation(rawURL string) (*Location, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &simpleupload.ProtocolError{URL: rawURL, Op: "parse", Err: err}
	}
	if u.Hostname() == "" {
		return nil, &simpleupload.ProtocolError{URL: rawURL, Op: "parse", Err: fmt.Errorf("missing host")}
	}

	loc := &Location{
		Host: u.Hostname(),
		Port: DefaultPort,
		Path: u.Path,
	}
	if p := u.Port(); p != "" {
		if port, err := strconv.Atoi(p); err == nil {
			loc.Port = port
		}
	}
	if u.User != nil {
		loc.User = u.User.Username()
		loc.Pass, _ = u.User.Password()
	}
	if loc.Path == "" {
		loc.Path = "/"
	}

	return loc, nil
}
