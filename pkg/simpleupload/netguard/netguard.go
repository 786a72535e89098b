// Package netguard supplies the default network policy for probes:
// refusing loopback, private, and link-local targets at redirect time and
// again at socket-connect time.
package netguard

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"syscall"

	"github.com/tendant/simple-upload/pkg/simpleupload"
)

// maxRedirects mirrors the net/http default that installing a custom
// CheckRedirect replaces.
const maxRedirects = 10

// cgnat is the carrier-grade NAT range, which the net.IP predicates do not
// cover.
var cgnat = mustCIDR("100.64.0.0/10")

func mustCIDR(s string) *net.IPNet {
	_, n, err := net.ParseCIDR(s)
	if err != nil {
		panic(err)
	}
	return n
}

// IsLocalAddr reports whether ip belongs to a loopback, private,
// link-local, unspecified, or carrier-grade NAT range. IPv4-mapped IPv6
// addresses are classified by their embedded IPv4 address.
func IsLocalAddr(ip net.IP) bool {
	if ip == nil {
		return false
	}
	return ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsUnspecified() ||
		cgnat.Contains(ip)
}

// Guard implements simpleupload.RedirectPolicy and
// simpleupload.ConnectionProvisioner with the local-address rules above.
type Guard struct {
	resolver *net.Resolver
}

var (
	_ simpleupload.RedirectPolicy        = (*Guard)(nil)
	_ simpleupload.ConnectionProvisioner = (*Guard)(nil)
)

// New creates a Guard backed by the default stdlib resolver.
func New() *Guard {
	return &Guard{resolver: net.DefaultResolver}
}

// CheckRedirect returns the per-resolution redirect hook. It always
// enforces the hop limit; with blocking on it also resolves every redirect
// target and refuses those landing on local addresses. An unresolvable
// target is not refused here: the connect-time check still guards the
// dial that would follow.
func (g *Guard) CheckRedirect(originalURL string, blockLocalAddrs bool) func(req *http.Request, via []*http.Request) error {
	return func(req *http.Request, via []*http.Request) error {
		if len(via) >= maxRedirects {
			return fmt.Errorf("stopped after %d redirects", maxRedirects)
		}
		if !blockLocalAddrs {
			return nil
		}

		ips, err := g.lookup(req.Context(), req.URL.Hostname())
		if err != nil {
			return nil
		}
		for _, ip := range ips {
			if IsLocalAddr(ip) {
				return &simpleupload.BlockedAddressError{URL: originalURL, Addr: ip.String()}
			}
		}
		return nil
	}
}

func (g *Guard) lookup(ctx context.Context, host string) ([]net.IP, error) {
	if ip := net.ParseIP(host); ip != nil {
		return []net.IP{ip}, nil
	}

	addrs, err := g.resolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, err
	}
	ips := make([]net.IP, 0, len(addrs))
	for _, a := range addrs {
		ips = append(ips, a.IP)
	}
	return ips, nil
}

// DialContext returns the dialer for one resolution. With blocking on, a
// Control hook inspects the literal address chosen after DNS resolution,
// so a name that re-resolves to a local address between the redirect check
// and the connect is still refused.
func (g *Guard) DialContext(scheme string, blockLocalAddrs bool) simpleupload.DialFunc {
	if !blockLocalAddrs {
		d := &net.Dialer{}
		return d.DialContext
	}

	d := &net.Dialer{
		Control: func(network, address string, _ syscall.RawConn) error {
			host, _, err := net.SplitHostPort(address)
			if err != nil {
				host = address
			}
			if ip := net.ParseIP(host); ip != nil && IsLocalAddr(ip) {
				return &simpleupload.BlockedAddressError{Addr: ip.String()}
			}
			return nil
		},
	}
	return d.DialContext
}
