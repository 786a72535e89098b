// Package simpleupload provides a reusable library for upload-handling
// services: resolving remote resource metadata (content type and byte size,
// never the body) with pluggable per-scheme probes, and a URL-safe secret
// token codec in the token subpackage.
//
// It exposes a single Resolver interface that classifies a URL once into a
// scheme class and dispatches to the prober registered for that class.
// Probe implementations (HTTP, FTP, S3, GCS) are provided under the probe
// subpackages; default network policy implementations live in netguard.
//
// Blocking Strategy
//
// Address blocking has two enforcement points, both pluggable. A
// RedirectPolicy is consulted on every redirect hop and can refuse targets
// by name or literal address. A ConnectionProvisioner supplies the dialer
// for every connection and checks the literal post-DNS socket address,
// which closes the DNS-rebinding hole redirect-time checks leave open.
// Both are interfaces so policy behavior can be tested with fakes instead
// of real sockets.
package simpleupload
