package simpleupload

// ResolveRequest contains parameters for resolving resource metadata.
type ResolveRequest struct {
	// URL of the remote resource. Required.
	URL string

	// BlockLocalAddrs, when true, refuses resolution that would target
	// loopback, private, or link-local addresses, whether directly, via
	// redirect, or via DNS.
	BlockLocalAddrs bool
}

// ProbeOptions carries per-call policy down to a prober.
type ProbeOptions struct {
	BlockLocalAddrs bool
}
