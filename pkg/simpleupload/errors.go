package simpleupload

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrEmptyURL indicates a resolve request without a URL
	ErrEmptyURL = errors.New("url is required")

	// ErrProberNotRegistered indicates no prober handles the URL's scheme class
	ErrProberNotRegistered = errors.New("no prober registered for scheme")
)

// ProtocolError represents a transport- or protocol-level failure while
// probing a resource: malformed URL, unreachable host, failed FTP command.
type ProtocolError struct {
	URL string
	Op  string
	Err error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("probe operation %s failed for %s: %v", e.Op, e.URL, e.Err)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// HTTPStatusError represents a terminal HTTP response status of 300 or
// above observed by the HTTP probe.
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("probe of %s returned status %d", e.URL, e.StatusCode)
}

// BlockedAddressError represents a redirect or connect target refused by
// the local-address policy.
type BlockedAddressError struct {
	URL  string
	Addr string
}

func (e *BlockedAddressError) Error() string {
	return fmt.Sprintf("address %s for %s is blocked by policy", e.Addr, e.URL)
}

// IsBlockedAddress returns true if the error is, or wraps, a
// BlockedAddressError.
func IsBlockedAddress(err error) bool {
	var be *BlockedAddressError
	return errors.As(err, &be)
}

// IsProtocolError returns true if the error is, or wraps, a ProtocolError.
func IsProtocolError(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe)
}

// IsHTTPStatusError returns true if the error is, or wraps, an
// HTTPStatusError.
func IsHTTPStatusError(err error) bool {
	var se *HTTPStatusError
	return errors.As(err, &se)
}
