package simpleupload

import "strings"

// ClassifyURL maps a raw URL to the probe family that handles it. URLs
// whose lowercased prefix starts with "ftp" or "sftp" classify as
// SchemeFTP, object-store schemes get their own classes, and everything
// else falls through to SchemeHTTP.
func ClassifyURL(rawURL string) SchemeClass {
	u := strings.ToLower(strings.TrimSpace(rawURL))
	switch {
	case strings.HasPrefix(u, "ftp"), strings.HasPrefix(u, "sftp"):
		return SchemeFTP
	case strings.HasPrefix(u, "s3://"):
		return SchemeS3
	case strings.HasPrefix(u, "gs://"):
		return SchemeGCS
	default:
		return SchemeHTTP
	}
}
