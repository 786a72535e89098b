package simpleupload

// SizeUnknown is the Size value reported when the origin does not disclose
// a usable byte size. It mirrors the net/http.Response.ContentLength
// convention.
const SizeUnknown int64 = -1

// SchemeClass names the probe family that handles a URL. A URL is
// classified exactly once per resolution; dispatch afterwards is a
// registry lookup on the class.
type SchemeClass string

const (
	// SchemeHTTP handles http, https, and any scheme without a more
	// specific probe (the catch-all).
	SchemeHTTP SchemeClass = "http"
	// SchemeFTP handles ftp and sftp URLs.
	SchemeFTP SchemeClass = "ftp"
	// SchemeS3 handles s3://bucket/key URLs.
	SchemeS3 SchemeClass = "s3"
	// SchemeGCS handles gs://bucket/object URLs.
	SchemeGCS SchemeClass = "gcs"
)

// ResourceMetadata describes a remote resource without transferring its
// body.
type ResourceMetadata struct {
	// ContentType is the type exactly as the origin reported it (HTTP
	// Content-Type header value, object-store attribute) or as mapped
	// from the file extension for protocols that report none (FTP).
	// Empty when nothing usable was reported.
	ContentType string `json:"content_type"`

	// Size is the resource size in bytes, or SizeUnknown when the origin
	// does not disclose one. An unknown size is not an error.
	Size int64 `json:"size"`
}

// SizeKnown reports whether the origin disclosed a byte size.
func (m ResourceMetadata) SizeKnown() bool {
	return m.Size >= 0
}
