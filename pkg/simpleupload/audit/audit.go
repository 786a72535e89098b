// Package audit records the outcome of metadata probes for later review.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tendant/simple-upload/pkg/simpleupload"
)

// Probe outcomes recorded in the trail.
const (
	StatusOK      = "ok"
	StatusBlocked = "blocked"
	StatusError   = "error"
)

// Entry is one recorded probe outcome.
type Entry struct {
	ID          uuid.UUID `json:"id"`
	URL         string    `json:"url"`
	Scheme      string    `json:"scheme"`
	ContentType string    `json:"content_type,omitempty"`
	Size        int64     `json:"size"`
	Status      string    `json:"status"`
	Detail      string    `json:"detail,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Recorder persists probe outcomes.
type Recorder interface {
	Record(ctx context.Context, entry *Entry) error
	ListRecent(ctx context.Context, limit int) ([]*Entry, error)
}

// NewEntry summarizes one probe outcome. A refusal to contact a blocked
// address is recorded as StatusBlocked, every other failure as StatusError.
func NewEntry(rawURL string, class simpleupload.SchemeClass, meta *simpleupload.ResourceMetadata, probeErr error) *Entry {
	entry := &Entry{
		ID:        uuid.New(),
		URL:       rawURL,
		Scheme:    string(class),
		Size:      simpleupload.SizeUnknown,
		Status:    StatusOK,
		CreatedAt: time.Now().UTC(),
	}

	switch {
	case probeErr == nil:
		if meta != nil {
			entry.ContentType = meta.ContentType
			entry.Size = meta.Size
		}
	case simpleupload.IsBlockedAddress(probeErr):
		entry.Status = StatusBlocked
		entry.Detail = probeErr.Error()
	default:
		entry.Status = StatusError
		entry.Detail = probeErr.Error()
	}

	return entry
}
