// Package memory provides an in-memory audit recorder.
package memory

import (
	"context"
	"sync"

	"github.com/tendant/simple-upload/pkg/simpleupload/audit"
)

// DefaultCapacity bounds the trail when no explicit capacity is given.
const DefaultCapacity = 1024

// Recorder implements audit.Recorder using in-memory storage
type Recorder struct {
	mu       sync.RWMutex
	entries  []*audit.Entry
	capacity int
}

// New creates a new in-memory recorder holding up to DefaultCapacity entries.
func New() audit.Recorder {
	return NewWithCapacity(DefaultCapacity)
}

// NewWithCapacity creates a recorder that keeps only the newest capacity
// entries, discarding older ones as the trail grows.
func NewWithCapacity(capacity int) audit.Recorder {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Recorder{capacity: capacity}
}

func (r *Recorder) Record(ctx context.Context, entry *audit.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Store a copy to avoid external modifications
	entryCopy := *entry
	r.entries = append(r.entries, &entryCopy)
	if len(r.entries) > r.capacity {
		r.entries = r.entries[len(r.entries)-r.capacity:]
	}

	return nil
}

func (r *Recorder) ListRecent(ctx context.Context, limit int) ([]*audit.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.entries) {
		limit = len(r.entries)
	}

	// Entries arrive in order, so walk backwards for newest-first.
	result := make([]*audit.Entry, 0, limit)
	for i := len(r.entries) - 1; i >= len(r.entries)-limit; i-- {
		entryCopy := *r.entries[i]
		result = append(result, &entryCopy)
	}

	return result, nil
}
