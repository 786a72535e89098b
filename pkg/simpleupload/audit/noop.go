package audit

import "context"

// NoopRecorder is a no-operation implementation of Recorder
// Useful when probe auditing is not wanted
type NoopRecorder struct{}

// NewNoopRecorder creates a new no-operation recorder
func NewNoopRecorder() Recorder {
	return &NoopRecorder{}
}

func (n *NoopRecorder) Record(ctx context.Context, entry *Entry) error {
	return nil
}

func (n *NoopRecorder) ListRecent(ctx context.Context, limit int) ([]*Entry, error) {
	return nil, nil
}
