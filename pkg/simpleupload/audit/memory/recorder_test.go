package memory_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-upload/pkg/simpleupload/audit"
	"github.com/tendant/simple-upload/pkg/simpleupload/audit/memory"
)

func newEntry(n int) *audit.Entry {
	return &audit.Entry{
		ID:     uuid.New(),
		URL:    fmt.Sprintf("http://example.com/file-%d.pdf", n),
		Scheme: "http",
		Size:   int64(n),
		Status: audit.StatusOK,
	}
}

func TestRecordAndListRecent(t *testing.T) {
	recorder := memory.New()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		require.NoError(t, recorder.Record(ctx, newEntry(i)))
	}

	entries, err := recorder.ListRecent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest first
	assert.Equal(t, "http://example.com/file-3.pdf", entries[0].URL)
	assert.Equal(t, "http://example.com/file-1.pdf", entries[2].URL)
}

func TestListRecentLimit(t *testing.T) {
	recorder := memory.New()
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		require.NoError(t, recorder.Record(ctx, newEntry(i)))
	}

	entries, err := recorder.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(5), entries[0].Size)
	assert.Equal(t, int64(4), entries[1].Size)
}

func TestCapacityEvictsOldest(t *testing.T) {
	recorder := memory.NewWithCapacity(2)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		require.NoError(t, recorder.Record(ctx, newEntry(i)))
	}

	entries, err := recorder.ListRecent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "http://example.com/file-3.pdf", entries[0].URL)
	assert.Equal(t, "http://example.com/file-2.pdf", entries[1].URL)
}

func TestRecordStoresCopy(t *testing.T) {
	recorder := memory.New()
	ctx := context.Background()

	entry := newEntry(1)
	require.NoError(t, recorder.Record(ctx, entry))

	entry.URL = "http://example.com/mutated"

	entries, err := recorder.ListRecent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "http://example.com/file-1.pdf", entries[0].URL)
}
