package audit_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-upload/pkg/simpleupload"
	"github.com/tendant/simple-upload/pkg/simpleupload/audit"
)

func TestNewEntry(t *testing.T) {
	tests := []struct {
		name        string
		meta        *simpleupload.ResourceMetadata
		probeErr    error
		wantStatus  string
		wantType    string
		wantSize    int64
		wantDetail  bool
	}{
		{
			name:       "successful probe",
			meta:       &simpleupload.ResourceMetadata{ContentType: "application/pdf", Size: 102400},
			wantStatus: audit.StatusOK,
			wantType:   "application/pdf",
			wantSize:   102400,
		},
		{
			name:       "success with unknown size",
			meta:       &simpleupload.ResourceMetadata{ContentType: "text/html", Size: simpleupload.SizeUnknown},
			wantStatus: audit.StatusOK,
			wantType:   "text/html",
			wantSize:   simpleupload.SizeUnknown,
		},
		{
			name:       "blocked address",
			probeErr:   &simpleupload.BlockedAddressError{URL: "http://internal/x", Addr: "127.0.0.1"},
			wantStatus: audit.StatusBlocked,
			wantSize:   simpleupload.SizeUnknown,
			wantDetail: true,
		},
		{
			name:       "protocol failure",
			probeErr:   &simpleupload.ProtocolError{URL: "ftp://host/x", Op: "connect", Err: errors.New("refused")},
			wantStatus: audit.StatusError,
			wantSize:   simpleupload.SizeUnknown,
			wantDetail: true,
		},
		{
			name:       "status failure",
			probeErr:   &simpleupload.HTTPStatusError{URL: "http://host/x", StatusCode: 404},
			wantStatus: audit.StatusError,
			wantSize:   simpleupload.SizeUnknown,
			wantDetail: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := audit.NewEntry("http://example.com/file.pdf", simpleupload.SchemeHTTP, tt.meta, tt.probeErr)
			require.NotNil(t, entry)

			assert.NotEqual(t, uuid.Nil, entry.ID)
			assert.Equal(t, "http://example.com/file.pdf", entry.URL)
			assert.Equal(t, "http", entry.Scheme)
			assert.Equal(t, tt.wantStatus, entry.Status)
			assert.Equal(t, tt.wantType, entry.ContentType)
			assert.Equal(t, tt.wantSize, entry.Size)
			assert.False(t, entry.CreatedAt.IsZero())
			if tt.wantDetail {
				assert.NotEmpty(t, entry.Detail)
			} else {
				assert.Empty(t, entry.Detail)
			}
		})
	}
}
