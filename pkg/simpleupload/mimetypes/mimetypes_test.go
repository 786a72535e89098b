package mimetypes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tendant/simple-upload/pkg/simpleupload/mimetypes"
)

func TestTypeByPath(t *testing.T) {
	table := mimetypes.Default()

	tests := []struct {
		name string
		path string
		want string
	}{
		{"pdf", "/reports/file.pdf", "application/pdf"},
		{"png", "images/photo.png", "image/png"},
		{"uppercase extension", "/DOCS/REPORT.PDF", "application/pdf"},
		{"mixed case", "archive.Zip", "application/zip"},
		{"jpeg alias", "pic.jpg", "image/jpeg"},
		{"nested remote path", "/srv/ftp/incoming/video.mp4", "video/mp4"},
		{"no extension", "/srv/ftp/README", ""},
		{"unknown extension", "data.qqq", ""},
		{"dotfile only", "/home/.bashrc", ""},
		{"trailing dot", "weird.", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.TypeByPath(tt.path))
		})
	}
}

func TestTypeByPathCustomTable(t *testing.T) {
	table := mimetypes.Table{".custom": "application/x-custom"}

	assert.Equal(t, "application/x-custom", table.TypeByPath("file.custom"))
	// Extensions absent from a custom table still fall back to the
	// platform registry; .pdf is registered everywhere Go runs.
	assert.Equal(t, "application/pdf", table.TypeByPath("file.pdf"))
}
