// Package mimetypes provides a static extension-to-content-type table for
// probes of protocols that do not report a type themselves (FTP).
package mimetypes

import (
	"mime"
	"path"
	"strings"
)

// Table maps lowercase file extensions, leading dot included, to content
// types.
type Table map[string]string

// Default returns the built-in table covering the formats upload flows
// commonly see. The table, not the platform registry, answers first, so
// results stay stable across hosts.
func Default() Table {
	return Table{
		// documents
		".pdf":  "application/pdf",
		".txt":  "text/plain",
		".md":   "text/markdown",
		".rtf":  "application/rtf",
		".csv":  "text/csv",
		".html": "text/html",
		".htm":  "text/html",
		".xml":  "application/xml",
		".json": "application/json",
		".doc":  "application/msword",
		".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		".xls":  "application/vnd.ms-excel",
		".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		".ppt":  "application/vnd.ms-powerpoint",
		".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
		".odt":  "application/vnd.oasis.opendocument.text",
		".ods":  "application/vnd.oasis.opendocument.spreadsheet",

		// images
		".png":  "image/png",
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".gif":  "image/gif",
		".webp": "image/webp",
		".svg":  "image/svg+xml",
		".bmp":  "image/bmp",
		".tif":  "image/tiff",
		".tiff": "image/tiff",
		".ico":  "image/x-icon",
		".heic": "image/heic",

		// audio
		".mp3":  "audio/mpeg",
		".wav":  "audio/wav",
		".ogg":  "audio/ogg",
		".flac": "audio/flac",
		".m4a":  "audio/mp4",

		// video
		".mp4":  "video/mp4",
		".mpeg": "video/mpeg",
		".mpg":  "video/mpeg",
		".mov":  "video/quicktime",
		".avi":  "video/x-msvideo",
		".webm": "video/webm",
		".mkv":  "video/x-matroska",

		// archives
		".zip": "application/zip",
		".gz":  "application/gzip",
		".tar": "application/x-tar",
		".7z":  "application/x-7z-compressed",
		".rar": "application/vnd.rar",
	}
}

// TypeByPath returns the content type for the extension of name, or an
// empty string when the extension is unknown. Remote paths use forward
// slashes, so the lookup goes through path, not filepath.
func (t Table) TypeByPath(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if ext == "" {
		return ""
	}
	if ct, ok := t[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return ""
}
