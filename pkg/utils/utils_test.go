package utils

import (
	"encoding/json"
	"testing"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		input    string
		expected bool
	}{
		{
			name:     "exact match",
			pattern:  "application/pdf",
			input:    "application/pdf",
			expected: true,
		},
		{
			name:     "star matches suffix",
			pattern:  "image/*",
			input:    "image/png",
			expected: true,
		},
		{
			name:     "star matches prefix",
			pattern:  "*.example.com",
			input:    "cdn.example.com",
			expected: true,
		},
		{
			name:     "star crosses separators",
			pattern:  "http://*/file.pdf",
			input:    "http://host/deep/file.pdf",
			expected: true,
		},
		{
			name:     "question mark matches one character",
			pattern:  "file-?.txt",
			input:    "file-1.txt",
			expected: true,
		},
		{
			name:     "question mark rejects two characters",
			pattern:  "file-?.txt",
			input:    "file-12.txt",
			expected: false,
		},
		{
			name:     "mismatch",
			pattern:  "image/*",
			input:    "video/mp4",
			expected: false,
		},
		{
			name:     "escaped star is literal",
			pattern:  `\*`,
			input:    "*",
			expected: true,
		},
		{
			name:     "escaped star rejects other characters",
			pattern:  `\*`,
			input:    "x",
			expected: false,
		},
		{
			name:     "regexp metacharacters are literal",
			pattern:  "a+b",
			input:    "a+b",
			expected: true,
		},
		{
			name:     "empty pattern matches empty string",
			pattern:  "",
			input:    "",
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Match(tt.pattern, tt.input)
			if err != nil {
				t.Fatalf("Match(%q, %q) returned error: %v", tt.pattern, tt.input, err)
			}
			if result != tt.expected {
				t.Errorf("Match(%q, %q) = %v, want %v", tt.pattern, tt.input, result, tt.expected)
			}
		})
	}
}

func TestMatchTrailingBackslash(t *testing.T) {
	if _, err := Match(`broken\`, "broken"); err == nil {
		t.Error("expected error for trailing backslash, got nil")
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text",
			input:    "plain text",
			expected: "plain text",
		},
		{
			name:     "simple tags",
			input:    "<p>Hello <b>world</b></p>",
			expected: "Hello world",
		},
		{
			name:     "entities decoded",
			input:    "a &amp; b",
			expected: "a & b",
		},
		{
			name:     "script body dropped",
			input:    "<p>keep</p><script>var x = 1;</script><p>done</p>",
			expected: "keep done",
		},
		{
			name:     "style body dropped",
			input:    "<style>.a{color:red}</style>text",
			expected: "text",
		},
		{
			name:     "self-closing tag separates words",
			input:    "line one<br/>line two",
			expected: "line one line two",
		},
		{
			name:     "attributes removed",
			input:    `<a href="http://example.com">link</a>`,
			expected: "link",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := StripHTML(tt.input)
			if result != tt.expected {
				t.Errorf("StripHTML(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		params   map[string]string
		expected string
	}{
		{
			name:     "adds query",
			base:     "http://example.com/path",
			params:   map[string]string{"a": "1"},
			expected: "http://example.com/path?a=1",
		},
		{
			name:     "merges with existing query",
			base:     "http://example.com/path?a=1",
			params:   map[string]string{"b": "2"},
			expected: "http://example.com/path?a=1&b=2",
		},
		{
			name:     "overwrites existing key",
			base:     "http://example.com/path?a=1",
			params:   map[string]string{"a": "2"},
			expected: "http://example.com/path?a=2",
		},
		{
			name:     "nil params keep base",
			base:     "http://example.com/p?x=1",
			params:   nil,
			expected: "http://example.com/p?x=1",
		},
		{
			name:     "values are encoded",
			base:     "http://example.com/search",
			params:   map[string]string{"q": "a b"},
			expected: "http://example.com/search?q=a+b",
		},
		{
			name:     "relative base",
			base:     "/api/v1/items",
			params:   map[string]string{"page": "2"},
			expected: "/api/v1/items?page=2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := BuildURL(tt.base, tt.params)
			if err != nil {
				t.Fatalf("BuildURL(%q) returned error: %v", tt.base, err)
			}
			if result != tt.expected {
				t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.params, result, tt.expected)
			}
		})
	}
}

func TestBuildURLInvalidBase(t *testing.T) {
	if _, err := BuildURL("http://%zz", map[string]string{"a": "1"}); err == nil {
		t.Error("expected error for invalid base URL, got nil")
	}
}
