package utils

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/net/html"
)

// Match reports whether s matches pattern, where * matches any run of
// characters, ? matches exactly one, and \ escapes the next character.
// Compiled patterns are cached for repeated use.
func Match(pattern, s string) (bool, error) {
	re, err := compilePattern(pattern)
	if err != nil {
		return false, err
	}
	return re.MatchString(s), nil
}

var patternCache sync.Map

// compilePattern converts a wildcard pattern to an anchored regexp.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	if v, ok := patternCache.Load(pattern); ok {
		return v.(*regexp.Regexp), nil
	}

	var buf strings.Builder
	buf.WriteString("^")

	runes := []rune(pattern)
	for pos := 0; pos < len(runes); pos++ {
		switch runes[pos] {
		case '*':
			buf.WriteString(".*")
		case '?':
			buf.WriteString(".")
		case '\\':
			if pos+1 >= len(runes) {
				return nil, fmt.Errorf("trailing backslash in pattern %q", pattern)
			}
			pos++
			buf.WriteString(regexp.QuoteMeta(string(runes[pos])))
		default:
			buf.WriteString(regexp.QuoteMeta(string(runes[pos])))
		}
	}

	buf.WriteString("$")

	compiled, err := regexp.Compile(buf.String())
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", pattern, err)
	}

	patternCache.Store(pattern, compiled)
	return compiled, nil
}

// StripHTML removes markup from fragment and returns the remaining text with
// whitespace collapsed. Script and style bodies are dropped entirely, and
// character entities are decoded.
func StripHTML(fragment string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))

	var (
		buf  strings.Builder
		skip int // depth inside script/style elements
	)

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(buf.String()), " ")
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if tag := string(name); tag == "script" || tag == "style" {
				skip++
			}
			buf.WriteByte(' ')
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if tag := string(name); (tag == "script" || tag == "style") && skip > 0 {
				skip--
			}
			buf.WriteByte(' ')
		case html.SelfClosingTagToken:
			buf.WriteByte(' ')
		case html.TextToken:
			if skip == 0 {
				buf.Write(tokenizer.Text())
			}
		}
	}
}

// BuildURL merges params into base as query string values, preserving any
// query already present. Existing keys are overwritten.
func BuildURL(base string, params map[string]string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing base url %q: %w", base, err)
	}

	q := u.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}
