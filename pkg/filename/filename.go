// Package filename provides filename and vault path utilities for generated notes and covers.
package filename

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// illegalPattern matches characters that are unsafe in note and file names
	illegalPattern = regexp.MustCompile(`[\\,#%&{}/*<>$":@.|^\[\]]`)

	// separatorPattern matches runs of path separators
	separatorPattern = regexp.MustCompile(`[\\/]+`)
)

// Sanitize removes every filesystem-unsafe character from s.
// The result is empty when s contains only unsafe characters.
func Sanitize(s string) string {
	return illegalPattern.ReplaceAllString(s, "")
}

// EscapeQuoted doubles single quotes so s can be embedded in a single-quoted YAML scalar.
func EscapeQuoted(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// SplitExt splits a file name at its last dot.
// ok is false when the name has no dot.
func SplitExt(base string) (name, ext string, ok bool) {
	i := strings.LastIndex(base, ".")
	if i == -1 {
		return base, "", false
	}
	return base[:i], base[i+1:], true
}

// NormalizePath normalizes a vault-relative path: separators are collapsed to
// a single slash, leading and trailing slashes are removed, non-breaking spaces
// become spaces and the result is NFC normalized. The vault root is "/".
func NormalizePath(p string) string {
	p = separatorPattern.ReplaceAllString(p, "/")
	p = strings.Trim(p, "/")
	p = strings.ReplaceAll(p, "\u00a0", " ")
	p = norm.NFC.String(p)
	if p == "" {
		return "/"
	}
	return p
}

// SanitizePath trims p, drops a single trailing slash, sanitizes every
// segment independently and normalizes the result.
func SanitizePath(p string) string {
	p = strings.TrimSpace(p)
	p = strings.TrimSuffix(p, "/")

	segments := strings.Split(p, "/")
	for i, segment := range segments {
		segments[i] = Sanitize(segment)
	}
	return NormalizePath(strings.Join(segments, "/"))
}

// Join joins vault-relative path elements and normalizes the result.
func Join(elem ...string) string {
	return NormalizePath(strings.Join(elem, "/"))
}
