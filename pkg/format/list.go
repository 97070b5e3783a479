// Package format turns raw IGDB sub-structures into note field values.
package format

import (
	"strings"

	"github.com/josegonzalez/gamenote/pkg/filename"
	"github.com/josegonzalez/gamenote/pkg/gamenote"
)

// notAvailable is the provider's placeholder for an unknown list.
const notAvailable = "N/A"

// List renders items as an indented YAML list block.
// It returns Empty when items is empty or starts with "N/A".
// Linked items are sanitized and wrapped as [[Name]] cross-references.
func List(items []string, linkify bool) gamenote.Value {
	if len(items) == 0 || items[0] == notAvailable {
		return gamenote.Empty()
	}

	var b strings.Builder
	for _, item := range items {
		b.WriteString("\n  - ")
		b.WriteString(decorate(item, linkify))
	}
	return gamenote.Text(b.String())
}

func decorate(item string, linkify bool) string {
	item = strings.TrimSpace(item)
	if linkify {
		return "'[[" + filename.EscapeQuoted(filename.Sanitize(item)) + "]]'"
	}
	return "'" + filename.EscapeQuoted(item) + "'"
}

// ListFromProperty returns a list formatter that projects one property off
// each item, keeps the first occurrence of every value and formats the rest.
func ListFromProperty[T any](project func(T) string) func(items []T, linkify bool) gamenote.Value {
	return func(items []T, linkify bool) gamenote.Value {
		return List(unique(items, project), linkify)
	}
}

func unique[T any](items []T, project func(T) string) []string {
	seen := make(map[string]struct{}, len(items))
	values := make([]string, 0, len(items))
	for _, item := range items {
		v := project(item)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values
}

var (
	// NameList formats the name property of named sub-objects.
	NameList = ListFromProperty(func(n gamenote.Named) string { return n.Name })

	// URLList formats the url property of websites.
	URLList = ListFromProperty(func(w gamenote.Website) string { return w.URL })
)
