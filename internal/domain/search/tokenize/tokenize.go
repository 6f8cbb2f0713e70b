// Package tokenize projects clinic records into normalized searchable text.
package tokenize

import (
	"strings"

	"github.com/kailas-cloud/clinicdex/internal/domain/clinic"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/normalize"
)

// Document is the searchable projection of one clinic.
type Document struct {
	// Text is every searchable field joined in fixed order and normalized.
	Text string
	// Words are the distinct whitespace-separated words of Text, in first-seen order.
	Words []string
	// Name is the normalized display name.
	Name string
	// Taxonomy is the normalized category and tags.
	Taxonomy string
}

// Tokenize builds the Document for r. Field order: name, address, city,
// state, category, tags, services, description. Empty fields are skipped.
// r is not modified.
func Tokenize(r *clinic.Record) Document {
	if r == nil {
		return Document{}
	}

	parts := make([]string, 0, 6+len(r.Tags)+len(r.Services))
	parts = appendNonEmpty(parts, r.Name, r.Address, r.City, r.State, r.Category)
	parts = appendNonEmpty(parts, r.Tags...)
	parts = appendNonEmpty(parts, r.Services...)
	parts = appendNonEmpty(parts, r.DescriptionText())

	taxonomy := appendNonEmpty(make([]string, 0, 1+len(r.Tags)), r.Category)
	taxonomy = appendNonEmpty(taxonomy, r.Tags...)

	text := normalize.Text(strings.Join(parts, " "))
	return Document{
		Text:     text,
		Words:    distinctWords(text),
		Name:     normalize.Text(r.Name),
		Taxonomy: normalize.Text(strings.Join(taxonomy, " ")),
	}
}

func appendNonEmpty(dst []string, values ...string) []string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			dst = append(dst, v)
		}
	}
	return dst
}

func distinctWords(text string) []string {
	fields := normalize.Words(text)
	seen := make(map[string]struct{}, len(fields))
	out := fields[:0]
	for _, w := range fields {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}
