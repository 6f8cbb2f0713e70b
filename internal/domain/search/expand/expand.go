// Package expand turns a raw user query into the set of canonical search terms.
package expand

import (
	"sort"

	"github.com/kailas-cloud/clinicdex/internal/domain/search/lexicon"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/normalize"
)

// Terms is a deduplicated set of canonical search terms.
type Terms map[string]struct{}

// Sorted returns the terms in lexical order.
func (t Terms) Sorted() []string {
	out := make([]string, 0, len(t))
	for term := range t {
		out = append(out, term)
	}
	sort.Strings(out)
	return out
}

// Has reports whether term is in the set.
func (t Terms) Has(term string) bool {
	_, ok := t[term]
	return ok
}

func (t Terms) add(term string) {
	if term != "" {
		t[term] = struct{}{}
	}
}

// Expander expands queries against one Lexicon.
type Expander struct {
	lex *lexicon.Lexicon
}

// New creates an Expander. A nil lexicon means the built-in one.
func New(lex *lexicon.Lexicon) *Expander {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Expander{lex: lex}
}

// Expand returns the canonical terms for raw. A query made only of
// stripped content, such as "open now", yields an empty set.
func (e *Expander) Expand(raw string) Terms {
	cleaned := normalize.Query(raw)
	terms := make(Terms)
	if cleaned == "" {
		return terms
	}

	for _, term := range e.lex.PhraseTerms(cleaned) {
		terms.add(term)
	}

	for _, token := range normalize.Words(cleaned) {
		canonical := e.lex.Correct(token)
		terms.add(canonical)
		for _, syn := range e.lex.Synonyms(canonical) {
			terms.add(syn)
		}
	}
	return terms
}

// ExpandTerms expands raw with the built-in lexicon.
func ExpandTerms(raw string) Terms {
	return defaultExpander.Expand(raw)
}

var defaultExpander = New(nil)
