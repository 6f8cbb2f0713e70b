// Package lexicon holds the medical vocabulary used for query expansion:
// misspelling corrections, synonym sets and phrase triggers.
//
// A Lexicon is immutable once built. Extending it produces a new value,
// so callers holding the old one are never affected.
package lexicon

import (
	"slices"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/kailas-cloud/clinicdex/internal/domain/search/normalize"
)

// Lexicon is a read-only set of lookup tables keyed by normalized strings.
type Lexicon struct {
	misspellings map[string]string
	synonyms     map[string][]string
	phrases      map[string][]string
	phraseKeys   []string
	vocabulary   []string
}

var builtin = New(builtinMisspellings, builtinSynonyms, builtinPhrases)

// Default returns the built-in dermatology and med-spa lexicon.
func Default() *Lexicon {
	return builtin
}

// New builds a Lexicon from raw tables. Keys and values are normalized;
// empty entries are dropped and value sets are deduplicated.
func New(misspellings map[string]string, synonyms, phrases map[string][]string) *Lexicon {
	l := &Lexicon{
		misspellings: make(map[string]string, len(misspellings)),
		synonyms:     make(map[string][]string, len(synonyms)),
		phrases:      make(map[string][]string, len(phrases)),
	}
	for from, to := range misspellings {
		from, to = normalize.Text(from), normalize.Text(to)
		if from == "" || to == "" || from == to {
			continue
		}
		l.misspellings[from] = to
	}
	mergeSets(l.synonyms, synonyms)
	mergeSets(l.phrases, phrases)
	l.index()
	return l
}

// Extend returns a new Lexicon with ext merged in. Extension misspellings
// override built-in ones; synonym and phrase sets are unioned.
func (l *Lexicon) Extend(ext Extension) *Lexicon {
	misspellings := make(map[string]string, len(l.misspellings)+len(ext.Misspellings))
	for k, v := range l.misspellings {
		misspellings[k] = v
	}
	for k, v := range ext.Misspellings {
		misspellings[k] = v
	}
	synonyms := cloneSets(l.synonyms)
	phrases := cloneSets(l.phrases)
	mergeSets(synonyms, ext.Synonyms)
	mergeSets(phrases, ext.Phrases)
	return New(misspellings, synonyms, phrases)
}

// Correct maps a normalized token to its canonical spelling.
// Unknown tokens are returned unchanged.
func (l *Lexicon) Correct(token string) string {
	if c, ok := l.misspellings[token]; ok {
		return c
	}
	return token
}

// Synonyms returns the synonym set of a canonical token, or nil.
func (l *Lexicon) Synonyms(token string) []string {
	return slices.Clone(l.synonyms[token])
}

// PhraseTerms returns the union of expansions of every phrase trigger
// contained in the normalized text. Matching is by substring.
func (l *Lexicon) PhraseTerms(text string) []string {
	if text == "" {
		return nil
	}
	var out []string
	for _, key := range l.phraseKeys {
		if strings.Contains(text, key) {
			out = append(out, l.phrases[key]...)
		}
	}
	return out
}

// Vocabulary returns every canonical term known to the lexicon, sorted.
func (l *Lexicon) Vocabulary() []string {
	return slices.Clone(l.vocabulary)
}

// Suggest ranks vocabulary terms that fuzzily contain the input as a
// subsequence, closest first. At most limit terms are returned.
func (l *Lexicon) Suggest(input string, limit int) []string {
	input = normalize.Text(input)
	if input == "" || limit <= 0 {
		return nil
	}
	ranks := fuzzy.RankFindNormalizedFold(input, l.vocabulary)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].Target < ranks[j].Target
	})
	if len(ranks) > limit {
		ranks = ranks[:limit]
	}
	out := make([]string, len(ranks))
	for i, r := range ranks {
		out[i] = r.Target
	}
	return out
}

func (l *Lexicon) index() {
	l.phraseKeys = make([]string, 0, len(l.phrases))
	for k := range l.phrases {
		l.phraseKeys = append(l.phraseKeys, k)
	}
	sort.Strings(l.phraseKeys)

	seen := make(map[string]struct{})
	add := func(term string) {
		if _, ok := seen[term]; !ok {
			seen[term] = struct{}{}
			l.vocabulary = append(l.vocabulary, term)
		}
	}
	for _, to := range l.misspellings {
		add(to)
	}
	for k, vs := range l.synonyms {
		add(k)
		for _, v := range vs {
			add(v)
		}
	}
	for k, vs := range l.phrases {
		add(k)
		for _, v := range vs {
			add(v)
		}
	}
	sort.Strings(l.vocabulary)
}

func mergeSets(dst, src map[string][]string) {
	for k, vs := range src {
		key := normalize.Text(k)
		if key == "" {
			continue
		}
		for _, v := range vs {
			v = normalize.Text(v)
			if v == "" || slices.Contains(dst[key], v) {
				continue
			}
			dst[key] = append(dst[key], v)
		}
	}
}

func cloneSets(m map[string][]string) map[string][]string {
	out := make(map[string][]string, len(m))
	for k, vs := range m {
		out[k] = slices.Clone(vs)
	}
	return out
}
