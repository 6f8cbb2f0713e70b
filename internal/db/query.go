package db

import (
	"fmt"
	"strconv"
	"strings"
)

// QueryBuilder composes an FT.SEARCH query string from AND-ed predicates.
// Empty predicates are skipped; a builder with none renders as "*".
type QueryBuilder struct {
	parts []string
}

// NewQuery starts an empty query.
func NewQuery() *QueryBuilder {
	return &QueryBuilder{}
}

// Tag adds an exact TAG match: @field:{value}.
func (q *QueryBuilder) Tag(field, value string) *QueryBuilder {
	if value == "" {
		return q
	}
	q.parts = append(q.parts, fmt.Sprintf("@%s:{%s}", field, EscapeTag(value)))
	return q
}

// GeoRadius adds @field:[lon lat radius km].
func (q *QueryBuilder) GeoRadius(field string, lon, lat, radiusKm float64) *QueryBuilder {
	q.parts = append(q.parts, fmt.Sprintf("@%s:[%s %s %s km]", field,
		strconv.FormatFloat(lon, 'f', 6, 64),
		strconv.FormatFloat(lat, 'f', 6, 64),
		strconv.FormatFloat(radiusKm, 'f', -1, 64),
	))
	return q
}

// Prefix adds a TEXT prefix match on any of words: @field:(a*|b*).
// Words shorter than two characters are skipped because the engine
// rejects them as prefixes.
func (q *QueryBuilder) Prefix(field string, words ...string) *QueryBuilder {
	alts := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if len([]rune(w)) < 2 {
			continue
		}
		alts = append(alts, EscapeQuery(w)+"*")
	}
	if len(alts) == 0 {
		return q
	}
	q.parts = append(q.parts, fmt.Sprintf("@%s:(%s)", field, strings.Join(alts, "|")))
	return q
}

// AnyOf adds the union of the given sub-queries as one predicate.
// Sub-queries without predicates are skipped.
func (q *QueryBuilder) AnyOf(subs ...*QueryBuilder) *QueryBuilder {
	alts := make([]string, 0, len(subs))
	for _, sub := range subs {
		if sub == nil || len(sub.parts) == 0 {
			continue
		}
		alts = append(alts, sub.String())
	}
	switch len(alts) {
	case 0:
	case 1:
		q.parts = append(q.parts, alts[0])
	default:
		q.parts = append(q.parts, "("+strings.Join(alts, " | ")+")")
	}
	return q
}

// String renders the query.
func (q *QueryBuilder) String() string {
	if len(q.parts) == 0 {
		return "*"
	}
	return strings.Join(q.parts, " ")
}

// EscapeTag escapes a TAG value.
func EscapeTag(s string) string {
	return tagEscaper.Replace(s)
}

// EscapeQuery escapes free text for a TEXT predicate.
func EscapeQuery(s string) string {
	return queryEscaper.Replace(s)
}

var tagEscaper = strings.NewReplacer(
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	" ", "\\ ",
)

var queryEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	`@`, `\@`,
	`{`, `\{`,
	`}`, `\}`,
	`(`, `\(`,
	`)`, `\)`,
	`|`, `\|`,
	`-`, `\-`,
	`~`, `\~`,
	`*`, `\*`,
	`[`, `\[`,
	`]`, `\]`,
	`!`, `\!`,
	`%`, `\%`,
	`^`, `\^`,
	`$`, `\$`,
	`<`, `\<`,
	`>`, `\>`,
	`=`, `\=`,
	`;`, `\;`,
	`+`, `\+`,
	`,`, `\,`,
	`.`, `\.`,
	`:`, `\:`,
)
