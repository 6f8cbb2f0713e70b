package clinic

import (
	"github.com/kailas-cloud/clinicdex/internal/db"
)

// Index field aliases used by fetch queries.
const (
	fieldState    = "state"
	fieldCity     = "city"
	fieldName     = "name"
	fieldLocation = "location"
)

// buildIndex describes the clinic JSON index. TAG fields are case-insensitive,
// city is matched on its normalized form.
func buildIndex(prefix string) *db.IndexDefinition {
	return db.NewIndex(indexName(prefix)).
		Prefix(keyPrefix(prefix)).
		Tag("$.state").As(fieldState).
		Tag("$.city_key").As(fieldCity).
		Text("$.name").As(fieldName).
		Geo("$.geo").As(fieldLocation).
		MustBuild()
}

func indexName(prefix string) string {
	return prefix + "idx:clinics"
}

func keyPrefix(prefix string) string {
	return prefix + "clinic:"
}
