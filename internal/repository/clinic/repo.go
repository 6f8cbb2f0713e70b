package clinic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/clinicdex/internal/db"
	"github.com/kailas-cloud/clinicdex/internal/domain"
	domclinic "github.com/kailas-cloud/clinicdex/internal/domain/clinic"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/normalize"
	logpkg "github.com/kailas-cloud/clinicdex/internal/logger"
	"github.com/kailas-cloud/clinicdex/internal/metrics"
)

// store is the consumer interface for clinic records (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONSetMulti(ctx context.Context, items []db.JSONSetItem) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchList(ctx context.Context, index, query string, offset, limit int, fields []string) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
}

// Repo is the record store: clinic JSON documents behind one FT index.
type Repo struct {
	store  store
	prefix string
}

// New creates a clinic repository. An empty prefix falls back to domain.KeyPrefix.
func New(s store, prefix string) *Repo {
	if prefix == "" {
		prefix = domain.KeyPrefix
	}
	return &Repo{store: s, prefix: prefix}
}

// EnsureIndex creates the clinic index unless it already exists.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	def := buildIndex(r.prefix)

	exists, err := r.store.IndexExists(ctx, def.Name)
	if err != nil {
		return fmt.Errorf("check index %s: %w", def.Name, err)
	}
	if exists {
		return nil
	}

	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index %s: %w", def.Name, err)
	}
	return nil
}

// Reindex drops the clinic index and creates it again. Documents are kept
// and re-indexed by the server in the background.
func (r *Repo) Reindex(ctx context.Context) error {
	name := indexName(r.prefix)
	if err := r.store.DropIndex(ctx, name); err != nil && !errors.Is(err, db.ErrIndexNotFound) {
		return fmt.Errorf("drop index %s: %w", name, err)
	}
	return r.EnsureIndex(ctx)
}

// IndexReady reports domain.ErrIndexUnavailable when the clinic index is missing.
func (r *Repo) IndexReady(ctx context.Context) error {
	name := indexName(r.prefix)
	exists, err := r.store.IndexExists(ctx, name)
	if err != nil {
		return fmt.Errorf("check index %s: %w", name, err)
	}
	if !exists {
		return fmt.Errorf("index %s: %w", name, domain.ErrIndexUnavailable)
	}
	return nil
}

// Fetch returns the candidate set matching the criteria hints, up to
// Criteria.Limit records (domain.DefaultFetchLimit when zero).
func (r *Repo) Fetch(ctx context.Context, c domclinic.Criteria) (domclinic.FetchResult, error) {
	c = c.Normalized()
	limit := c.Limit
	if limit <= 0 {
		limit = domain.DefaultFetchLimit
	}

	query := buildQuery(c)
	res, err := r.store.SearchList(ctx, indexName(r.prefix), query, 0, limit, []string{"$"})
	if err != nil {
		if errors.Is(err, db.ErrIndexNotFound) {
			return domclinic.FetchResult{}, fmt.Errorf("fetch clinics: %w: %w", domain.ErrIndexUnavailable, err)
		}
		return domclinic.FetchResult{}, fmt.Errorf("fetch clinics %q: %w", query, err)
	}
	if res == nil {
		return domclinic.FetchResult{}, nil
	}

	records := make([]domclinic.Record, 0, len(res.Entries))
	for _, entry := range res.Entries {
		rec, err := parseJSONDoc(entry.Fields["$"])
		if err != nil {
			metrics.SkippedRecordsTotal.Inc()
			logpkg.FromContext(ctx).Warn("Skipping unparsable clinic document",
				zap.String("key", entry.Key),
				zap.Error(err),
			)
			continue
		}
		if rec.ID == "" {
			rec.ID = strings.TrimPrefix(entry.Key, keyPrefix(r.prefix))
		}
		records = append(records, rec)
	}

	return domclinic.FetchResult{Records: records, Total: max(res.Total, len(records))}, nil
}

// Get returns a clinic by ID.
func (r *Repo) Get(ctx context.Context, id string) (domclinic.Record, error) {
	key := r.key(id)
	raw, err := r.store.JSONGet(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domclinic.Record{}, fmt.Errorf("clinic %s: %w", id, domain.ErrNotFound)
		}
		return domclinic.Record{}, fmt.Errorf("json.get %s: %w", key, err)
	}
	return parseJSONDoc(string(raw))
}

// Upsert creates or replaces a clinic. Returns true if created.
func (r *Repo) Upsert(ctx context.Context, rec *domclinic.Record) (bool, error) {
	if err := rec.Validate(); err != nil {
		return false, fmt.Errorf("%w: %w", domain.ErrInvalidRecord, err)
	}

	data, err := marshalRecord(rec)
	if err != nil {
		return false, err
	}

	key := r.key(rec.ID)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", key, err)
	}

	if err := r.store.JSONSet(ctx, key, "$", data); err != nil {
		return false, fmt.Errorf("json.set %s: %w", key, err)
	}
	return !exists, nil
}

// UpsertMany stores a batch of clinics in one pipeline. Every record is
// validated before anything is written.
func (r *Repo) UpsertMany(ctx context.Context, recs []domclinic.Record) error {
	if len(recs) == 0 {
		return nil
	}

	items := make([]db.JSONSetItem, 0, len(recs))
	for i := range recs {
		if err := recs[i].Validate(); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrInvalidRecord, err)
		}
		data, err := marshalRecord(&recs[i])
		if err != nil {
			return err
		}
		items = append(items, db.JSONSetItem{Key: r.key(recs[i].ID), Path: "$", Data: data})
	}

	if err := r.store.JSONSetMulti(ctx, items); err != nil {
		return fmt.Errorf("json.set batch of %d: %w", len(items), err)
	}
	return nil
}

// Delete removes a clinic. Deleting a missing clinic returns domain.ErrNotFound.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := r.key(id)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return fmt.Errorf("clinic %s: %w", id, domain.ErrNotFound)
	}
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// Count returns the number of indexed clinics.
func (r *Repo) Count(ctx context.Context) (int, error) {
	name := indexName(r.prefix)
	n, err := r.store.SearchCount(ctx, name, "*")
	if err != nil {
		if errors.Is(err, db.ErrIndexNotFound) {
			return 0, fmt.Errorf("index %s: %w", name, domain.ErrIndexUnavailable)
		}
		return 0, fmt.Errorf("count %s: %w", name, err)
	}
	return n, nil
}

func (r *Repo) key(id string) string {
	return keyPrefix(r.prefix) + id
}

// buildQuery translates criteria hints into FT.SEARCH predicates.
// The name hint matches a name token starting with any hint word, or a
// city equal to the whole hint.
func buildQuery(c domclinic.Criteria) string {
	q := db.NewQuery().
		Tag(fieldState, c.State).
		Tag(fieldCity, normalize.Text(c.City))
	if c.Near != nil {
		q.GeoRadius(fieldLocation, c.Near.Lng, c.Near.Lat, c.RadiusKm)
	}
	if hint := normalize.Text(c.NameHint); hint != "" {
		q.AnyOf(
			db.NewQuery().Prefix(fieldName, hintWords(hint)...),
			db.NewQuery().Tag(fieldCity, hint),
		)
	}
	return q.String()
}

// hintWords drops words the engine treats as stop words; a prefix on one
// of them matches nothing.
func hintWords(hint string) []string {
	words := normalize.Words(hint)
	out := words[:0]
	for _, w := range words {
		if _, stop := stopWords[w]; !stop {
			out = append(out, w)
		}
	}
	return out
}

// stopWords is the engine's default English stop-word list.
var stopWords = map[string]struct{}{
	"a": {}, "is": {}, "the": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"but": {}, "by": {}, "for": {}, "if": {}, "in": {}, "into": {}, "it": {}, "no": {}, "not": {},
	"of": {}, "on": {}, "or": {}, "such": {}, "that": {}, "their": {}, "then": {}, "there": {},
	"these": {}, "they": {}, "this": {}, "to": {}, "was": {}, "will": {}, "with": {},
}
