package clinic

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	domclinic "github.com/kailas-cloud/clinicdex/internal/domain/clinic"
	"github.com/kailas-cloud/clinicdex/internal/domain/search/normalize"
)

// jsonDoc is the stored shape: the record plus derived index fields.
type jsonDoc struct {
	domclinic.Record
	CityKey string `json:"city_key,omitempty"`
	Geo     string `json:"geo,omitempty"`
}

func buildJSONDoc(r *domclinic.Record) jsonDoc {
	doc := jsonDoc{Record: *r}
	if r.City != "" {
		doc.CityKey = normalize.Text(r.City)
	}
	if r.Location != nil {
		// GEO fields take "lon,lat".
		doc.Geo = strconv.FormatFloat(r.Location.Lng, 'f', -1, 64) + "," +
			strconv.FormatFloat(r.Location.Lat, 'f', -1, 64)
	}
	return doc
}

func marshalRecord(r *domclinic.Record) ([]byte, error) {
	data, err := json.Marshal(buildJSONDoc(r))
	if err != nil {
		return nil, fmt.Errorf("marshal clinic %s: %w", r.ID, err)
	}
	return data, nil
}

// parseJSONDoc accepts both a bare object and the one-element array JSON.GET
// returns for JSONPath queries.
func parseJSONDoc(raw string) (domclinic.Record, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "[") {
		var docs []jsonDoc
		if err := json.Unmarshal([]byte(raw), &docs); err != nil {
			return domclinic.Record{}, fmt.Errorf("unmarshal clinic: %w", err)
		}
		if len(docs) == 0 {
			return domclinic.Record{}, fmt.Errorf("unmarshal clinic: empty result")
		}
		return docs[0].Record, nil
	}

	var doc jsonDoc
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return domclinic.Record{}, fmt.Errorf("unmarshal clinic: %w", err)
	}
	return doc.Record, nil
}
