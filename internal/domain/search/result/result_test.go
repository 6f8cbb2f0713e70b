package result

import (
	"testing"

	"github.com/kailas-cloud/clinicdex/internal/domain/clinic"
)

func TestOutcome_RecordsAndIDs(t *testing.T) {
	o := Outcome{Results: []Scored{
		{Record: clinic.Record{ID: "b", Name: "Beta"}, Score: 3},
		{Record: clinic.Record{ID: "a", Name: "Alpha"}, Score: 1},
	}}

	recs := o.Records()
	if len(recs) != 2 || recs[0].Name != "Beta" || recs[1].Name != "Alpha" {
		t.Errorf("Records() = %+v", recs)
	}
	ids := o.IDs()
	if len(ids) != 2 || ids[0] != "b" || ids[1] != "a" {
		t.Errorf("IDs() = %v", ids)
	}
}

func TestOutcome_Empty(t *testing.T) {
	var o Outcome
	if len(o.Records()) != 0 || len(o.IDs()) != 0 {
		t.Error("empty outcome should produce empty slices")
	}
}
