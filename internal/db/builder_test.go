package db

import (
	"strings"
	"testing"
)

func TestIndexBuilder_Simple(t *testing.T) {
	idx := NewIndex("test-idx").
		Prefix("doc:").
		Tag("category").
		Text("name").
		MustBuild()

	if err := idx.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.Name != "test-idx" {
		t.Errorf("name = %q, want test-idx", idx.Name)
	}
	if idx.StorageType != StorageJSON {
		t.Errorf("storage = %q, want JSON", idx.StorageType)
	}
	if len(idx.Fields) != 2 {
		t.Fatalf("fields count = %d, want 2", len(idx.Fields))
	}
	if idx.Fields[0].Name != "category" || idx.Fields[0].Type != IndexFieldTag {
		t.Errorf("field[0] = %+v, want category TAG", idx.Fields[0])
	}
	if idx.Fields[1].Name != "name" || idx.Fields[1].Type != IndexFieldText {
		t.Errorf("field[1] = %+v, want name TEXT", idx.Fields[1])
	}
}

func TestIndexBuilder_ClinicSchema(t *testing.T) {
	idx := NewIndex("clinicdex:idx:clinics").
		Prefix("clinicdex:clinic:").
		Tag("$.state").As("state").
		Tag("$.city_key").As("city").
		Text("$.name").As("name").
		Geo("$.geo").As("location").
		MustBuild()

	if len(idx.Fields) != 4 {
		t.Fatalf("fields count = %d, want 4", len(idx.Fields))
	}
	geo := idx.Fields[3]
	if geo.Type != IndexFieldGeo || geo.Alias != "location" {
		t.Errorf("geo field = %+v", geo)
	}

	s := idx.String()
	for _, want := range []string{"ON JSON", "$.geo AS location GEO", "$.name AS name TEXT", "$.city_key AS city TAG"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}

func TestIndexBuilder_AsWithoutFields(t *testing.T) {
	b := NewIndex("idx").As("x")
	if len(b.def.Fields) != 0 {
		t.Errorf("As without a field should be a no-op, got %+v", b.def.Fields)
	}
}

func TestIndexBuilder_MultiplePrefixes(t *testing.T) {
	idx := NewIndex("multi-idx").
		Prefix("a:", "b:", "c:").
		Tag("x").
		MustBuild()

	if len(idx.Prefixes) != 3 {
		t.Errorf("prefix count = %d, want 3", len(idx.Prefixes))
	}
}

func TestIndexBuilder_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		builder func() (*IndexDefinition, error)
		wantErr string
	}{
		{
			name: "empty name",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("").Tag("x").Build()
			},
			wantErr: "index name is required",
		},
		{
			name: "no fields",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx").Build()
			},
			wantErr: "at least one field",
		},
		{
			name: "duplicate alias",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx").Tag("$.a").As("x").Tag("$.b").As("x").Build()
			},
			wantErr: "duplicate field name",
		},
		{
			name: "invalid characters",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx with spaces").Tag("x").Build()
			},
			wantErr: "invalid characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got error %q, want containing %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestIndexDefinition_String(t *testing.T) {
	idx := NewIndex("my-idx").
		Prefix("doc:").
		Tag("cat").
		Geo("loc").
		MustBuild()

	s := idx.String()
	if !strings.HasPrefix(s, "FT.CREATE ") {
		t.Errorf("expected FT.CREATE prefix, got %q", s)
	}
	if !strings.Contains(s, "my-idx") {
		t.Error("missing index name in string output")
	}
}

func TestIndexBuilder_Alias(t *testing.T) {
	idx := &IndexDefinition{
		Name:     "alias-idx",
		Prefixes: []string{"a:"},
		Fields: []IndexField{
			{Name: "$.field", Alias: "field", Type: IndexFieldTag},
		},
	}

	if err := idx.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.Fields[0].Alias != "field" {
		t.Errorf("alias = %q, want field", idx.Fields[0].Alias)
	}
}

func TestIndexBuilder_DuplicateFields(t *testing.T) {
	idx := &IndexDefinition{
		Name: "dup-idx",
		Fields: []IndexField{
			{Name: "field1", Type: IndexFieldTag},
			{Name: "field1", Type: IndexFieldText},
		},
	}

	if err := idx.Validate(); err == nil {
		t.Fatal("expected error for duplicate fields")
	}
}
