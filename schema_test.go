package orcmeta

import (
	"testing"

	"github.com/orcmeta/orcmeta/internal/orcpb"
)

func TestSchemaSimple(t *testing.T) {
	types := []*orcpb.Type{
		{Kind: orcpb.Struct, Subtypes: []uint32{1}, FieldNames: []string{"x"}},
		{Kind: orcpb.Int},
	}
	got, err := Schema(types)
	if err != nil {
		t.Fatal(err)
	}
	if want := "struct<x:int>"; got != want {
		t.Errorf("Schema() = %q, want %q", got, want)
	}
}

func TestSchemaNested(t *testing.T) {
	// struct<a,b>, array<int>, int, map<string,double>, string, double
	types := []*orcpb.Type{
		{Kind: orcpb.Struct, Subtypes: []uint32{1, 3}, FieldNames: []string{"a", "b"}},
		{Kind: orcpb.List, Subtypes: []uint32{2}},
		{Kind: orcpb.Int},
		{Kind: orcpb.Map, Subtypes: []uint32{4, 5}},
		{Kind: orcpb.String},
		{Kind: orcpb.Double},
	}
	got, err := Schema(types)
	if err != nil {
		t.Fatal(err)
	}
	if want := "struct<a:array<int>,b:map<string,double>>"; got != want {
		t.Errorf("Schema() = %q, want %q", got, want)
	}
}

func TestSchemaPrimitiveSpellings(t *testing.T) {
	tt := []struct {
		kind orcpb.TypeKind
		want string
	}{
		{orcpb.Boolean, "boolean"},
		{orcpb.Byte, "byte"},
		{orcpb.Short, "tinyint"},
		{orcpb.Long, "bigint"},
		{orcpb.Binary, "binary"},
		{orcpb.Timestamp, "timestamp"},
		{orcpb.Date, "date"},
	}
	for _, tc := range tt {
		got, err := Schema([]*orcpb.Type{{Kind: tc.kind}})
		if err != nil {
			t.Fatal(err)
		}
		if got != tc.want {
			t.Errorf("Schema(%v) = %q, want %q", tc.kind, got, tc.want)
		}
	}
}

func TestSchemaParameterizedKindsRenderBare(t *testing.T) {
	// Decimal, varchar, and char render as bare names even when the type
	// node carries precision, scale, or a maximum length.
	tt := []struct {
		name string
		typ  *orcpb.Type
		want string
	}{
		{"decimal", &orcpb.Type{Kind: orcpb.Decimal, Precision: 10, HasPrecision: true, Scale: 2, HasScale: true}, "decimal"},
		{"varchar", &orcpb.Type{Kind: orcpb.Varchar, MaximumLength: 255, HasMaximumLength: true}, "varchar"},
		{"char", &orcpb.Type{Kind: orcpb.Char, MaximumLength: 10, HasMaximumLength: true}, "char"},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Schema([]*orcpb.Type{tc.typ})
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("Schema() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSchemaOutOfRangeSubtypeIndex(t *testing.T) {
	types := []*orcpb.Type{{Kind: orcpb.List, Subtypes: []uint32{5}}}
	if _, err := Schema(types); err == nil {
		t.Fatal("Schema() with out-of-range subtype: want error, got nil")
	}
}

func TestSchemaEmptyTypeTable(t *testing.T) {
	if _, err := Schema(nil); err == nil {
		t.Fatal("Schema(nil) want error, got nil")
	}
}
