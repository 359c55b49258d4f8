package orcmeta

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/orcmeta/orcmeta/internal/orcpb"
)

func strptr(s string) *string { return &s }

func TestProjectColumnStats(t *testing.T) {
	u5 := uint64(5)
	fls := false
	tt := []struct {
		name string
		in   *orcpb.ColumnStatistics
		want ColumnStats
	}{
		{
			name: "string min/max without sum",
			in: &orcpb.ColumnStatistics{
				NumberOfValues:    5,
				HasNumberOfValues: true,
				HasNull:           false,
				HasHasNull:        true,
				String:            &orcpb.StringStatistics{Minimum: "a", Maximum: "z"},
			},
			want: ColumnStats{
				NumberOfValues: &u5,
				HasNull:        &fls,
				Minimum:        strptr("a"),
				Maximum:        strptr("z"),
			},
		},
		{
			name: "integer with sum",
			in: &orcpb.ColumnStatistics{
				Integer: &orcpb.IntegerStatistics{
					Minimum: -3, HasMinimum: true,
					Maximum: 40, HasMaximum: true,
					Sum: 100, HasSum: true,
				},
			},
			want: ColumnStats{
				Minimum: strptr("-3"),
				Maximum: strptr("40"),
				Sum:     strptr("100"),
			},
		},
		{
			name: "double min only",
			in: &orcpb.ColumnStatistics{
				Double: &orcpb.DoubleStatistics{Minimum: 1.5, HasMinimum: true},
			},
			want: ColumnStats{Minimum: strptr("1.5")},
		},
		{
			name: "decimal string-encoded",
			in: &orcpb.ColumnStatistics{
				Decimal: &orcpb.DecimalStatistics{
					Minimum: "0.10", HasMinimum: true,
					Maximum: "9.99", HasMaximum: true,
					Sum: "12.34", HasSum: true,
				},
			},
			want: ColumnStats{
				Minimum: strptr("0.10"),
				Maximum: strptr("9.99"),
				Sum:     strptr("12.34"),
			},
		},
		{
			name: "date flagged min/max",
			in: &orcpb.ColumnStatistics{
				Date: &orcpb.DateStatistics{Minimum: 18000, HasMinimum: true, Maximum: 19000, HasMaximum: true},
			},
			want: ColumnStats{Minimum: strptr("18000"), Maximum: strptr("19000")},
		},
		{
			name: "no sub-statistics at all",
			in:   &orcpb.ColumnStatistics{},
			want: ColumnStats{},
		},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got := projectOneColumnStats(tc.in)
			if !cmp.Equal(got, tc.want) {
				t.Error(cmp.Diff(tc.want, got))
			}
		})
	}
}

func TestProjectStripeFooterStreamStarts(t *testing.T) {
	sf := &orcpb.StripeFooter{
		Streams: []*orcpb.Stream{
			{Kind: orcpb.RowIndex, Known: true, RawKind: 6, Column: 0, Length: 30},
			{Kind: orcpb.Present, Known: true, RawKind: 0, Column: 1, Length: 10},
			{Kind: orcpb.Data, Known: true, RawKind: 1, Column: 1, Length: 200},
		},
	}
	streams, _ := projectStripeFooter(sf, 1000)
	wantStarts := []uint64{1000, 1030, 1040}
	for i, want := range wantStarts {
		if streams[i].Start != want {
			t.Errorf("Streams[%d].Start = %d, want %d", i, streams[i].Start, want)
		}
	}
}

func TestProjectUnknownStreamKind(t *testing.T) {
	sf := &orcpb.StripeFooter{
		Streams: []*orcpb.Stream{{RawKind: 42, Column: 0, Length: 8}},
	}
	streams, _ := projectStripeFooter(sf, 0)
	if streams[0].Kind != "UNKNOWN(42)" {
		t.Errorf("Kind = %q, want UNKNOWN(42)", streams[0].Kind)
	}
	if streams[0].RawKind != 42 {
		t.Errorf("RawKind = %d, want 42", streams[0].RawKind)
	}
}
