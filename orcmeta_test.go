package orcmeta

import (
	"context"
	"errors"
	"strings"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
)

func tag(num protowire.Number, typ protowire.Type) []byte {
	return protowire.AppendTag(nil, num, typ)
}

func varintField(num protowire.Number, v uint64) []byte {
	return protowire.AppendVarint(tag(num, protowire.VarintType), v)
}

func bytesField(num protowire.Number, v []byte) []byte {
	return protowire.AppendBytes(tag(num, protowire.BytesType), v)
}

func stringField(num protowire.Number, v string) []byte {
	return bytesField(num, []byte(v))
}

func intType(kind uint64) []byte { return varintField(1, kind) }

func streamMsg(kind, column, length uint64) []byte {
	var b []byte
	b = append(b, varintField(1, kind)...)
	b = append(b, varintField(2, column)...)
	b = append(b, varintField(3, length)...)
	return b
}

// buildFixture assembles an uncompressed single-stripe file with a
// struct<a:int> schema, file-level column statistics, and a stream directory
// laid out the way a writer would: stripe region (magic, index, data, stripe
// footer), then the file Footer, PostScript, and the trailing length byte.
func buildFixture(t *testing.T) []byte {
	t.Helper()

	// types[0] = struct<a:int>, types[1] = int
	structType := append(append([]byte{}, varintField(1, 12 /* Struct */)...), varintField(2, 1)...)
	structType = append(structType, stringField(3, "a")...)
	intT := intType(3) // Int

	var stats0, stats1 []byte
	stats0 = append(stats0, varintField(1, 5)...) // numberOfValues
	stats1 = append(stats1, varintField(1, 5)...)
	intStats := append(append([]byte{}, varintField(1, protowire.EncodeZigZag(1))...), varintField(2, protowire.EncodeZigZag(9))...)
	stats1 = append(stats1, bytesField(2, intStats)...)

	// One stripe: a 2-byte row index, then 1 present + 3 data bytes.
	var stripeFooter []byte
	stripeFooter = append(stripeFooter, bytesField(1, streamMsg(6 /* ROW_INDEX */, 0, 2))...)
	stripeFooter = append(stripeFooter, bytesField(1, streamMsg(0 /* PRESENT */, 1, 1))...)
	stripeFooter = append(stripeFooter, bytesField(1, streamMsg(1 /* DATA */, 1, 3))...)
	stripeFooter = append(stripeFooter, bytesField(2, varintField(1, 0 /* DIRECT */))...)
	stripeFooter = append(stripeFooter, bytesField(2, varintField(1, 2 /* DIRECT_V2 */))...)

	var stripeInfo []byte
	stripeInfo = append(stripeInfo, varintField(1, 3)...) // offset, past the magic
	stripeInfo = append(stripeInfo, varintField(2, 2)...) // indexLength
	stripeInfo = append(stripeInfo, varintField(3, 4)...) // dataLength
	stripeInfo = append(stripeInfo, varintField(4, uint64(len(stripeFooter)))...)
	stripeInfo = append(stripeInfo, varintField(5, 5)...) // numberOfRows

	var footer []byte
	footer = append(footer, bytesField(3, stripeInfo)...)
	footer = append(footer, bytesField(4, structType)...)
	footer = append(footer, bytesField(4, intT)...)
	footer = append(footer, varintField(6, 5)...) // numberOfRows
	footer = append(footer, bytesField(7, stats0)...)
	footer = append(footer, bytesField(7, stats1)...)

	var ps []byte
	ps = append(ps, varintField(1, uint64(len(footer)))...)
	ps = append(ps, varintField(2, uint64(CompressionNone))...)
	ps = append(ps, varintField(3, 65536)...)
	ps = append(ps, varintField(4, 0)...)
	ps = append(ps, varintField(4, 12)...)
	ps = append(ps, varintField(5, 0)...)
	ps = append(ps, varintField(6, 4)...)
	ps = append(ps, stringField(8000, "ORC")...)

	var file []byte
	file = append(file, "ORC"...)
	file = append(file, make([]byte, 2+4)...) // index and data regions, content unread
	file = append(file, stripeFooter...)
	file = append(file, footer...)
	file = append(file, ps...)
	file = append(file, byte(len(ps)))
	return file
}

func TestDecodeEndToEnd(t *testing.T) {
	file := buildFixture(t)

	res, err := Decode(context.Background(), file, ReadOptions{Schema: true, FileStats: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Rows != 5 {
		t.Errorf("Rows = %d, want 5", res.Rows)
	}
	if res.Compression != "NONE" {
		t.Errorf("Compression = %q, want NONE", res.Compression)
	}
	if want := "0.12 with HIVE-13083"; res.Version != want {
		t.Errorf("Version = %q, want %q", res.Version, want)
	}
	if want := "struct<a:int>"; res.Schema != want {
		t.Errorf("Schema = %q, want %q", res.Schema, want)
	}
	if len(res.FileStatistics) != 2 {
		t.Fatalf("len(FileStatistics) = %d, want 2", len(res.FileStatistics))
	}
	col := res.FileStatistics[1]
	if col.Minimum == nil || *col.Minimum != "1" {
		t.Errorf("FileStatistics[1].Minimum = %v, want 1", col.Minimum)
	}
	if col.Maximum == nil || *col.Maximum != "9" {
		t.Errorf("FileStatistics[1].Maximum = %v, want 9", col.Maximum)
	}
}

func TestDecodeWithoutOptionalSectionsOmitsThem(t *testing.T) {
	file := buildFixture(t)

	res, err := Decode(context.Background(), file, ReadOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Schema != "" {
		t.Errorf("Schema = %q, want empty when opts.Schema is false", res.Schema)
	}
	if res.FileStatistics != nil {
		t.Errorf("FileStatistics = %v, want nil when opts.FileStats is false", res.FileStatistics)
	}
}

func TestDecodeStripesEndToEnd(t *testing.T) {
	file := buildFixture(t)

	res, err := Decode(context.Background(), file, ReadOptions{Stripes: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Stripes) != 1 {
		t.Fatalf("len(Stripes) = %d, want 1", len(res.Stripes))
	}
	st := res.Stripes[0]
	if st.Offset != 3 || st.IndexLength != 2 || st.DataLength != 4 || st.NumberOfRows != 5 {
		t.Errorf("Stripe = %+v, unexpected location fields", st)
	}
	if len(st.Streams) != 3 {
		t.Fatalf("len(Streams) = %d, want 3", len(st.Streams))
	}
	wantStreams := []StreamEntry{
		{Kind: "ROW_INDEX", RawKind: 6, Column: 0, Length: 2, Start: 3},
		{Kind: "PRESENT", RawKind: 0, Column: 1, Length: 1, Start: 5},
		{Kind: "DATA", RawKind: 1, Column: 1, Length: 3, Start: 6},
	}
	for i, want := range wantStreams {
		if st.Streams[i] != want {
			t.Errorf("Streams[%d] = %+v, want %+v", i, st.Streams[i], want)
		}
	}
	if len(st.Encodings) != 2 || st.Encodings[0].Kind != "DIRECT" || st.Encodings[1].Kind != "DIRECT_V2" {
		t.Errorf("Encodings = %+v, unexpected", st.Encodings)
	}
}

func TestDecodeStripeStatsEndToEnd(t *testing.T) {
	// The Metadata section sits immediately before the Footer on disk and
	// is decoded only when stripe statistics are requested.
	var colStats []byte
	colStats = append(colStats, varintField(1, 7)...) // numberOfValues
	var stripeStats []byte
	stripeStats = append(stripeStats, bytesField(1, colStats)...)
	var metadata []byte
	metadata = append(metadata, bytesField(1, stripeStats)...)

	var footer []byte
	footer = append(footer, bytesField(4, intType(3))...)
	footer = append(footer, varintField(6, 7)...)

	var ps []byte
	ps = append(ps, varintField(1, uint64(len(footer)))...)
	ps = append(ps, varintField(2, uint64(CompressionNone))...)
	ps = append(ps, varintField(5, uint64(len(metadata)))...)
	ps = append(ps, varintField(6, 0)...)

	var file []byte
	file = append(file, metadata...)
	file = append(file, footer...)
	file = append(file, ps...)
	file = append(file, byte(len(ps)))

	res, err := Decode(context.Background(), file, ReadOptions{StripeStats: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.StripeStats) != 1 || len(res.StripeStats[0]) != 1 {
		t.Fatalf("StripeStats = %+v, want one stripe with one column", res.StripeStats)
	}
	got := res.StripeStats[0][0]
	if got.NumberOfValues == nil || *got.NumberOfValues != 7 {
		t.Errorf("NumberOfValues = %v, want 7", got.NumberOfValues)
	}
}

func TestDecodeEmptyStripesList(t *testing.T) {
	// A footer with no stripes at all: enabling Stripes yields an empty,
	// non-nil list, not an error.
	var footer []byte
	footer = append(footer, bytesField(4, intType(3))...)
	footer = append(footer, varintField(6, 0)...)

	var ps []byte
	ps = append(ps, varintField(1, uint64(len(footer)))...)
	ps = append(ps, varintField(2, uint64(CompressionNone))...)
	ps = append(ps, varintField(5, 0)...)
	ps = append(ps, varintField(6, 0)...)

	var file []byte
	file = append(file, footer...)
	file = append(file, ps...)
	file = append(file, byte(len(ps)))

	res, err := Decode(context.Background(), file, ReadOptions{Stripes: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Stripes == nil || len(res.Stripes) != 0 {
		t.Errorf("Stripes = %v, want empty non-nil list", res.Stripes)
	}
}

func TestReadMetadataMissingFileIsIOError(t *testing.T) {
	_, err := ReadMetadata(context.Background(), "/nonexistent/does-not-exist.orc", ReadOptions{})
	if err == nil {
		t.Fatal("ReadMetadata() on missing file: want error, got nil")
	}
	var orcErr *Error
	if !errors.As(err, &orcErr) {
		t.Fatalf("error is not *Error: %v", err)
	}
	if orcErr.Kind != ErrIO {
		t.Errorf("Kind = %v, want %v", orcErr.Kind, ErrIO)
	}
}

func TestDecodeTruncatedFileIsTruncatedError(t *testing.T) {
	_, err := Decode(context.Background(), []byte{0x09}, ReadOptions{})
	if err == nil {
		t.Fatal("Decode() on truncated input: want error, got nil")
	}
	var orcErr *Error
	if !errors.As(err, &orcErr) {
		t.Fatalf("error is not *Error: %v", err)
	}
	if orcErr.Kind != ErrTruncated {
		t.Errorf("Kind = %v, want %v", orcErr.Kind, ErrTruncated)
	}
	if !strings.Contains(orcErr.Error(), string(ErrTruncated)) {
		t.Errorf("Error() = %q, want it to mention %q", orcErr.Error(), ErrTruncated)
	}
}
