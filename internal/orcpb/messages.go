package orcpb

import "github.com/orcmeta/orcmeta/internal/codec"

// PostScript is ORC's terminal tail structure: it locates the Footer and
// Metadata and declares the compression in effect for both.
type PostScript struct {
	FooterLength            uint64
	Compression             codec.Kind
	CompressionBlockSize    uint64
	HasCompressionBlockSize bool
	Version                 []uint32
	MetadataLength          uint64
	WriterVersion           uint32
	HasWriterVersion        bool
	StripeStatisticsLength  uint64
	Magic                   string
}

// TypeKind enumerates the physical/logical kinds an ORC Type node may take.
type TypeKind uint8

const (
	Boolean TypeKind = iota
	Byte
	Short
	Int
	Long
	Float
	Double
	String
	Binary
	Timestamp
	List
	Map
	Struct
	Union
	Decimal
	Date
	Varchar
	Char
)

// Type is a tagged node in the Footer's type table. Subtypes are indices
// into the enclosing table, always strictly greater than the node's own
// index (the table is topologically sorted root-first at index 0).
type Type struct {
	Kind             TypeKind
	Subtypes         []uint32
	FieldNames       []string
	MaximumLength    uint32
	HasMaximumLength bool
	Precision        uint32
	HasPrecision     bool
	Scale            uint32
	HasScale         bool
}

// IntegerStatistics holds the optional integer-family statistics block of a
// ColumnStatistics.
type IntegerStatistics struct {
	Minimum    int64
	HasMinimum bool
	Maximum    int64
	HasMaximum bool
	Sum        int64
	HasSum     bool
}

// DoubleStatistics holds the optional double-family statistics block.
type DoubleStatistics struct {
	Minimum    float64
	HasMinimum bool
	Maximum    float64
	HasMaximum bool
	Sum        float64
	HasSum     bool
}

// StringStatistics holds the optional string-family statistics block.
// Minimum and maximum are present whenever the block is; only sum is
// present-flagged.
type StringStatistics struct {
	Minimum string
	Maximum string
	Sum     int64
	HasSum  bool
}

// DecimalStatistics holds the optional decimal-family statistics block;
// min, max, and sum are string-encoded on the wire.
type DecimalStatistics struct {
	Minimum    string
	HasMinimum bool
	Maximum    string
	HasMaximum bool
	Sum        string
	HasSum     bool
}

// DateStatistics holds the optional date-family statistics block.
type DateStatistics struct {
	Minimum    int32
	HasMinimum bool
	Maximum    int32
	HasMaximum bool
}

// BucketStatistics holds boolean-column true counts, one per stripe in file
// statistics, not otherwise surfaced by the projector.
type BucketStatistics struct {
	Count []uint64
}

// ColumnStatistics is a column-indexed statistics record, optionally
// carrying exactly one physical-type-family sub-statistics block.
//
// Binary and timestamp sub-statistics exist on the wire but are skipped
// as unknown fields since the projector never reads them.
type ColumnStatistics struct {
	NumberOfValues    uint64
	HasNumberOfValues bool
	HasNull           bool
	HasHasNull        bool

	Integer *IntegerStatistics
	Double  *DoubleStatistics
	String  *StringStatistics
	Bucket  *BucketStatistics
	Decimal *DecimalStatistics
	Date    *DateStatistics
}

// StripeInformation is one Footer.stripes[] entry: a stripe's location and
// size within the file.
type StripeInformation struct {
	Offset       uint64
	IndexLength  uint64
	DataLength   uint64
	FooterLength uint64
	NumberOfRows uint64
}

// UserMetadataItem is a single opaque writer-supplied key/value pair stored
// in the Footer.
type UserMetadataItem struct {
	Name  string
	Value []byte
}

// Footer is the file-level descriptor.
type Footer struct {
	HeaderLength      uint64
	ContentLength     uint64
	Stripes           []*StripeInformation
	Types             []*Type
	Metadata          []*UserMetadataItem
	NumberOfRows      uint64
	Statistics        []*ColumnStatistics
	RowIndexStride    uint32
	HasRowIndexStride bool
	WriterTimezone    string
	HasWriterTimezone bool
	Calendar          uint32
	HasCalendar       bool
}

// StreamKind enumerates the known kinds of per-column data stream within a
// stripe.
type StreamKind uint8

const (
	Present StreamKind = iota
	Data
	Length
	DictionaryData
	DictionaryCount
	Secondary
	RowIndex
	BloomFilter
	BloomFilterUTF8
	unknownStreamKind
)

// Stream describes one stream within a StripeFooter. RawKind is the
// undecoded protobuf enum value; Kind is only meaningful when Known is
// true, and an unrecognized kind is passed through by RawKind alone.
type Stream struct {
	Kind    StreamKind
	Known   bool
	RawKind uint32
	Column  uint32
	Length  uint64
}

// EncodingKind enumerates the known column-encoding schemes.
type EncodingKind uint8

const (
	DirectEncoding EncodingKind = iota
	DictionaryEncoding
	DirectV2Encoding
	DictionaryV2Encoding
)

// ColumnEncoding describes how one column's data stream is encoded.
type ColumnEncoding struct {
	Kind              EncodingKind
	DictionarySize    uint32
	HasDictionarySize bool
}

// StripeFooter is the per-stripe directory of streams and encodings.
type StripeFooter struct {
	Streams           []*Stream
	Columns           []*ColumnEncoding
	WriterTimezone    string
	HasWriterTimezone bool
}

// StripeStatistics lists per-column ColumnStatistics for a single stripe.
type StripeStatistics struct {
	ColStats []*ColumnStatistics
}

// Metadata is the optional tail section holding per-stripe statistics.
type Metadata struct {
	StripeStats []*StripeStatistics
}
