package orcmeta

// ReadOptions controls which optional sections of the tail are decoded and
// projected. The zero value decodes PostScript and Footer only, the
// cheapest possible call.
type ReadOptions struct {
	Schema      bool
	FileStats   bool
	StripeStats bool
	Stripes     bool
}

// Result is the language-neutral, independently-owned projection of an
// ORC file's tail metadata. It outlives the decoded Protocol Buffer trees
// that produced it: once built, nothing in Result references those trees.
type Result struct {
	Rows            uint64          `json:"rows"`
	Compression     string          `json:"compression"`
	Version         string          `json:"version,omitempty"`
	CompressionSize uint64          `json:"compression_size,omitempty"`
	Schema          string          `json:"schema,omitempty"`
	WriterTimezone  string          `json:"writer_timezone,omitempty"`
	Calendar        *uint32         `json:"calendar,omitempty"`
	FileStatistics  []ColumnStats   `json:"file_statistics,omitempty"`
	StripeStats     [][]ColumnStats `json:"stripe_statistics,omitempty"`
	Stripes         []StripeSummary `json:"stripes,omitempty"`
}

// ColumnStats is the projected form of one ColumnStatistics record. Every
// optional field is a pointer so its absence on the wire stays an absent
// JSON key rather than collapsing to a zero value.
type ColumnStats struct {
	NumberOfValues *uint64 `json:"number_of_values,omitempty"`
	HasNull        *bool   `json:"has_null,omitempty"`

	Minimum *string `json:"minimum,omitempty"`
	Maximum *string `json:"maximum,omitempty"`
	Sum     *string `json:"sum,omitempty"`
}

// StripeSummary is the projected view of one stripe: its on-disk location
// plus the stream and column-encoding directory from its StripeFooter.
type StripeSummary struct {
	Offset       uint64          `json:"offset"`
	IndexLength  uint64          `json:"index_length"`
	DataLength   uint64          `json:"data_length"`
	FooterLength uint64          `json:"footer_length"`
	NumberOfRows uint64          `json:"number_of_rows"`
	Streams      []StreamEntry   `json:"streams,omitempty"`
	Encodings    []EncodingEntry `json:"encodings,omitempty"`
}

// StreamEntry is one projected stream within a stripe, with its start
// offset computed by the projector's running counter; the file itself
// stores only per-stream lengths.
type StreamEntry struct {
	Kind    string `json:"kind"`
	RawKind uint32 `json:"raw_kind,omitempty"`
	Column  uint32 `json:"column"`
	Length  uint64 `json:"length"`
	Start   uint64 `json:"start"`
}

// EncodingEntry is one projected column-encoding descriptor.
type EncodingEntry struct {
	Kind           string  `json:"kind"`
	DictionarySize *uint32 `json:"dictionary_size,omitempty"`
}
