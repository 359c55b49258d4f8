package orcmeta

import (
	"strconv"

	"github.com/orcmeta/orcmeta/internal/orcpb"
	"github.com/orcmeta/orcmeta/internal/otail"
)

func formatInt(v int64) *string {
	s := strconv.FormatInt(v, 10)
	return &s
}

func formatFloat(v float64) *string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	return &s
}

// project assembles the public Result from the decoded tail trees,
// applying opts to decide which optional sections to include. Nothing in
// the returned Result references tail, so tail may be discarded
// immediately afterward.
func project(tail *otail.Tail, opts ReadOptions) (*Result, error) {
	res := &Result{
		Rows:        tail.Footer.NumberOfRows,
		Compression: tail.Compression.String(),
	}
	if len(tail.PostScript.Version) == 2 {
		res.Version = formatVersion(tail.PostScript.Version[0], tail.PostScript.Version[1], uint32(tail.PostScript.WriterVersion))
	}
	if tail.PostScript.HasCompressionBlockSize {
		res.CompressionSize = tail.PostScript.CompressionBlockSize
	}
	if tail.Footer.HasWriterTimezone {
		res.WriterTimezone = tail.Footer.WriterTimezone
	}
	if tail.Footer.HasCalendar {
		v := tail.Footer.Calendar
		res.Calendar = &v
	}

	if opts.Schema {
		s, err := Schema(tail.Footer.Types)
		if err != nil {
			return nil, err
		}
		res.Schema = s
	}

	if opts.FileStats {
		res.FileStatistics = projectColumnStats(tail.Footer.Statistics)
	}

	if opts.StripeStats && tail.Metadata != nil {
		res.StripeStats = make([][]ColumnStats, len(tail.Metadata.StripeStats))
		for i, ss := range tail.Metadata.StripeStats {
			res.StripeStats[i] = projectColumnStats(ss.ColStats)
		}
	}

	if opts.Stripes {
		res.Stripes = make([]StripeSummary, len(tail.Footer.Stripes))
		for i, si := range tail.Footer.Stripes {
			sum := StripeSummary{
				Offset:       si.Offset,
				IndexLength:  si.IndexLength,
				DataLength:   si.DataLength,
				FooterLength: si.FooterLength,
				NumberOfRows: si.NumberOfRows,
			}
			if i < len(tail.Stripes) {
				sum.Streams, sum.Encodings = projectStripeFooter(tail.Stripes[i], si.Offset)
			}
			res.Stripes[i] = sum
		}
	}

	return res, nil
}

func projectColumnStats(cs []*orcpb.ColumnStatistics) []ColumnStats {
	if len(cs) == 0 {
		return nil
	}
	out := make([]ColumnStats, len(cs))
	for i, c := range cs {
		out[i] = projectOneColumnStats(c)
	}
	return out
}

func projectOneColumnStats(c *orcpb.ColumnStatistics) ColumnStats {
	var out ColumnStats
	if c.HasNumberOfValues {
		v := c.NumberOfValues
		out.NumberOfValues = &v
	}
	if c.HasHasNull {
		v := c.HasNull
		out.HasNull = &v
	}
	switch {
	case c.Integer != nil:
		if c.Integer.HasMinimum {
			out.Minimum = formatInt(c.Integer.Minimum)
		}
		if c.Integer.HasMaximum {
			out.Maximum = formatInt(c.Integer.Maximum)
		}
		if c.Integer.HasSum {
			out.Sum = formatInt(c.Integer.Sum)
		}
	case c.Double != nil:
		if c.Double.HasMinimum {
			out.Minimum = formatFloat(c.Double.Minimum)
		}
		if c.Double.HasMaximum {
			out.Maximum = formatFloat(c.Double.Maximum)
		}
		if c.Double.HasSum {
			out.Sum = formatFloat(c.Double.Sum)
		}
	case c.String != nil:
		// String minimum and maximum are always present when the block
		// is; only sum is present-flagged on the wire.
		min, max := c.String.Minimum, c.String.Maximum
		out.Minimum = &min
		out.Maximum = &max
		if c.String.HasSum {
			out.Sum = formatInt(c.String.Sum)
		}
	case c.Decimal != nil:
		if c.Decimal.HasMinimum {
			v := c.Decimal.Minimum
			out.Minimum = &v
		}
		if c.Decimal.HasMaximum {
			v := c.Decimal.Maximum
			out.Maximum = &v
		}
		if c.Decimal.HasSum {
			v := c.Decimal.Sum
			out.Sum = &v
		}
	case c.Date != nil:
		if c.Date.HasMinimum {
			out.Minimum = formatInt(int64(c.Date.Minimum))
		}
		if c.Date.HasMaximum {
			out.Maximum = formatInt(int64(c.Date.Maximum))
		}
	}
	return out
}

// projectStripeFooter computes each stream's start offset by a running
// counter seeded at the stripe's own file offset; the file never stores
// per-stream absolute offsets.
func projectStripeFooter(sf *orcpb.StripeFooter, stripeOffset uint64) ([]StreamEntry, []EncodingEntry) {
	streams := make([]StreamEntry, len(sf.Streams))
	running := stripeOffset
	for i, s := range sf.Streams {
		streams[i] = StreamEntry{
			Kind:    s.String(),
			RawKind: s.RawKind,
			Column:  s.Column,
			Length:  s.Length,
			Start:   running,
		}
		running += s.Length
	}

	encodings := make([]EncodingEntry, len(sf.Columns))
	for i, ce := range sf.Columns {
		e := EncodingEntry{Kind: ce.Kind.String()}
		if ce.HasDictionarySize {
			v := ce.DictionarySize
			e.DictionarySize = &v
		}
		encodings[i] = e
	}
	return streams, encodings
}
