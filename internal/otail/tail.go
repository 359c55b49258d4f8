// Package otail sequences the ORC tail decode: PostScript, Footer,
// optional Metadata, optional per-stripe StripeFooters. One ordered chain
// of decode steps over a single backing byte region, each step wrapped in
// a span and logged at debug, aborting the whole decode on the first
// failure.
package otail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/orcmeta/orcmeta/internal/block"
	"github.com/orcmeta/orcmeta/internal/codec"
	"github.com/orcmeta/orcmeta/internal/orcpb"
	"github.com/orcmeta/orcmeta/internal/xlog"
)

var tracer = otel.Tracer("github.com/orcmeta/orcmeta/internal/otail")

// ErrTruncated is wrapped into every failure caused by a computed offset
// running off either end of the file.
var ErrTruncated = errors.New("otail: truncated or malformed tail")

// ErrAlloc is wrapped into failures caused by a declared size implying an
// allocation this package refuses to make.
var ErrAlloc = errors.New("otail: declared size too large")

// maxCompressionBlockSize bounds the PostScript's compressionBlockSize
// before it sizes a decompression buffer. Real writers use blocks of a few
// hundred KiB; anything near this limit is a corrupt or hostile file.
const maxCompressionBlockSize = 1 << 30

// Options mirrors the root package's ReadOptions without importing it (so
// otail has no dependency on the public API package).
type Options struct {
	Schema      bool
	FileStats   bool
	StripeStats bool
	Stripes     bool
}

// Tail holds every decoded tree this package produces. The PostScript's
// declared compression is surfaced separately since the root package's
// public Compression type lives in package codec.
type Tail struct {
	PostScript  *orcpb.PostScript
	Footer      *orcpb.Footer
	Metadata    *orcpb.Metadata
	Stripes     []*orcpb.StripeFooter
	Compression codec.Kind
}

// Decode runs the full tail sequence over data, the complete contents of an
// ORC file: PostScript, Footer, then the optional Metadata and StripeFooter
// sections opts asks for.
func Decode(ctx context.Context, data []byte, opts Options, reg *codec.Registry) (*Tail, error) {
	ctx, span := tracer.Start(ctx, "Decode")
	defer span.End()

	size := int64(len(data))
	span.SetAttributes(attribute.Int64("file.size", size))

	ps, psLen, err := decodePostScript(ctx, data)
	if err != nil {
		span.SetStatus(codes.Error, "postscript")
		return nil, err
	}
	slog.DebugContext(xlog.With(ctx, "psLen", psLen, "compression", ps.Compression.String()), "located postscript")
	if ps.CompressionBlockSize > maxCompressionBlockSize {
		span.SetStatus(codes.Error, "postscript")
		return nil, fmt.Errorf("otail: compression block size %d: %w", ps.CompressionBlockSize, ErrAlloc)
	}

	footer, footerOffset, err := decodeFooter(ctx, data, reg, ps, psLen)
	if err != nil {
		span.SetStatus(codes.Error, "footer")
		return nil, err
	}
	slog.DebugContext(xlog.With(ctx, "rows", footer.NumberOfRows, "stripes", len(footer.Stripes)), "decoded footer")

	tail := &Tail{
		PostScript:  ps,
		Footer:      footer,
		Compression: ps.Compression,
	}

	if opts.StripeStats {
		meta, err := decodeMetadata(ctx, data, reg, ps, footerOffset)
		if err != nil {
			span.SetStatus(codes.Error, "metadata")
			return nil, err
		}
		tail.Metadata = meta
		slog.DebugContext(xlog.With(ctx, "stripeStats", len(meta.StripeStats)), "decoded metadata")
	}

	if opts.Stripes {
		stripes, err := decodeStripes(ctx, data, reg, ps, psLen, footer)
		if err != nil {
			span.SetStatus(codes.Error, "stripes")
			return nil, err
		}
		tail.Stripes = stripes
	}

	return tail, nil
}

func decodePostScript(ctx context.Context, data []byte) (*orcpb.PostScript, int, error) {
	_, span := tracer.Start(ctx, "decodePostScript")
	defer span.End()

	size := int64(len(data))
	if size < 1 {
		return nil, 0, fmt.Errorf("otail: empty file: %w", ErrTruncated)
	}
	psLen := int(data[size-1])
	if int64(psLen) > size-1 {
		return nil, 0, fmt.Errorf("otail: postscript length %d exceeds file size %d: %w", psLen, size, ErrTruncated)
	}
	start := size - 1 - int64(psLen)
	ps, err := orcpb.DecodePostScript(data[start : size-1])
	if err != nil {
		return nil, 0, fmt.Errorf("otail: decoding postscript: %w", err)
	}
	return ps, psLen, nil
}

func decodeFooter(ctx context.Context, data []byte, reg *codec.Registry, ps *orcpb.PostScript, psLen int) (*orcpb.Footer, uint64, error) {
	_, span := tracer.Start(ctx, "decodeFooter")
	defer span.End()

	size := uint64(len(data))
	if ps.FooterLength > size {
		return nil, 0, fmt.Errorf("otail: footer length %d exceeds file size %d: %w", ps.FooterLength, size, ErrTruncated)
	}
	footerOffset := uint64(1+psLen) + ps.FooterLength
	if footerOffset > size {
		return nil, 0, fmt.Errorf("otail: footer offset %d exceeds file size %d: %w", footerOffset, size, ErrTruncated)
	}
	start := size - footerOffset
	end := size - uint64(1+psLen)
	plain, err := block.Decompress(reg, ps.Compression, data[start:end], int(ps.CompressionBlockSize))
	if err != nil {
		return nil, 0, fmt.Errorf("otail: decompressing footer: %w", err)
	}
	footer, err := orcpb.DecodeFooter(plain)
	if err != nil {
		return nil, 0, fmt.Errorf("otail: decoding footer: %w", err)
	}
	return footer, footerOffset, nil
}

func decodeMetadata(ctx context.Context, data []byte, reg *codec.Registry, ps *orcpb.PostScript, footerOffset uint64) (*orcpb.Metadata, error) {
	_, span := tracer.Start(ctx, "decodeMetadata")
	defer span.End()

	size := uint64(len(data))
	if ps.MetadataLength > size {
		return nil, fmt.Errorf("otail: metadata length %d exceeds file size %d: %w", ps.MetadataLength, size, ErrTruncated)
	}
	metaOffset := footerOffset + ps.MetadataLength
	if metaOffset > size {
		return nil, fmt.Errorf("otail: metadata offset %d exceeds file size %d: %w", metaOffset, size, ErrTruncated)
	}
	start := size - metaOffset
	end := size - footerOffset
	plain, err := block.Decompress(reg, ps.Compression, data[start:end], int(ps.CompressionBlockSize))
	if err != nil {
		return nil, fmt.Errorf("otail: decompressing metadata: %w", err)
	}
	meta, err := orcpb.DecodeMetadata(plain)
	if err != nil {
		return nil, fmt.Errorf("otail: decoding metadata: %w", err)
	}
	return meta, nil
}

// decodeStripes decodes every stripe's StripeFooter in file order. A
// failure partway through discards everything decoded so far; the caller
// observes either a complete set or an error.
func decodeStripes(ctx context.Context, data []byte, reg *codec.Registry, ps *orcpb.PostScript, psLen int, footer *orcpb.Footer) ([]*orcpb.StripeFooter, error) {
	ctx, span := tracer.Start(ctx, "decodeStripes")
	defer span.End()
	span.SetAttributes(attribute.Int("stripe.count", len(footer.Stripes)))

	// Every stripe precedes the Metadata section, which in turn precedes
	// the Footer and PostScript, so no stripe footer may end past the
	// start of that trailing region.
	size := uint64(len(data))
	if ps.FooterLength > size || ps.MetadataLength > size {
		return nil, fmt.Errorf("otail: tail section lengths exceed file size %d: %w", size, ErrTruncated)
	}
	tailLen := uint64(1+psLen) + ps.FooterLength + ps.MetadataLength
	if tailLen > size {
		return nil, fmt.Errorf("otail: tail sections of %d bytes exceed file size %d: %w", tailLen, size, ErrTruncated)
	}
	limit := size - tailLen

	out := make([]*orcpb.StripeFooter, 0, len(footer.Stripes))
	for i, s := range footer.Stripes {
		if s.Offset > size || s.IndexLength > size || s.DataLength > size || s.FooterLength > size {
			return nil, fmt.Errorf("otail: stripe %d location fields exceed file size %d: %w", i, size, ErrTruncated)
		}
		start := s.Offset + s.IndexLength + s.DataLength
		end := start + s.FooterLength
		if start < s.Offset || end < start || end > limit {
			return nil, fmt.Errorf("otail: stripe %d footer ends at %d, past the stripes region end %d: %w", i, end, limit, ErrTruncated)
		}
		plain, err := block.Decompress(reg, ps.Compression, data[start:end], int(ps.CompressionBlockSize))
		if err != nil {
			return nil, fmt.Errorf("otail: decompressing stripe %d footer: %w", i, err)
		}
		sf, err := orcpb.DecodeStripeFooter(plain)
		if err != nil {
			return nil, fmt.Errorf("otail: decoding stripe %d footer: %w", i, err)
		}
		out = append(out, sf)
		slog.DebugContext(xlog.With(ctx, "stripe", i, "streams", len(sf.Streams)), "decoded stripe footer")
	}
	return out, nil
}
