// Package orcmeta reads the tail metadata of an Optimized Row Columnar
// (ORC) file — PostScript, Footer, optional Metadata and StripeFooters —
// without decoding any row data. The whole file is held in memory, but only
// the tail sections and stripe footers are decompressed and decoded.
package orcmeta

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/orcmeta/orcmeta/internal/block"
	"github.com/orcmeta/orcmeta/internal/codec"
	"github.com/orcmeta/orcmeta/internal/orcpb"
	"github.com/orcmeta/orcmeta/internal/otail"
	"github.com/orcmeta/orcmeta/internal/xlog"
)

var tracer = otel.Tracer("github.com/orcmeta/orcmeta")

// ReadMetadata reads path's tail metadata according to opts. The entire
// file is read into memory once; no data is retained past the call other
// than the returned Result.
func ReadMetadata(ctx context.Context, path string, opts ReadOptions) (*Result, error) {
	ctx, span := tracer.Start(ctx, "ReadMetadata",
		trace.WithAttributes(attribute.String("orc.path", path)))
	defer span.End()

	data, err := os.ReadFile(path)
	if err != nil {
		span.SetStatus(codes.Error, "read")
		return nil, &Error{Op: "ReadMetadata", Kind: ErrIO, Message: "reading file", Inner: err}
	}

	res, err := Decode(ctx, data, opts)
	if err != nil {
		span.SetStatus(codes.Error, "decode")
		return nil, err
	}
	return res, nil
}

// Decode reads the tail metadata out of data, the full contents of an ORC
// file already resident in memory. It is ReadMetadata's logic split out so
// callers that already hold the bytes (an embedded asset, a downloaded
// object) never need a temp file.
func Decode(ctx context.Context, data []byte, opts ReadOptions) (*Result, error) {
	ctx, span := tracer.Start(ctx, "Decode")
	defer span.End()

	slog.DebugContext(xlog.With(ctx, "bytes", len(data)), "decoding orc tail")

	tail, err := otail.Decode(ctx, data, otail.Options{
		Schema:      opts.Schema,
		FileStats:   opts.FileStats,
		StripeStats: opts.StripeStats,
		Stripes:     opts.Stripes,
	}, codec.Default())
	if err != nil {
		return nil, classify(err)
	}

	res, err := project(tail, opts)
	if err != nil {
		return nil, classify(err)
	}
	return res, nil
}

// classify maps an internal sentinel error onto the public ErrorKind it
// represents. A failure that matches none of the known
// sentinels is still surfaced, under ErrDecode: this is where [Schema]'s
// errors for a malformed type table land, since they wrap no sentinel.
func classify(err error) error {
	var orcErr *Error
	if errors.As(err, &orcErr) {
		return err
	}

	op := "Decode"
	switch {
	case errors.Is(err, otail.ErrTruncated):
		return &Error{Op: op, Kind: ErrTruncated, Message: "tail structure runs past file bounds", Inner: err}
	case errors.Is(err, otail.ErrAlloc):
		return &Error{Op: op, Kind: ErrMemory, Message: "declared buffer size refused", Inner: err}
	case errors.Is(err, block.ErrDecompress):
		return &Error{Op: op, Kind: ErrDecompress, Message: "compressed block failed to inflate", Inner: err}
	case errors.Is(err, orcpb.ErrDecode):
		return &Error{Op: op, Kind: ErrDecode, Message: "malformed protocol buffer message", Inner: err}
	default:
		return &Error{Op: op, Kind: ErrDecode, Message: fmt.Sprintf("unclassified failure: %v", err), Inner: err}
	}
}
