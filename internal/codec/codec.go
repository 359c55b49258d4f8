// Package codec is the dispatch table of single-shot inflate routines ORC's
// block decompressor drives. Each entry decompresses one compression block's
// payload into a caller-supplied output slice; framing (the 3-byte block
// header, the original/compressed bit) lives in package block, one layer up.
package codec

import (
	"errors"
	"fmt"
)

// ErrUnsupported is wrapped into the error returned when a Kind has no
// registered Codec. A build that omits a codec (to shed the dependency)
// surfaces this instead of panicking, since it is a property of the file
// being read, not a programming error.
var ErrUnsupported = errors.New("codec: compression kind not supported by this build")

// Kind enumerates the compression codecs ORC files may declare in their
// PostScript.
type Kind uint8

const (
	None Kind = iota
	Zlib
	Snappy
	Lzo
	Lz4
	Zstd
)

// String renders the upper-case enum name, matching how the PostScript's
// declared compression kind is reported in the projected result.
func (k Kind) String() string {
	switch k {
	case None:
		return "NONE"
	case Zlib:
		return "ZLIB"
	case Snappy:
		return "SNAPPY"
	case Lzo:
		return "LZO"
	case Lz4:
		return "LZ4"
	case Zstd:
		return "ZSTD"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(k))
	}
}

// Codec is a single-shot block inflate routine.
//
// Decompress decompresses src (one compression block's payload) into dst,
// the remaining capacity of the section's output buffer, and returns the
// number of bytes written. Implementations must not retain src
// or dst past the call.
type Codec interface {
	Decompress(dst, src []byte) (n int, err error)
}

// Registry is a Kind-keyed dispatch table of Codecs.
//
// The zero value is an empty registry; use [Default] for one populated with
// every codec this build links in.
type Registry struct {
	codecs map[Kind]Codec
}

// NewRegistry builds a Registry from the given entries. Passing no entries
// yields an empty registry, useful for exercising the "codec omitted from
// this build" path in tests.
func NewRegistry(entries map[Kind]Codec) *Registry {
	r := &Registry{codecs: make(map[Kind]Codec, len(entries))}
	for k, c := range entries {
		r.codecs[k] = c
	}
	return r
}

// Register adds or replaces the Codec for a Kind.
func (r *Registry) Register(k Kind, c Codec) {
	if r.codecs == nil {
		r.codecs = make(map[Kind]Codec)
	}
	r.codecs[k] = c
}

// Lookup returns the Codec registered for k, or ErrUnsupported if none is.
func (r *Registry) Lookup(k Kind) (Codec, error) {
	if r == nil {
		return nil, fmt.Errorf("codec: %s: %w", k, ErrUnsupported)
	}
	c, ok := r.codecs[k]
	if !ok {
		return nil, fmt.Errorf("codec: %s: %w", k, ErrUnsupported)
	}
	return c, nil
}

// Default returns a Registry populated with every codec this build links:
// ZLIB, SNAPPY, LZO, LZ4, and ZSTD. NONE is never registered here — the
// block decompressor special-cases it and never consults the registry for
// it.
func Default() *Registry {
	return NewRegistry(map[Kind]Codec{
		Zlib:   new(zlibCodec),
		Snappy: new(snappyCodec),
		Lzo:    new(lzoCodec),
		Lz4:    new(lz4Codec),
		Zstd:   newZstdCodec(),
	})
}
