package orcmeta

import "github.com/orcmeta/orcmeta/internal/codec"

// Compression identifies the block compression codec a PostScript declares.
// It is the public alias of [codec.Kind]; the codec package stays internal
// so its Codec/Registry plumbing isn't part of this module's API surface.
type Compression = codec.Kind

// Compression constants, renders as the upper-case enum names used
// throughout ORC tooling.
const (
	CompressionNone   = codec.None
	CompressionZlib   = codec.Zlib
	CompressionSnappy = codec.Snappy
	CompressionLzo    = codec.Lzo
	CompressionLz4    = codec.Lz4
	CompressionZstd   = codec.Zstd
)
