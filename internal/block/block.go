// Package block implements ORC's compression-block framing: a stream of
// 3-byte little-endian headers, each followed by either a verbatim
// ("original") payload or a payload destined for the active codec.
package block

import (
	"errors"
	"fmt"

	"github.com/orcmeta/orcmeta/internal/codec"
	"github.com/orcmeta/orcmeta/internal/orcio"
)

// ErrDecompress is wrapped into every failure this package reports: a bad
// header, a codec failure, or an output overflow.
var ErrDecompress = errors.New("block: could not decompress section")

const headerSize = 3

// Decompress walks the compressed region src (of exactly extent bytes) and
// returns the concatenated plaintext.
//
// If kind is [codec.None], src is returned as-is (ORC's "bypass block
// framing entirely" case). Otherwise src is interpreted as a sequence of
// compression blocks, each decoded via the Codec reg has registered for
// kind.
//
// The output buffer is sized to max(extent, blockSize), per the ORC
// decompressor-state design: large enough for the compressed region taken
// verbatim, and large enough for one maximally-sized original block.
func Decompress(reg *codec.Registry, kind codec.Kind, src []byte, blockSize int) ([]byte, error) {
	extent := len(src)
	if kind == codec.None {
		out := orcio.NewOwning(extent)
		if extent > 0 {
			n, err := out.Append(src)
			if err != nil || n != extent {
				return nil, fmt.Errorf("block: copying uncompressed section: %w", ErrDecompress)
			}
			if err := out.Forward(extent); err != nil {
				return nil, fmt.Errorf("block: %w", ErrDecompress)
			}
		}
		return out.Bytes(), nil
	}

	c, err := reg.Lookup(kind)
	if err != nil {
		return nil, fmt.Errorf("block: %w: %w", ErrDecompress, err)
	}

	capacity := extent
	if blockSize > capacity {
		capacity = blockSize
	}
	out := orcio.NewOwning(capacity)
	in := orcio.NewBorrowing(src)

	for in.Consumed() < extent {
		hdr, err := in.At(headerSize)
		if err != nil {
			return nil, fmt.Errorf("block: reading block header: %w", ErrDecompress)
		}
		header := uint32(hdr[0]) | uint32(hdr[1])<<8 | uint32(hdr[2])<<16
		isOriginal := header&1 != 0
		size := int(header >> 1)
		if err := in.Forward(headerSize); err != nil {
			return nil, fmt.Errorf("block: %w", ErrDecompress)
		}

		payload, err := in.At(size)
		if err != nil {
			return nil, fmt.Errorf("block: reading block payload: %w", ErrDecompress)
		}

		if isOriginal {
			if size > 0 {
				n, err := out.Append(payload)
				if err != nil || n != size {
					return nil, fmt.Errorf("block: copying original block: %w", ErrDecompress)
				}
				if err := out.Forward(size); err != nil {
					return nil, fmt.Errorf("block: output overflow: %w", ErrDecompress)
				}
			}
		} else {
			room, err := out.At(capacity - out.Consumed())
			if err != nil {
				return nil, fmt.Errorf("block: output overflow: %w", ErrDecompress)
			}
			n, err := c.Decompress(room, payload)
			if err != nil {
				return nil, fmt.Errorf("block: %w: %w", ErrDecompress, err)
			}
			if err := out.Forward(n); err != nil {
				return nil, fmt.Errorf("block: output overflow: %w", ErrDecompress)
			}
		}

		if err := in.Forward(size); err != nil {
			return nil, fmt.Errorf("block: %w", ErrDecompress)
		}
	}

	return out.Bytes(), nil
}
