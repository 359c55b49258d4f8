// Package orcio implements the bounded-cursor primitive the tail decoder and
// block decompressor use to walk ORC's compressed, nested-section byte
// layout.
//
// A [Buffer] is deliberately close to the arena-plus-index shape ORC's own
// on-disk structures use (see the Type adjacency table in package orcpb) so
// that section boundaries never have to be translated into a pointer graph.
package orcio

import (
	"errors"
	"fmt"
)

// ErrBounds is returned when an operation would move a Buffer's cursor
// outside of its backing region.
var ErrBounds = errors.New("orcio: operation out of bounds")

// Buffer is a (head, cursor, size) triple over a byte region, following the
// "owning or borrowing" split from the ORC tail-decode design: an owning
// Buffer allocates and zeroes its own region ([NewOwning]); a borrowing
// Buffer is a strict view over a region it does not control the lifetime of
// ([NewBorrowing]).
//
// The zero value is not usable; construct with [NewOwning] or
// [NewBorrowing].
type Buffer struct {
	region []byte // the full backing region, from offset 0
	head   int    // start of the current window into region
	cursor int    // current read/write position, always >= head
	size   int    // bytes consumed forward from head
	owning bool
}

// NewOwning allocates a zero-initialized, owning Buffer of the given size.
func NewOwning(size int) *Buffer {
	return &Buffer{region: make([]byte, size), owning: true}
}

// NewBorrowing returns a Buffer that is a view over b. The caller retains
// ownership of b; the Buffer must not outlive it.
func NewBorrowing(b []byte) *Buffer {
	return &Buffer{region: b}
}

// Len reports the length of the backing region.
func (b *Buffer) Len() int { return len(b.region) }

// Head reports the current head offset into the backing region.
func (b *Buffer) Head() int { return b.head }

// Cursor reports the current cursor offset into the backing region.
func (b *Buffer) Cursor() int { return b.cursor }

// Consumed reports the number of bytes forwarded since the last head
// relocation.
func (b *Buffer) Consumed() int { return b.size }

// Bytes returns the consumed window, [head, head+size).
func (b *Buffer) Bytes() []byte {
	return b.region[b.head : b.head+b.size]
}

// At returns the n bytes starting at the current cursor, without moving it.
// It is the caller's responsibility to call Forward afterward if the read
// should be considered consumed.
func (b *Buffer) At(n int) ([]byte, error) {
	if n < 0 || b.cursor+n > len(b.region) {
		return nil, fmt.Errorf("orcio: read %d bytes at %d: %w", n, b.cursor, ErrBounds)
	}
	return b.region[b.cursor : b.cursor+n], nil
}

// Forward advances the cursor by n bytes and accounts for n more consumed
// bytes.
func (b *Buffer) Forward(n int) error {
	if n < 0 || b.cursor+n > len(b.region) {
		return fmt.Errorf("orcio: forward %d bytes from %d: %w", n, b.cursor, ErrBounds)
	}
	b.cursor += n
	b.size += n
	return nil
}

// Rewind reverses a prior Forward by n bytes.
func (b *Buffer) Rewind(n int) error {
	if n < 0 || b.cursor-n < b.head {
		return fmt.Errorf("orcio: rewind %d bytes from %d: %w", n, b.cursor, ErrBounds)
	}
	b.cursor -= n
	b.size -= n
	return nil
}

// RewindShift reverses n bytes, then relocates the head to the (now
// retreated) cursor, resets the consumed count to zero, and re-forwards by n.
//
// This is the idiom used after locating a trailing structure whose header
// was read by seeking in from the end of the file: the caller reads forward
// to find a length or offset, then shifts the window to start exactly where
// the structure of interest begins.
func (b *Buffer) RewindShift(n int) error {
	if err := b.Rewind(n); err != nil {
		return err
	}
	b.head = b.cursor
	b.size = 0
	return b.Forward(n)
}

// Append copies src to the current cursor without advancing it; the caller
// follows with Forward(len(src)) once the write is confirmed good.
func (b *Buffer) Append(src []byte) (int, error) {
	if b.cursor+len(src) > len(b.region) {
		return 0, fmt.Errorf("orcio: append %d bytes at %d: %w", len(src), b.cursor, ErrBounds)
	}
	return copy(b.region[b.cursor:], src), nil
}

// Owning reports whether the Buffer owns its backing region.
func (b *Buffer) Owning() bool { return b.owning }
