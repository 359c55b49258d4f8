// Package orcpb decodes the Protocol Buffer messages ORC's tail stores:
// PostScript, Footer, Metadata, StripeFooter, and their nested Type and
// ColumnStatistics trees.
//
// There is no .proto source in this repository to generate code from, so
// decoding is hand-written directly against the wire-format primitives in
// [google.golang.org/protobuf/encoding/protowire]: a switch over field
// number and wire type per message. Message boundaries are always
// caller-provided lengths (the decompressed section), never embedded
// framing.
package orcpb

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// ErrDecode is wrapped into every malformed-message failure this package
// reports.
var ErrDecode = errors.New("orcpb: malformed message")

// forEachField walks the top-level fields of a message, calling fn once per
// field with the field number, wire type, and the slice positioned just
// after the tag. fn must return the number of bytes it consumed from that
// slice (not counting the tag).
func forEachField(b []byte, fn func(num protowire.Number, typ protowire.Type, rest []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: bad tag: %v", ErrDecode, protowire.ParseError(n))
		}
		b = b[n:]
		m, err := fn(num, typ, b)
		if err != nil {
			return err
		}
		if m < 0 || m > len(b) {
			return fmt.Errorf("%w: field %d: consumed %d of %d remaining bytes", ErrDecode, num, m, len(b))
		}
		b = b[m:]
	}
	return nil
}

// skipField consumes and discards a field's value, for field numbers this
// package does not read. Per §4.4, unknown fields are ignored, not an error.
func skipField(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	n := protowire.ConsumeFieldValue(num, typ, b)
	if n < 0 {
		return 0, fmt.Errorf("%w: field %d: %v", ErrDecode, num, protowire.ParseError(n))
	}
	return n, nil
}

func consumeVarint(b []byte) (uint64, int, error) {
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, 0, fmt.Errorf("%w: bad varint: %v", ErrDecode, protowire.ParseError(n))
	}
	return v, n, nil
}

func consumeFixed64(b []byte) (uint64, int, error) {
	v, n := protowire.ConsumeFixed64(b)
	if n < 0 {
		return 0, 0, fmt.Errorf("%w: bad fixed64: %v", ErrDecode, protowire.ParseError(n))
	}
	return v, n, nil
}

func consumeBytes(b []byte) ([]byte, int, error) {
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, 0, fmt.Errorf("%w: bad length-delimited value: %v", ErrDecode, protowire.ParseError(n))
	}
	return v, n, nil
}

func consumeString(b []byte) (string, int, error) {
	v, n, err := consumeBytes(b)
	if err != nil {
		return "", 0, err
	}
	return string(v), n, nil
}

// consumePackedUint32 decodes a packed repeated varint field (e.g.
// Type.subtypes) into a slice of uint32s, accepting the wire value as either
// the packed (length-delimited) form or, defensively, a single unpacked
// varint — protobuf readers are required to accept both regardless of how
// the field was declared.
func consumePackedUint32(typ protowire.Type, b []byte) ([]uint32, int, error) {
	if typ == protowire.VarintType {
		v, n, err := consumeVarint(b)
		if err != nil {
			return nil, 0, err
		}
		return []uint32{uint32(v)}, n, nil
	}
	packed, n, err := consumeBytes(b)
	if err != nil {
		return nil, 0, err
	}
	var out []uint32
	for len(packed) > 0 {
		v, m := protowire.ConsumeVarint(packed)
		if m < 0 {
			return nil, 0, fmt.Errorf("%w: bad packed varint: %v", ErrDecode, protowire.ParseError(m))
		}
		out = append(out, uint32(v))
		packed = packed[m:]
	}
	return out, n, nil
}

func consumePackedUint64(typ protowire.Type, b []byte) ([]uint64, int, error) {
	if typ == protowire.VarintType {
		v, n, err := consumeVarint(b)
		if err != nil {
			return nil, 0, err
		}
		return []uint64{v}, n, nil
	}
	packed, n, err := consumeBytes(b)
	if err != nil {
		return nil, 0, err
	}
	var out []uint64
	for len(packed) > 0 {
		v, m := protowire.ConsumeVarint(packed)
		if m < 0 {
			return nil, 0, fmt.Errorf("%w: bad packed varint: %v", ErrDecode, protowire.ParseError(m))
		}
		out = append(out, v)
		packed = packed[m:]
	}
	return out, n, nil
}

func zigzag32(v uint64) int32 { return int32(protowire.DecodeZigZag(v)) }
func zigzag64(v uint64) int64 { return protowire.DecodeZigZag(v) }
