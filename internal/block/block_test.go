package block

import (
	"bytes"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/orcmeta/orcmeta/internal/codec"
)

// header packs an ORC compression-block header: size in the upper 23 bits,
// the original flag in the low bit.
func header(size int, original bool) []byte {
	v := uint32(size) << 1
	if original {
		v |= 1
	}
	return []byte{byte(v), byte(v >> 8), byte(v >> 16)}
}

func TestDecompressNoneBypassesFraming(t *testing.T) {
	src := []byte("raw bytes, no block framing at all")
	out, err := Decompress(codec.Default(), codec.None, src, 64)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, src) {
		t.Fatalf("Decompress(None) = %q, want %q", out, src)
	}
}

func TestDecompressEmptySection(t *testing.T) {
	out, err := Decompress(codec.Default(), codec.Zlib, nil, 256)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Fatalf("Decompress(empty) = %v, want empty", out)
	}
}

func TestDecompressOriginalBlocks(t *testing.T) {
	var src []byte
	src = append(src, header(5, true)...)
	src = append(src, "hello"...)
	src = append(src, header(0, true)...) // zero-size original block, a valid no-op
	src = append(src, header(6, true)...)
	src = append(src, " world"...)

	out, err := Decompress(codec.Default(), codec.Zlib, src, 64)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "hello world" {
		t.Fatalf("Decompress() = %q, want %q", out, "hello world")
	}
}

func TestDecompressInterleavedOriginalAndCoded(t *testing.T) {
	ctrl := gomock.NewController(t)
	mc := codec.NewMockCodec(ctrl)
	mc.EXPECT().Decompress(gomock.Any(), []byte("CODED")).DoAndReturn(
		func(dst, src []byte) (int, error) {
			return copy(dst, "decoded"), nil
		})
	reg := codec.NewRegistry(map[codec.Kind]codec.Codec{codec.Zlib: mc})

	var src []byte
	src = append(src, header(5, false)...)
	src = append(src, "CODED"...)
	src = append(src, header(4, true)...)
	src = append(src, "true"...)

	out, err := Decompress(reg, codec.Zlib, src, 64)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "decodedtrue" {
		t.Fatalf("Decompress() = %q, want %q", out, "decodedtrue")
	}
}

func TestDecompressCodecFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	mc := codec.NewMockCodec(ctrl)
	mc.EXPECT().Decompress(gomock.Any(), gomock.Any()).Return(0, errors.New("boom"))
	reg := codec.NewRegistry(map[codec.Kind]codec.Codec{codec.Zlib: mc})

	var src []byte
	src = append(src, header(4, false)...)
	src = append(src, "fail"...)

	if _, err := Decompress(reg, codec.Zlib, src, 64); !errors.Is(err, ErrDecompress) {
		t.Fatalf("Decompress() with failing codec: got %v, want ErrDecompress", err)
	}
}

func TestDecompressUnsupportedCodec(t *testing.T) {
	reg := codec.NewRegistry(nil) // models a build that omits every codec
	var src []byte
	src = append(src, header(4, false)...)
	src = append(src, "data"...)

	if _, err := Decompress(reg, codec.Snappy, src, 64); !errors.Is(err, ErrDecompress) {
		t.Fatalf("Decompress() with unregistered codec: got %v, want ErrDecompress", err)
	}
}

func TestDecompressOutputOverflow(t *testing.T) {
	ctrl := gomock.NewController(t)
	mc := codec.NewMockCodec(ctrl)
	mc.EXPECT().Decompress(gomock.Any(), gomock.Any()).DoAndReturn(
		func(dst, src []byte) (int, error) {
			return len(dst) + 1, nil // report writing past capacity
		})
	reg := codec.NewRegistry(map[codec.Kind]codec.Codec{codec.Zlib: mc})

	var src []byte
	src = append(src, header(4, false)...)
	src = append(src, "data"...)

	if _, err := Decompress(reg, codec.Zlib, src, 4); !errors.Is(err, ErrDecompress) {
		t.Fatalf("Decompress() with overflowing codec: got %v, want ErrDecompress", err)
	}
}

func TestDecompressTruncatedHeader(t *testing.T) {
	if _, err := Decompress(codec.Default(), codec.Zlib, []byte{0x01}, 64); !errors.Is(err, ErrDecompress) {
		t.Fatalf("Decompress() with truncated header: got %v, want ErrDecompress", err)
	}
}
