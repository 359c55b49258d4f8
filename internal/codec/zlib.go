package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

// zlibCodec decompresses ORC's "ZLIB" blocks, which are raw DEFLATE streams
// without a zlib header (window bits -15 in zlib parlance).
type zlibCodec struct{}

func (*zlibCodec) Decompress(dst, src []byte) (int, error) {
	fr := flate.NewReader(bytes.NewReader(src))
	defer fr.Close()
	n, err := io.ReadFull(fr, dst)
	switch {
	case err == nil:
		// dst filled exactly; confirm the stream is actually done.
		var extra [1]byte
		if m, _ := fr.Read(extra[:]); m > 0 {
			return 0, fmt.Errorf("codec: zlib: output exceeds destination capacity")
		}
		return n, nil
	case err == io.ErrUnexpectedEOF:
		return n, nil
	default:
		return 0, fmt.Errorf("codec: zlib: %w", err)
	}
}
