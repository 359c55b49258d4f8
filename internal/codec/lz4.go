package codec

import (
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// lz4Codec decompresses ORC's "LZ4" blocks, equivalent to the reference
// implementation's use of LZ4_decompress_safe: a single frame-less LZ4
// block.
type lz4Codec struct{}

func (*lz4Codec) Decompress(dst, src []byte) (int, error) {
	n, err := lz4.UncompressBlock(src, dst)
	if err != nil {
		return 0, fmt.Errorf("codec: lz4: %w", err)
	}
	return n, nil
}
