package codec

import (
	"fmt"

	"github.com/woozymasta/lzo"
)

// lzoCodec decompresses ORC's "LZO" blocks (the lzo1x-1 variant).
type lzoCodec struct{}

func (*lzoCodec) Decompress(dst, src []byte) (int, error) {
	out, err := lzo.Decompress(src, &lzo.DecompressOptions{OutLen: len(dst)})
	if err != nil {
		return 0, fmt.Errorf("codec: lzo: %w", err)
	}
	if len(out) > len(dst) {
		return 0, fmt.Errorf("codec: lzo: decoded length %d exceeds destination capacity %d", len(out), len(dst))
	}
	return copy(dst, out), nil
}
