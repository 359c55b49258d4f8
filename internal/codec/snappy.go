package codec

import (
	"fmt"

	"github.com/golang/snappy"
)

// snappyCodec decompresses ORC's "SNAPPY" blocks, which use plain
// length-prefixed snappy block framing (not the streaming frame format).
type snappyCodec struct{}

func (*snappyCodec) Decompress(dst, src []byte) (int, error) {
	n, err := snappy.DecodedLen(src)
	if err != nil {
		return 0, fmt.Errorf("codec: snappy: %w", err)
	}
	if n > len(dst) {
		return 0, fmt.Errorf("codec: snappy: decoded length %d exceeds destination capacity %d", n, len(dst))
	}
	out, err := snappy.Decode(dst[:n], src)
	if err != nil {
		return 0, fmt.Errorf("codec: snappy: %w", err)
	}
	return len(out), nil
}
