package codec

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// zstdCodec decompresses ORC's "ZSTD" blocks, pooling decoders since
// construction is comparatively expensive and decoding a single block is
// not.
type zstdCodec struct {
	pool sync.Pool
}

func newZstdCodec() *zstdCodec {
	return &zstdCodec{}
}

func (c *zstdCodec) get() (*zstd.Decoder, error) {
	if d := c.pool.Get(); d != nil {
		return d.(*zstd.Decoder), nil
	}
	d, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (c *zstdCodec) put(d *zstd.Decoder) { c.pool.Put(d) }

func (c *zstdCodec) Decompress(dst, src []byte) (int, error) {
	d, err := c.get()
	if err != nil {
		return 0, fmt.Errorf("codec: zstd: %w", err)
	}
	defer c.put(d)

	out, err := d.DecodeAll(src, dst[:0])
	if err != nil {
		return 0, fmt.Errorf("codec: zstd: %w", err)
	}
	if len(out) > len(dst) {
		return 0, fmt.Errorf("codec: zstd: decoded length %d exceeds destination capacity %d", len(out), len(dst))
	}
	if len(out) > 0 && &out[0] != &dst[0] {
		copy(dst, out)
	}
	return len(out), nil
}
