// Package codec provides deflate/zlib-compatible compression of
// opaque byte blobs.
package codec

import (
	"bytes"
	"compress/zlib"
	"io"

	"github.com/ciphernest/stego/models"
)

// Compress returns data deflated at the default compression level,
// wrapped in a zlib stream (2-byte header, 4-byte Adler-32 trailer).
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, models.NewErrorf(models.KindInternal, "codec: compress: %v", err)
	}
	if err := w.Close(); err != nil {
		return nil, models.NewErrorf(models.KindInternal, "codec: compress: %v", err)
	}
	return buf.Bytes(), nil
}

// Decompress reverses Compress. Malformed input surfaces as
// DataCorrupted.
func Decompress(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, models.NewErrorf(models.KindDataCorrupted, "codec: decompress: %v", err)
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, models.NewErrorf(models.KindDataCorrupted, "codec: decompress: %v", err)
	}
	return out, nil
}
