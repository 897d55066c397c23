package modelstore

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects how the encoded payload is compressed inside the
// artifact envelope.
type Compression string

const (
	// CompressionNone stores the payload as-is. This is the default;
	// centroid tables are tiny and rarely worth compressing.
	CompressionNone Compression = "none"
	// CompressionZstd compresses with zstandard. Best ratio for models
	// that carry large label vectors.
	CompressionZstd Compression = "zstd"
	// CompressionLZ4 compresses with the LZ4 frame format. Fastest to
	// decompress.
	CompressionLZ4 Compression = "lz4"
)

// compressionByName resolves the name recorded in an artifact header.
func compressionByName(name string) (Compression, bool) {
	switch Compression(name) {
	case CompressionNone, CompressionZstd, CompressionLZ4:
		return Compression(name), true
	default:
		return "", false
	}
}

func compress(c Compression, data []byte) ([]byte, error) {
	switch c {
	case CompressionNone:
		return data, nil
	case CompressionZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		out := enc.EncodeAll(data, nil)
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return out, nil
	case CompressionLZ4:
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCompression, c)
	}
}

func decompress(c Compression, data []byte) ([]byte, error) {
	switch c {
	case CompressionNone:
		return data, nil
	case CompressionZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(data, nil)
	case CompressionLZ4:
		return io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCompression, c)
	}
}
