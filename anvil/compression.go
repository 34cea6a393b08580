package anvil

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// Compression is the codec byte that precedes every chunk payload.
type Compression byte

const (
	CompressionGzip Compression = 1
	CompressionZlib Compression = 2
	CompressionNone Compression = 3

	// compressionExternal is set on the codec byte when the payload lives in
	// a separate c.<x>.<z>.mcc file next to the region file.
	compressionExternal Compression = 0x80
)

func (c Compression) String() string {
	switch c &^ compressionExternal {
	case CompressionGzip:
		return "gzip"
	case CompressionZlib:
		return "zlib"
	case CompressionNone:
		return "none"
	default:
		return fmt.Sprintf("unknown(%d)", byte(c))
	}
}

// External reports whether the payload is stored outside the region file.
func (c Compression) External() bool { return c&compressionExternal != 0 }

// CompressionError reports a codec byte this package cannot decode.
type CompressionError struct {
	Codec Compression
}

func (e *CompressionError) Error() string {
	return fmt.Sprintf("anvil: unsupported compression format %d", byte(e.Codec))
}

func (e *CompressionError) Is(target error) bool { return target == ErrInvalidCompression }

// Decompress returns the raw NBT bytes of a chunk payload.
func Decompress(data []byte, codec Compression) ([]byte, error) {
	var stream io.ReadCloser
	var err error

	switch codec &^ compressionExternal {
	case CompressionGzip:
		stream, err = gzip.NewReader(bytes.NewReader(data))
	case CompressionZlib:
		stream, err = zlib.NewReader(bytes.NewReader(data))
	case CompressionNone:
		return data, nil
	default:
		return nil, &CompressionError{Codec: codec}
	}
	if err != nil {
		return nil, fmt.Errorf("anvil: could not open %s stream: %w", codec, err)
	}
	defer stream.Close()

	out, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("anvil: could not decompress %s payload: %w", codec, err)
	}
	return out, nil
}
