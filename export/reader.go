package export

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"
)

// ErrCorruptFrame is returned when a frame does not decompress to its
// announced size.
var ErrCorruptFrame = errors.New("export: corrupt frame")

const maxFrame = 1 << 30

// Reader reads the output of a Writer back.
type Reader struct {
	reader     *bufio.Reader
	zstdReader *zstd.Decoder
	lines      *bufio.Scanner
}

// NewReader reads plain JSON lines, or zstd frames when compressed is set.
func NewReader(reader io.Reader, compressed bool) (*Reader, error) {
	r := &Reader{reader: bufio.NewReader(reader)}
	if compressed {
		zstdReader, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		r.zstdReader = zstdReader
	} else {
		r.lines = newScanner(r.reader)
	}
	return r, nil
}

func newScanner(r io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(nil, 64<<20)
	return s
}

// Next decodes the next line into v. Chunks hold block entity variants
// behind an interface, so decode lines into generic values such as
// map[string]any. It returns io.EOF after the last line.
func (r *Reader) Next(v any) error {
	for r.lines == nil || !r.lines.Scan() {
		if r.lines != nil {
			if err := r.lines.Err(); err != nil {
				return err
			}
		}
		if r.zstdReader == nil {
			return io.EOF
		}
		if err := r.nextFrame(); err != nil {
			return err
		}
	}
	return json.Unmarshal(r.lines.Bytes(), v)
}

func (r *Reader) nextFrame() error {
	var frame [8]byte
	if _, err := io.ReadFull(r.reader, frame[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return fmt.Errorf("%w: truncated frame header", ErrCorruptFrame)
		}
		return err
	}
	compressedSize := binary.BigEndian.Uint32(frame[:4])
	uncompressedSize := binary.BigEndian.Uint32(frame[4:])

	if uncompressedSize > maxFrame || compressedSize > maxFrame {
		return fmt.Errorf("%w: frame of %d bytes", ErrCorruptFrame, max(compressedSize, uncompressedSize))
	}

	compressed := make([]byte, compressedSize)
	if _, err := io.ReadFull(r.reader, compressed); err != nil {
		return fmt.Errorf("%w: %s", ErrCorruptFrame, err)
	}
	body, err := r.zstdReader.DecodeAll(compressed, make([]byte, 0, uncompressedSize))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrCorruptFrame, err)
	}
	if len(body) != int(uncompressedSize) {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrCorruptFrame, len(body), uncompressedSize)
	}
	r.lines = newScanner(bytes.NewReader(body))
	return nil
}

// Close releases the decoder.
func (r *Reader) Close() {
	if r.zstdReader != nil {
		r.zstdReader.Close()
	}
}
