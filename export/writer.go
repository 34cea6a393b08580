// Package export writes decoded chunks as JSON lines, optionally in zstd
// compressed frames.
package export

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"

	"github.com/Julian-Alberts/mc-map-reader/anvil"
	"github.com/Julian-Alberts/mc-map-reader/schema"
)

// DefaultBatch is the number of lines per compressed frame.
const DefaultBatch = 256

// Chunk is one exported line.
type Chunk struct {
	Region string            `json:"region"`
	X      int               `json:"x"`
	Z      int               `json:"z"`
	Chunk  *schema.ChunkData `json:"chunk"`
}

// Options configures NewWriter.
type Options struct {
	// Zstd frames the output as compressed length, uncompressed length and
	// body, both lengths big endian uint32.
	Zstd bool
	// Batch is the number of lines per frame. Zero uses DefaultBatch.
	Batch int
}

// Writer writes one JSON document per line. Call Close to flush the last
// frame.
type Writer struct {
	writer     io.Writer
	buf        bytes.Buffer
	enc        *json.Encoder
	zstdWriter *zstd.Encoder
	batch      int
	pending    int
}

func NewWriter(writer io.Writer, opts Options) (*Writer, error) {
	w := &Writer{writer: writer, batch: opts.Batch}
	if w.batch <= 0 {
		w.batch = DefaultBatch
	}
	if opts.Zstd {
		zstdWriter, err := zstd.NewWriter(io.Discard)
		if err != nil {
			return nil, err
		}
		w.zstdWriter = zstdWriter
	}
	w.enc = json.NewEncoder(&w.buf)
	return w, nil
}

// WriteChunk writes a chunk together with its position.
func (w *Writer) WriteChunk(pos anvil.ChunkPos, chunk *schema.ChunkData) error {
	return w.Write(Chunk{Region: pos.Region().FileName(), X: pos.X, Z: pos.Z, Chunk: chunk})
}

// Write encodes v as one line.
func (w *Writer) Write(v any) error {
	if err := w.enc.Encode(v); err != nil {
		return err
	}
	w.pending++
	if w.zstdWriter == nil || w.pending >= w.batch {
		return w.Flush()
	}
	return nil
}

// Flush writes the buffered lines.
func (w *Writer) Flush() (err error) {
	if w.pending == 0 {
		return nil
	}
	w.pending = 0
	if w.zstdWriter == nil {
		_, err = w.buf.WriteTo(w.writer)
		return
	}
	return w.writeZstdCompressed(&w.buf)
}

func (w *Writer) writeZstdCompressed(buf *bytes.Buffer) (err error) {
	uncompressedSize := buf.Len()

	var compressedOutput bytes.Buffer
	w.zstdWriter.Reset(&compressedOutput)
	if _, err = buf.WriteTo(w.zstdWriter); err != nil {
		return
	}
	if err = w.zstdWriter.Close(); err != nil {
		return
	}
	w.zstdWriter.Reset(io.Discard)

	var frame [8]byte
	binary.BigEndian.PutUint32(frame[:4], uint32(compressedOutput.Len()))
	binary.BigEndian.PutUint32(frame[4:], uint32(uncompressedSize))
	if _, err = w.writer.Write(frame[:]); err != nil {
		return
	}
	_, err = compressedOutput.WriteTo(w.writer)
	return
}

// Close flushes the remaining lines. It does not close the underlying
// writer.
func (w *Writer) Close() error {
	err := w.Flush()
	if w.zstdWriter != nil {
		if closeErr := w.zstdWriter.Close(); err == nil {
			err = closeErr
		}
	}
	return err
}
