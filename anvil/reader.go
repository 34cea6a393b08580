package anvil

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Julian-Alberts/mc-map-reader/nbt"
	"github.com/Julian-Alberts/mc-map-reader/schema"
)

// Reader reads single chunks from a region file without loading the whole
// file. The reader is not safe for concurrent access; usage should be
// protected by a mutex if concurrent access is desired.
type Reader struct {
	source io.ReadSeeker
	header *RegionHeader
	size   int64
	Name   string
	// External resolves payloads stored in .mcc files. Open sets it for
	// files named r.<x>.<z>.mca; when nil those chunks fail with
	// ErrExternalChunk.
	External ExternalLoader
}

// NewReader reads the header of source. The ownership of the source is
// transferred to this reader.
func NewReader(source io.ReadSeeker) (reader *Reader, err error) {
	reader = &Reader{source: source}
	if file, ok := source.(*os.File); ok {
		reader.Name = file.Name()
	}
	err = reader.readHeader()
	return
}

// Open opens the region file at path.
func Open(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	reader, err := NewReader(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	if pos, ok := ParseRegionFileName(filepath.Base(path)); ok {
		reader.External = MCCLoader(filepath.Dir(path), pos)
	}
	return reader, nil
}

func (r *Reader) readHeader() (err error) {
	if r.size, err = r.source.Seek(0, io.SeekEnd); err != nil {
		return &ReadError{Path: r.Name, Err: err}
	}
	if _, err = r.source.Seek(0, io.SeekStart); err != nil {
		return &ReadError{Path: r.Name, Err: err}
	}

	raw := make([]byte, HeaderSize)
	if _, err = io.ReadFull(r.source, raw); err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return ErrTruncatedHeader
		}
		return &ReadError{Path: r.Name, Err: err}
	}

	r.header, err = ParseHeader(raw)
	return
}

// Header returns the parsed location table.
func (r *Reader) Header() *RegionHeader { return r.header }

// ChunkExists reports whether the chunk at region relative x and z is stored.
func (r *Reader) ChunkExists(x, z int) bool { return r.header.ChunkExists(x, z) }

// ReadChunk reads the chunk at the specified X and Z coordinates. Note that
// these coordinates are relative to the region file and are not chunk
// coordinates.
func (r *Reader) ReadChunk(x, z int) (nbt.Compound, error) {
	info := r.header.Info(x, z)
	if info == nil {
		return nil, ErrNoChunk
	}

	start, err := slotStart(*info, r.size)
	if err != nil {
		return nil, err
	}
	if _, err := r.source.Seek(start, io.SeekStart); err != nil {
		return nil, &ReadError{Path: r.Name, Err: fmt.Errorf("failed to seek: %w", err)}
	}

	// Payload Header

	payloadHeader := make([]byte, 5)
	if _, err := io.ReadFull(r.source, payloadHeader); err != nil {
		return nil, fmt.Errorf("%w: could not read payload header: %s", ErrTruncated, err)
	}
	if _, err := payloadEnd(*info, start, binary.BigEndian.Uint32(payloadHeader), r.size); err != nil {
		return nil, err
	}

	// Payload

	payloadData := make([]byte, binary.BigEndian.Uint32(payloadHeader)-1)
	if _, err := io.ReadFull(r.source, payloadData); err != nil {
		return nil, fmt.Errorf("%w: could not read payload data: %s", ErrTruncated, err)
	}
	return parsePayload(payloadData, Compression(payloadHeader[4]), *info, r.External)
}

// DecodeChunk reads and maps the chunk at region relative x and z.
func (r *Reader) DecodeChunk(x, z int) (*schema.ChunkData, error) {
	root, err := r.ReadChunk(x, z)
	if err != nil {
		return nil, err
	}
	return schema.DecodeChunk(root)
}

func (r *Reader) Close() error {
	if closer, ok := r.source.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
