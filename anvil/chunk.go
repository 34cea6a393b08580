package anvil

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Julian-Alberts/mc-map-reader/nbt"
	"github.com/Julian-Alberts/mc-map-reader/schema"
)

// ExternalLoader returns the contents of the c.<x>.<z>.mcc file holding the
// payload of an oversized chunk.
type ExternalLoader func(info ChunkInfo) ([]byte, error)

// slotStart checks that info points past the header at a slot of at least
// one sector, with room for the five byte payload prefix in a file of size
// bytes. It returns the byte offset of the prefix.
func slotStart(info ChunkInfo, size int64) (int64, error) {
	if info.SectorOffset < HeaderSize/SectorSize {
		return 0, fmt.Errorf("%w: chunk %d,%d points into the header (sector %d)", ErrTruncated, info.X(), info.Z(), info.SectorOffset)
	}
	if info.SectorCount == 0 {
		return 0, fmt.Errorf("%w: chunk %d,%d occupies no sectors", ErrInvalidChunkLength, info.X(), info.Z())
	}
	start := int64(info.SectorOffset) * SectorSize
	if start+5 > size {
		return 0, fmt.Errorf("%w: chunk %d,%d starts at %d, file has %d bytes", ErrTruncated, info.X(), info.Z(), start, size)
	}
	return start, nil
}

// payloadEnd checks the length from the payload prefix against the sectors
// of the slot and the file size. It returns the offset just past the
// payload.
func payloadEnd(info ChunkInfo, start int64, length uint32, size int64) (int64, error) {
	if length < 1 {
		return 0, fmt.Errorf("%w: chunk %d,%d has length %d", ErrInvalidChunkLength, info.X(), info.Z(), length)
	}
	if int64(length)+4 > int64(info.SectorCount)*SectorSize {
		return 0, fmt.Errorf("%w: chunk %d,%d length %d exceeds its %d sectors", ErrInvalidChunkLength, info.X(), info.Z(), length, info.SectorCount)
	}
	end := start + 4 + int64(length)
	if end > size {
		return 0, fmt.Errorf("%w: chunk %d,%d ends at %d, file has %d bytes", ErrTruncated, info.X(), info.Z(), end, size)
	}
	return end, nil
}

// Payload locates the compressed payload of info inside file. file is the
// whole region file, header included, so the payload starts at
// SectorOffset*SectorSize.
func Payload(file []byte, info ChunkInfo) ([]byte, Compression, error) {
	size := int64(len(file))
	start, err := slotStart(info, size)
	if err != nil {
		return nil, 0, err
	}
	end, err := payloadEnd(info, start, binary.BigEndian.Uint32(file[start:]), size)
	if err != nil {
		return nil, 0, err
	}
	return file[start+5 : end], Compression(file[start+4]), nil
}

// ReadChunkTag decompresses and parses the payload of info. External
// payloads need a loader; pass nil to reject them with ErrExternalChunk.
func ReadChunkTag(file []byte, info ChunkInfo, external ExternalLoader) (nbt.Compound, error) {
	data, codec, err := Payload(file, info)
	if err != nil {
		return nil, err
	}
	return parsePayload(data, codec, info, external)
}

func parsePayload(data []byte, codec Compression, info ChunkInfo, external ExternalLoader) (nbt.Compound, error) {
	if codec.External() {
		if external == nil {
			return nil, fmt.Errorf("%w: chunk %d,%d", ErrExternalChunk, info.X(), info.Z())
		}
		var err error
		if data, err = external(info); err != nil {
			return nil, err
		}
	}

	raw, err := Decompress(data, codec)
	if err != nil {
		return nil, err
	}
	return nbt.Parse(raw)
}

// MCCLoader reads the c.<x>.<z>.mcc files written next to a region file for
// chunks too large to fit into 255 sectors. The coordinates in the name are
// absolute chunk coordinates.
func MCCLoader(dir string, region RegionPos) ExternalLoader {
	return func(info ChunkInfo) ([]byte, error) {
		pos := region.Chunk(info.X(), info.Z())
		path := filepath.Join(dir, fmt.Sprintf("c.%d.%d.mcc", pos.X, pos.Z))
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &ReadError{Path: path, Err: err}
		}
		return data, nil
	}
}

// DecodeChunk extracts, decompresses, parses and maps a single chunk of a
// region file.
func DecodeChunk(file []byte, info ChunkInfo) (*schema.ChunkData, error) {
	root, err := ReadChunkTag(file, info, nil)
	if err != nil {
		return nil, err
	}
	return schema.DecodeChunk(root)
}

// DecodeEntityChunk is DecodeChunk for the files of the entities directory.
func DecodeEntityChunk(file []byte, info ChunkInfo) (*schema.EntityChunk, error) {
	root, err := ReadChunkTag(file, info, nil)
	if err != nil {
		return nil, err
	}
	return schema.DecodeEntityChunk(root)
}
