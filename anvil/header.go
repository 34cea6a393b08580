// Package anvil reads Minecraft Anvil region files: the sector table, the
// compressed chunk payloads and the typed chunks decoded from them.
package anvil

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

const (
	SectorSize      = 4096
	HeaderSize      = 2 * SectorSize
	ChunksPerRegion = 1024
	regionSide      = 32
)

var (
	ErrNoChunk            = errors.New("anvil: chunk not found")
	ErrInvalidChunkLength = errors.New("anvil: invalid chunk length")
	ErrInvalidCompression = errors.New("anvil: invalid compression format")
	ErrTruncatedHeader    = errors.New("anvil: region file shorter than its header")
	ErrTruncated          = errors.New("anvil: chunk payload extends past end of file")
	ErrExternalChunk      = errors.New("anvil: chunk payload is stored in an external file")
)

// ChunkInfo is one populated slot of the region header.
type ChunkInfo struct {
	Index        int
	SectorOffset uint32
	SectorCount  uint8
	Timestamp    uint32
}

// X is the chunk column inside the region, 0-31.
func (c ChunkInfo) X() int { return c.Index % regionSide }

// Z is the chunk row inside the region, 0-31.
func (c ChunkInfo) Z() int { return c.Index / regionSide }

// ModTime is the last time the chunk was saved.
func (c ChunkInfo) ModTime() time.Time { return time.Unix(int64(c.Timestamp), 0).UTC() }

// RegionHeader is the location and timestamp table at the start of a region
// file. Absent slots are nil.
type RegionHeader struct {
	entries [ChunksPerRegion]*ChunkInfo
}

// ParseHeader decodes the first HeaderSize bytes of raw.
func ParseHeader(raw []byte) (*RegionHeader, error) {
	if len(raw) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncatedHeader, len(raw))
	}

	var table struct {
		Locations  [ChunksPerRegion]uint32
		Timestamps [ChunksPerRegion]uint32
	}
	if err := binary.Read(bytes.NewReader(raw[:HeaderSize]), binary.BigEndian, &table); err != nil {
		return nil, err
	}

	header := &RegionHeader{}
	for i, location := range table.Locations {
		offset := location >> 8
		count := uint8(location)
		if offset == 0 && count == 0 {
			continue
		}
		header.entries[i] = &ChunkInfo{
			Index:        i,
			SectorOffset: offset,
			SectorCount:  count,
			Timestamp:    table.Timestamps[i],
		}
	}
	return header, nil
}

// Entry returns slot i, or nil when it is empty or out of range.
func (h *RegionHeader) Entry(i int) *ChunkInfo {
	if i < 0 || i >= ChunksPerRegion {
		return nil
	}
	return h.entries[i]
}

// Info returns the slot of the chunk at region relative x and z.
func (h *RegionHeader) Info(x, z int) *ChunkInfo {
	if x < 0 || z < 0 || x >= regionSide || z >= regionSide {
		return nil
	}
	return h.entries[x+z*regionSide]
}

// ChunkExists reports whether the slot at x, z is populated.
func (h *RegionHeader) ChunkExists(x, z int) bool {
	return h.Info(x, z) != nil
}

// Populated lists the populated slots in slot order.
func (h *RegionHeader) Populated() []ChunkInfo {
	var out []ChunkInfo
	for _, info := range h.entries {
		if info != nil {
			out = append(out, *info)
		}
	}
	return out
}
