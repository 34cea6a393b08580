package nbttest

import (
	"encoding/binary"
)

const sectorSize = 4096

// Chunk is one payload placed into a synthetic region file.
type Chunk struct {
	Index     int
	Codec     byte
	Data      []byte
	Timestamp uint32
}

// Region lays the chunks out sector aligned after an 8 KiB header, in the
// order given.
func Region(chunks ...Chunk) []byte {
	file := make([]byte, 2*sectorSize)
	sector := 2
	for _, c := range chunks {
		payload := make([]byte, 5+len(c.Data))
		binary.BigEndian.PutUint32(payload, uint32(len(c.Data)+1))
		payload[4] = c.Codec
		copy(payload[5:], c.Data)

		count := (len(payload) + sectorSize - 1) / sectorSize
		padded := make([]byte, count*sectorSize)
		copy(padded, payload)
		file = append(file, padded...)

		binary.BigEndian.PutUint32(file[c.Index*4:], uint32(sector)<<8|uint32(count))
		binary.BigEndian.PutUint32(file[sectorSize+c.Index*4:], c.Timestamp)
		sector += count
	}
	return file
}
