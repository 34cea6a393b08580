package schema

import "math/bits"

const (
	sectionSide  = 16
	biomeSide    = 4
	minBlockBits = 4
	minBiomeBits = 1
	longBits     = 64
)

// paletteIndex unpacks entry i of a palette index array. Entries never span
// two longs.
func paletteIndex(data []int64, paletteLen, minBits, i int) (int, bool) {
	if paletteLen == 1 {
		return 0, true
	}
	if paletteLen == 0 || len(data) == 0 {
		return 0, false
	}
	width := max(bits.Len(uint(paletteLen-1)), minBits)
	perLong := longBits / width
	word := i / perLong
	if word >= len(data) {
		return 0, false
	}
	shift := (i % perLong) * width
	idx := int((uint64(data[word]) >> shift) & (1<<width - 1))
	if idx >= paletteLen {
		return 0, false
	}
	return idx, true
}

// At returns the block at section relative coordinates 0-15.
func (b *BlockStates) At(x, y, z int) (BlockState, bool) {
	if x < 0 || y < 0 || z < 0 || x >= sectionSide || y >= sectionSide || z >= sectionSide {
		return BlockState{}, false
	}
	i := (y*sectionSide+z)*sectionSide + x
	idx, ok := paletteIndex(b.Data, len(b.Palette), minBlockBits, i)
	if !ok {
		return BlockState{}, false
	}
	return b.Palette[idx], true
}

// At returns the biome of the 4x4x4 cell at x, y, z in 0-3.
func (b *Biomes) At(x, y, z int) (string, bool) {
	if x < 0 || y < 0 || z < 0 || x >= biomeSide || y >= biomeSide || z >= biomeSide {
		return "", false
	}
	i := (y*biomeSide+z)*biomeSide + x
	idx, ok := paletteIndex(b.Data, len(b.Palette), minBiomeBits, i)
	if !ok {
		return "", false
	}
	return b.Palette[idx], true
}
