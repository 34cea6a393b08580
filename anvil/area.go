package anvil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// ChunkPos is an absolute chunk coordinate.
type ChunkPos struct {
	X int
	Z int
}

// Region returns the region holding the chunk. The shift rounds towards
// negative infinity, so chunk -1 is in region -1.
func (p ChunkPos) Region() RegionPos {
	return RegionPos{X: p.X >> 5, Z: p.Z >> 5}
}

// Local returns the chunk coordinates relative to its region.
func (p ChunkPos) Local() (x, z int) {
	return p.X & (regionSide - 1), p.Z & (regionSide - 1)
}

// RegionPos is the coordinate of a 32x32 chunk region.
type RegionPos struct {
	X int
	Z int
}

// FileName is the conventional r.<x>.<z>.mca name of the region.
func (p RegionPos) FileName() string {
	return fmt.Sprintf("r.%d.%d.mca", p.X, p.Z)
}

// Chunk returns the absolute position of a region relative chunk.
func (p RegionPos) Chunk(x, z int) ChunkPos {
	return ChunkPos{X: p.X*regionSide + x, Z: p.Z*regionSide + z}
}

// ParseRegionFileName extracts the region coordinates from an r.<x>.<z>.mca
// file name.
func ParseRegionFileName(name string) (RegionPos, bool) {
	var pos RegionPos
	if !strings.HasPrefix(name, "r.") || !strings.HasSuffix(name, ".mca") {
		return pos, false
	}
	parts := strings.Split(strings.TrimSuffix(strings.TrimPrefix(name, "r."), ".mca"), ".")
	if len(parts) != 2 {
		return pos, false
	}
	x, errX := strconv.Atoi(parts[0])
	z, errZ := strconv.Atoi(parts[1])
	if errX != nil || errZ != nil {
		return pos, false
	}
	pos = RegionPos{X: x, Z: z}
	return pos, pos.FileName() == name
}

// Area is an inclusive rectangle of chunks.
type Area struct {
	Min ChunkPos
	Max ChunkPos
}

// NewArea builds the rectangle spanned by two corners given in any order.
func NewArea(a, b ChunkPos) Area {
	return Area{
		Min: ChunkPos{X: min(a.X, b.X), Z: min(a.Z, b.Z)},
		Max: ChunkPos{X: max(a.X, b.X), Z: max(a.Z, b.Z)},
	}
}

// Contains reports whether p lies in the area.
func (a Area) Contains(p ChunkPos) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X && p.Z >= a.Min.Z && p.Z <= a.Max.Z
}

// Regions lists the regions overlapping the area, row by row.
func (a Area) Regions() []RegionPos {
	lo, hi := a.Min.Region(), a.Max.Region()
	out := make([]RegionPos, 0, (hi.X-lo.X+1)*(hi.Z-lo.Z+1))
	for z := lo.Z; z <= hi.Z; z++ {
		for x := lo.X; x <= hi.X; x++ {
			out = append(out, RegionPos{X: x, Z: z})
		}
	}
	return out
}

// RegionsInArea lists the regions covering the rectangle between two chunk
// corners.
func RegionsInArea(a, b ChunkPos) []RegionPos {
	return NewArea(a, b).Regions()
}

// RegionFiles returns the paths of the region files in dir. With a non-nil
// area only files overlapping it are returned. Paths are sorted.
func RegionFiles(dir string, area *Area) ([]string, error) {
	var paths []string

	if area != nil {
		for _, pos := range area.Regions() {
			path := filepath.Join(dir, pos.FileName())
			if st, err := os.Stat(path); err == nil && st.Mode().IsRegular() {
				paths = append(paths, path)
			} else if err != nil && !os.IsNotExist(err) {
				return nil, &ReadError{Path: path, Err: err}
			}
		}
		sort.Strings(paths)
		return paths, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &ReadError{Path: dir, Err: err}
	}
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			if _, ok := ParseRegionFileName(entry.Name()); ok {
				paths = append(paths, filepath.Join(dir, entry.Name()))
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}
