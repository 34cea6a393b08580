// Package world reads the region and entity files of a whole save directory.
package world

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/Julian-Alberts/mc-map-reader/anvil"
	"github.com/Julian-Alberts/mc-map-reader/schema"
)

// ErrNoRegion is returned for regions without a file on disk.
var ErrNoRegion = errors.New("world: region does not exist")

// Options configures Open.
type Options struct {
	// Workers bounds the goroutines decoding one region and the regions
	// decoded at once by Walk. Zero uses one per CPU.
	Workers int
	// CachedRegions is the number of decoded regions kept in memory per
	// directory. Zero disables the cache.
	CachedRegions int64
	Logger        logrus.FieldLogger
}

// World is a save directory. It is safe for concurrent use.
type World struct {
	regionDir string
	entityDir string
	workers   int
	log       logrus.FieldLogger

	regions  *regionCache[schema.ChunkData]
	entities *regionCache[schema.EntityChunk]
}

// Open prepares the save at root. root is either the world directory holding
// region/ and entities/, or a directory of region files.
func Open(root string, opts Options) (*World, error) {
	st, err := os.Stat(root)
	if err != nil {
		return nil, &anvil.ReadError{Path: root, Err: err}
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("world: %s is not a directory", root)
	}

	w := &World{
		regionDir: root,
		entityDir: filepath.Join(root, "entities"),
		workers:   opts.Workers,
		log:       opts.Logger,
	}
	if st, err := os.Stat(filepath.Join(root, "region")); err == nil && st.IsDir() {
		w.regionDir = filepath.Join(root, "region")
	}
	if w.workers <= 0 {
		w.workers = runtime.NumCPU()
	}
	if w.log == nil {
		w.log = logrus.StandardLogger()
	}

	if w.regions, err = newRegionCache[schema.ChunkData](opts.CachedRegions); err != nil {
		return nil, err
	}
	if w.entities, err = newRegionCache[schema.EntityChunk](opts.CachedRegions); err != nil {
		w.regions.close()
		return nil, err
	}
	return w, nil
}

// RegionDir is the directory region files are read from.
func (w *World) RegionDir() string { return w.regionDir }

// Regions lists the regions with a file on disk, restricted to area when it
// is not nil.
func (w *World) Regions(area *anvil.Area) ([]anvil.RegionPos, error) {
	return listRegions(w.regionDir, area)
}

// EntityRegions is Regions for the entities directory.
func (w *World) EntityRegions(area *anvil.Area) ([]anvil.RegionPos, error) {
	if _, err := os.Stat(w.entityDir); os.IsNotExist(err) {
		return nil, nil
	}
	return listRegions(w.entityDir, area)
}

func listRegions(dir string, area *anvil.Area) ([]anvil.RegionPos, error) {
	paths, err := anvil.RegionFiles(dir, area)
	if err != nil {
		return nil, err
	}
	regions := make([]anvil.RegionPos, 0, len(paths))
	for _, path := range paths {
		if pos, ok := anvil.ParseRegionFileName(filepath.Base(path)); ok {
			regions = append(regions, pos)
		}
	}
	return regions, nil
}

// LoadRegion decodes the region file at pos, or returns it from the cache.
// Cached saves are shared between callers and must not be modified.
func (w *World) LoadRegion(pos anvil.RegionPos) (*anvil.AnvilSave, error) {
	return loadRegion(w, w.regions, w.regionDir, pos, anvil.DecodeRegionFile)
}

// LoadEntities decodes the entities file at pos, or returns it from the cache.
func (w *World) LoadEntities(pos anvil.RegionPos) (*anvil.EntitySave, error) {
	return loadRegion(w, w.entities, w.entityDir, pos, anvil.DecodeEntityRegionFile)
}

func loadRegion[T any](w *World, cache *regionCache[T], dir string, pos anvil.RegionPos,
	decode func(string, ...anvil.Option) (*anvil.Save[T], error)) (*anvil.Save[T], error) {
	if save, ok := cache.get(pos); ok {
		return save, nil
	}

	save, err := decode(filepath.Join(dir, pos.FileName()),
		anvil.WithWorkers(w.workers),
		anvil.WithExternalLoader(anvil.MCCLoader(dir, pos)))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoRegion, pos.FileName())
	}
	if err != nil {
		return nil, err
	}
	cache.set(pos, save)
	return save, nil
}

// Chunk returns the chunk at an absolute position. Chunks that failed to
// decode return their *anvil.ChunkError.
func (w *World) Chunk(pos anvil.ChunkPos) (*schema.ChunkData, error) {
	save, err := w.LoadRegion(pos.Region())
	if err != nil {
		return nil, err
	}
	return chunkAt(save, pos)
}

// Entities returns the entities stored for the chunk at an absolute position.
func (w *World) Entities(pos anvil.ChunkPos) (*schema.EntityChunk, error) {
	save, err := w.LoadEntities(pos.Region())
	if err != nil {
		return nil, err
	}
	return chunkAt(save, pos)
}

func chunkAt[T any](save *anvil.Save[T], pos anvil.ChunkPos) (*T, error) {
	x, z := pos.Local()
	if chunk := save.Chunk(x, z); chunk != nil {
		return chunk, nil
	}
	for _, failure := range save.Failures {
		if failure.Info.X() == x && failure.Info.Z() == z {
			return nil, failure
		}
	}
	return nil, fmt.Errorf("%w: %d,%d", anvil.ErrNoChunk, pos.X, pos.Z)
}

// Close releases the region caches.
func (w *World) Close() {
	w.regions.close()
	w.entities.close()
}
