package anvil

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Julian-Alberts/mc-map-reader/nbt"
	"github.com/Julian-Alberts/mc-map-reader/schema"
)

// Save is a decoded region file. Chunks is indexed like the header; empty
// slots and slots that failed to decode are nil.
type Save[T any] struct {
	Header   *RegionHeader
	Chunks   [ChunksPerRegion]*T
	Failures []*ChunkError
}

// AnvilSave is a decoded file of the region directory.
type AnvilSave = Save[schema.ChunkData]

// EntitySave is a decoded file of the entities directory.
type EntitySave = Save[schema.EntityChunk]

// Chunk returns the decoded chunk at region relative x and z.
func (s *Save[T]) Chunk(x, z int) *T {
	if x < 0 || z < 0 || x >= regionSide || z >= regionSide {
		return nil
	}
	return s.Chunks[x+z*regionSide]
}

// Len is the number of chunks that decoded.
func (s *Save[T]) Len() int {
	n := 0
	for _, c := range s.Chunks {
		if c != nil {
			n++
		}
	}
	return n
}

// Err joins the per-chunk failures, or returns nil when every populated slot
// decoded.
func (s *Save[T]) Err() error {
	errs := make([]error, len(s.Failures))
	for i, f := range s.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// ChunkError is the failure of a single slot.
type ChunkError struct {
	Info ChunkInfo
	Err  error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("anvil: chunk %d,%d: %s", e.Info.X(), e.Info.Z(), e.Err)
}

func (e *ChunkError) Unwrap() error { return e.Err }

type options struct {
	workers  int
	external ExternalLoader
}

// Option configures DecodeRegion.
type Option func(*options)

// WithWorkers decodes chunks on n goroutines. n <= 0 uses one per CPU.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = runtime.NumCPU()
		}
		o.workers = n
	}
}

// WithExternalLoader resolves payloads stored in .mcc files.
func WithExternalLoader(l ExternalLoader) Option {
	return func(o *options) { o.external = l }
}

// DecodeRegion decodes every populated slot of a region file. Only a broken
// header fails the whole file; chunks that fail are recorded in Failures and
// the rest are still decoded.
func DecodeRegion(file []byte, opts ...Option) (*AnvilSave, error) {
	return decodeRegion(file, schema.DecodeChunk, opts)
}

// DecodeEntityRegion is DecodeRegion for the files of the entities directory.
func DecodeEntityRegion(file []byte, opts ...Option) (*EntitySave, error) {
	return decodeRegion(file, schema.DecodeEntityChunk, opts)
}

func decodeRegion[T any](file []byte, decode func(nbt.Compound) (*T, error), opts []Option) (*Save[T], error) {
	o := options{workers: 1}
	for _, opt := range opts {
		opt(&o)
	}

	header, err := ParseHeader(file)
	if err != nil {
		return nil, err
	}

	save := &Save[T]{Header: header}
	var errs [ChunksPerRegion]error

	decodeSlot := func(info ChunkInfo) {
		root, err := ReadChunkTag(file, info, o.external)
		if err == nil {
			save.Chunks[info.Index], err = decode(root)
		}
		errs[info.Index] = err
	}

	populated := header.Populated()
	if o.workers <= 1 {
		for _, info := range populated {
			decodeSlot(info)
		}
	} else {
		jobs := make(chan ChunkInfo)
		var wg sync.WaitGroup
		wg.Add(o.workers)
		for i := 0; i < o.workers; i++ {
			go func() {
				defer wg.Done()
				for info := range jobs {
					decodeSlot(info)
				}
			}()
		}
		for _, info := range populated {
			jobs <- info
		}
		close(jobs)
		wg.Wait()
	}

	for _, info := range populated {
		if err := errs[info.Index]; err != nil {
			save.Chunks[info.Index] = nil
			save.Failures = append(save.Failures, &ChunkError{Info: info, Err: err})
		}
	}
	return save, nil
}
