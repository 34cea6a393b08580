package world

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Julian-Alberts/mc-map-reader/anvil"
	"github.com/Julian-Alberts/mc-map-reader/schema"
)

// WalkFunc receives every decoded chunk. Returning an error stops the walk.
type WalkFunc[T any] func(pos anvil.ChunkPos, chunk *T) error

// Walk calls fn for every chunk in area, or in the whole world when area is
// nil. Regions are decoded concurrently but fn is only called from the
// calling goroutine. Regions and chunks that fail to decode are logged and
// skipped.
func (w *World) Walk(ctx context.Context, area *anvil.Area, fn WalkFunc[schema.ChunkData]) error {
	regions, err := w.Regions(area)
	if err != nil {
		return err
	}
	return walk(ctx, w, regions, area, w.LoadRegion, fn)
}

// WalkEntities is Walk over the entities directory.
func (w *World) WalkEntities(ctx context.Context, area *anvil.Area, fn WalkFunc[schema.EntityChunk]) error {
	regions, err := w.EntityRegions(area)
	if err != nil {
		return err
	}
	return walk(ctx, w, regions, area, w.LoadEntities, fn)
}

type regionResult[T any] struct {
	pos  anvil.RegionPos
	save *anvil.Save[T]
	err  error
}

func walk[T any](ctx context.Context, w *World, regions []anvil.RegionPos, area *anvil.Area,
	load func(anvil.RegionPos) (*anvil.Save[T], error), fn WalkFunc[T]) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan regionResult[T])
	slots := make(chan struct{}, w.workers)

	var wg sync.WaitGroup
	wg.Add(len(regions))
	for _, pos := range regions {
		go func(pos anvil.RegionPos) {
			defer wg.Done()
			select {
			case slots <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-slots }()

			save, err := load(pos)
			select {
			case results <- regionResult[T]{pos: pos, save: save, err: err}:
			case <-ctx.Done():
			}
		}(pos)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		log := w.log.WithField("region", res.pos.FileName())
		if res.err != nil {
			log.WithError(res.err).Warn("unable to read region")
			continue
		}
		for _, failure := range res.save.Failures {
			log.WithFields(logrus.Fields{
				"chunk": fmt.Sprintf("%d,%d", failure.Info.X(), failure.Info.Z()),
				"field": schema.FieldPath(failure.Err),
			}).WithError(failure.Err).Warn("unable to decode chunk")
		}

		for i, chunk := range res.save.Chunks {
			if chunk == nil {
				continue
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			pos := res.pos.Chunk(i%32, i/32)
			if area != nil && !area.Contains(pos) {
				continue
			}
			if err := fn(pos, chunk); err != nil {
				return err
			}
		}
	}
	return ctx.Err()
}
