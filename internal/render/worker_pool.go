package render

import (
	"runtime"
	"sync"
)

// tileJob is one unit of work handed to a render worker, adapted from the
// teacher's channel-based WorkerPool/TileTask (pkg/renderer/worker_pool.go)
// to this renderer's per-pixel shading call instead of progressive
// path-tracing passes.
type tileJob struct {
	tile tile
}

// workerPool fans tiles out across a fixed number of goroutines and
// collects completion signals, mirroring the teacher's task/result channel
// pair. There is no cross-tile state: each worker writes only into its own
// tile's region of the shared framebuffer/aux buffer (spec.md §5).
type workerPool struct {
	jobs    chan tileJob
	done    chan struct{}
	workers int
}

func newWorkerPool(workers int) *workerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &workerPool{
		workers: workers,
		jobs:    make(chan tileJob),
		done:    make(chan struct{}),
	}
}

// run starts the pool, feeding every tile in tiles through renderTile, and
// blocks until all tiles are processed.
func (wp *workerPool) run(tiles []tile, renderTile func(tile)) {
	var wg sync.WaitGroup
	jobs := make(chan tileJob, len(tiles))
	for _, t := range tiles {
		jobs <- tileJob{tile: t}
	}
	close(jobs)

	for i := 0; i < wp.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				renderTile(job.tile)
			}
		}()
	}
	wg.Wait()
}
