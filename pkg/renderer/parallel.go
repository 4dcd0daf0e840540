package renderer

import (
	"context"
	"fmt"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// ParallelConfig contains configuration for tiled parallel rendering
type ParallelConfig struct {
	TileSize   int // Edge length of each square tile in pixels
	NumWorkers int // Number of worker goroutines (0 = auto-detect)
}

// DefaultParallelConfig returns sensible default values
func DefaultParallelConfig() ParallelConfig {
	return ParallelConfig{
		TileSize:   32,
		NumWorkers: 0,
	}
}

// ParallelRenderer splits each frame into tiles and renders them on a worker pool.
// A ParallelRenderer renders one frame at a time; RenderFrame must not be called concurrently.
type ParallelRenderer struct {
	wall       WallConfig
	config     ParallelConfig
	tiles      []*Tile
	workerPool *WorkerPool
	logger     core.Logger
}

// NewParallelRenderer creates a renderer and starts its workers. Call Close when done.
func NewParallelRenderer(object core.Hittable, wall WallConfig, config ParallelConfig, logger core.Logger) *ParallelRenderer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultParallelConfig().TileSize
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	tiles := NewTileGrid(wall.Width, wall.Height, config.TileSize)
	workerPool := NewWorkerPool(object, wall, len(tiles), config.NumWorkers)
	workerPool.Start()

	logger.Printf("Parallel renderer: %dx%d frame, %d tiles, %d workers\n",
		wall.Width, wall.Height, len(tiles), workerPool.GetNumWorkers())

	return &ParallelRenderer{
		wall:       wall,
		config:     config,
		tiles:      tiles,
		workerPool: workerPool,
		logger:     logger,
	}
}

// Wall returns the projection used by the renderer
func (pr *ParallelRenderer) Wall() WallConfig {
	return pr.wall
}

// RenderFrame renders every tile into frame and waits for all of them.
// Tiles not yet started when ctx is cancelled are skipped and the context error is returned.
func (pr *ParallelRenderer) RenderFrame(ctx context.Context, frame *Frame) (RenderStats, error) {
	if frame.Width != pr.wall.Width || frame.Height != pr.wall.Height {
		return RenderStats{}, fmt.Errorf("frame is %dx%d, renderer expects %dx%d",
			frame.Width, frame.Height, pr.wall.Width, pr.wall.Height)
	}

	for i, tile := range pr.tiles {
		pr.workerPool.SubmitTask(TileTask{
			Ctx:    ctx,
			Tile:   tile,
			TaskID: i,
			Frame:  frame,
		})
	}

	var stats RenderStats
	var firstErr error
	for range pr.tiles {
		result, ok := pr.workerPool.GetResult()
		if !ok {
			return stats, fmt.Errorf("worker pool closed during render")
		}
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
			}
			continue
		}
		stats.Add(result.Stats)
	}

	if firstErr != nil {
		return stats, fmt.Errorf("render frame: %w", firstErr)
	}
	return stats, nil
}

// Close stops the worker pool
func (pr *ParallelRenderer) Close() {
	pr.workerPool.Stop()
}
