package renderer

import (
	"context"
	"fmt"
	"image"
	"math/rand"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetShapes() []geometry.Shape
}

// ProgressFunc is called after each completed row (sequential) or tile (parallel)
type ProgressFunc func(done, total int)

// ParallelOptions configures tile-parallel rendering
type ParallelOptions struct {
	Workers  int // Number of worker goroutines (<= 0 uses runtime.NumCPU)
	TileSize int // Tile edge length in pixels (<= 0 uses DefaultTileSize)
}

// Raytracer renders a scene into a linear-radiance texture
type Raytracer struct {
	scene      Scene
	integrator integrator.Integrator
	seed       int64
	logger     core.Logger
	progress   ProgressFunc
}

// NewRaytracer creates a new raytracer. All randomness derives from seed, so
// identical scenes and seeds produce identical images.
func NewRaytracer(scene Scene, seed int64) *Raytracer {
	return &Raytracer{
		scene:      scene,
		integrator: integrator.NewPathTracingIntegrator(scene.GetCamera().Background()),
		seed:       seed,
		logger:     core.NopLogger{},
	}
}

// SetLogger sets the logger used for render progress messages
func (rt *Raytracer) SetLogger(logger core.Logger) {
	if logger == nil {
		logger = core.NopLogger{}
	}
	rt.logger = logger
}

// SetProgressFunc registers a progress callback
func (rt *Raytracer) SetProgressFunc(progress ProgressFunc) {
	rt.progress = progress
}

func (rt *Raytracer) reportProgress(done, total int) {
	if rt.progress != nil {
		rt.progress(done, total)
	}
}

func (rt *Raytracer) baseStats(workers, tiles int) RenderStats {
	camera := rt.scene.GetCamera()
	return RenderStats{
		Width:           camera.Width(),
		Height:          camera.Height(),
		SamplesPerPixel: camera.SamplesPerPixel(),
		Primitives:      CountPrimitives(rt.scene.GetShapes()),
		Workers:         workers,
		Tiles:           tiles,
	}
}

// Render traces the whole image on the calling goroutine, row by row from the top
func (rt *Raytracer) Render() (*texture.Texture, RenderStats) {
	start := time.Now()
	camera := rt.scene.GetCamera()
	width, height := camera.Width(), camera.Height()
	stats := rt.baseStats(1, 0)

	rt.logger.Printf("Rendering %dx%d at %d spp (sequential)...\n", width, height, camera.SamplesPerPixel())

	random := rand.New(rand.NewSource(rt.seed))
	offsets := camera.SampleOffsets(random)

	tex := texture.New(width, height)
	tileRenderer := NewTileRenderer(camera, geometry.ShapeList(rt.scene.GetShapes()), rt.integrator)

	for y := 0; y < height; y++ {
		row := image.Rect(0, y, width, y+1)
		stats.TotalSamples += tileRenderer.RenderTileBounds(row, tex, offsets, random)
		rt.reportProgress(y+1, height)
	}

	stats.Duration = time.Since(start)
	return tex, stats
}

// RenderParallel shards the image into tiles rendered by a worker pool. Each tile
// owns a generator seeded from the raytracer seed and its tile ID, so the result
// does not depend on the number of workers. Cancelling ctx stops the render
// between tiles and returns the context's error.
func (rt *Raytracer) RenderParallel(ctx context.Context, options ParallelOptions) (*texture.Texture, RenderStats, error) {
	start := time.Now()
	camera := rt.scene.GetCamera()
	width, height := camera.Width(), camera.Height()

	random := rand.New(rand.NewSource(rt.seed))
	offsets := camera.SampleOffsets(random)

	tiles := NewTileGrid(width, height, options.TileSize)
	tex := texture.New(width, height)
	tileRenderer := NewTileRenderer(camera, geometry.ShapeList(rt.scene.GetShapes()), rt.integrator)

	pool := NewWorkerPool(ctx, tileRenderer, options.Workers, len(tiles))
	stats := rt.baseStats(pool.GetNumWorkers(), len(tiles))

	rt.logger.Printf("Rendering %dx%d at %d spp (%d tiles, %d workers)...\n",
		width, height, camera.SamplesPerPixel(), len(tiles), pool.GetNumWorkers())

	pool.Start()
	for _, tile := range tiles {
		pool.SubmitTask(TileTask{
			Tile:    tile,
			Seed:    rt.seed,
			Offsets: offsets,
			Target:  tex,
		})
	}

	// Collect every result so no worker blocks, remembering the first error
	var firstErr error
	completed := 0
	for range tiles {
		result, ok := pool.GetResult()
		if !ok {
			firstErr = fmt.Errorf("renderer: worker pool closed unexpectedly")
			break
		}
		if result.Error != nil {
			if firstErr == nil {
				firstErr = result.Error
			}
			continue
		}
		stats.TotalSamples += result.Samples
		completed++
		rt.reportProgress(completed, len(tiles))
	}
	pool.Stop()

	stats.Duration = time.Since(start)
	if firstErr != nil {
		return nil, stats, fmt.Errorf("renderer: render aborted: %w", firstErr)
	}
	return tex, stats, nil
}
