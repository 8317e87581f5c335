package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/df07/go-pathtracer/pkg/texture"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// RenderFlags are the flags accepted by the render command
var RenderFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "config, c",
		Usage: "YAML render configuration",
	},
	cli.StringFlag{
		Name:  "scene, s",
		Usage: "built-in scene ID, gltf:<name> or path to a .gltf/.glb file",
	},
	cli.StringFlag{
		Name:  "scenes-dir",
		Value: "scenes",
		Usage: "directory searched for gltf:<name> scenes",
	},
	cli.StringFlag{
		Name:  "out, o",
		Usage: "output image (.png, .jpg, .bmp or .tiff)",
	},
	cli.IntFlag{
		Name:  "spp",
		Usage: "samples per pixel",
	},
	cli.IntFlag{
		Name:  "depth",
		Usage: "maximum ray bounce depth",
	},
	cli.IntFlag{
		Name:  "height",
		Usage: "image height in pixels",
	},
	cli.IntFlag{
		Name:  "workers, w",
		Usage: "render goroutines (0 uses the logical CPU count)",
	},
	cli.IntFlag{
		Name:  "tile-size",
		Usage: "tile edge length in pixels",
	},
	cli.Int64Flag{
		Name:  "seed",
		Usage: "random seed",
	},
	cli.BoolFlag{
		Name:  "sequential",
		Usage: "render on a single goroutine",
	},
}

// loadConfig reads the configuration named by --config, or the defaults, and
// applies command line overrides
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := ctx.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}

	if ctx.IsSet("scene") {
		cfg.Scene = ctx.String("scene")
	}
	if ctx.IsSet("out") {
		cfg.Output.Path = ctx.String("out")
	}
	if ctx.IsSet("spp") {
		spp := ctx.Int("spp")
		cfg.Camera.SamplesPerPixel = &spp
	}
	if ctx.IsSet("depth") {
		depth := ctx.Int("depth")
		cfg.Camera.MaxDepth = &depth
	}
	if ctx.IsSet("height") {
		height := ctx.Int("height")
		cfg.Camera.Height = &height
	}
	if ctx.IsSet("workers") {
		cfg.Render.Workers = ctx.Int("workers")
	}
	if ctx.IsSet("tile-size") {
		cfg.Render.TileSize = ctx.Int("tile-size")
	}
	if ctx.IsSet("seed") {
		cfg.Render.Seed = ctx.Int64("seed")
	}
	if ctx.Bool("sequential") {
		cfg.Render.Sequential = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	sc, err := cfg.BuildScene(ctx.String("scenes-dir"))
	if err != nil {
		return err
	}
	logger.Infof("loaded scene %q with %d primitives", sc.Name, sc.GetPrimitiveCount())

	rt := renderer.NewRaytracer(sc, cfg.Render.Seed)
	rt.SetLogger(log.Printf(logger))
	rt.SetProgressFunc(progressLogger())

	var (
		tex   *texture.Texture
		stats renderer.RenderStats
	)
	if cfg.Render.Sequential {
		tex, stats = rt.Render()
	} else {
		workers := cfg.Render.Workers
		if workers == 0 {
			host := hostInfo()
			workers = host.LogicalCores
			logger.Infof("host: %s, %d logical cores, %d GB RAM", host.CPUModel, host.LogicalCores, host.TotalMemoryGB)
		}

		renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		tex, stats, err = rt.RenderParallel(renderCtx, renderer.ParallelOptions{
			Workers:  workers,
			TileSize: cfg.Render.TileSize,
		})
		if err != nil {
			return err
		}
	}

	if dir := filepath.Dir(cfg.Output.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := loaders.SaveImage(cfg.Output.Path, tex); err != nil {
		return err
	}

	displayRenderStats(sc, stats, renderer.CalculateAverageLuminance(tex))
	logger.Noticef("render saved as %s", cfg.Output.Path)
	return nil
}

func displayRenderStats(sc *scene.Scene, stats renderer.RenderStats, luminance float64) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Size", "SPP", "Primitives", "Workers", "Tiles", "Samples", "Samples/s"})
	table.Append([]string{
		sc.Name,
		fmt.Sprintf("%dx%d", stats.Width, stats.Height),
		fmt.Sprintf("%d", stats.SamplesPerPixel),
		fmt.Sprintf("%d", stats.Primitives),
		fmt.Sprintf("%d", stats.Workers),
		fmt.Sprintf("%d", stats.Tiles),
		fmt.Sprintf("%d", stats.TotalSamples),
		fmt.Sprintf("%.0f", stats.SamplesPerSecond()),
	})
	table.SetFooter([]string{"", "", "", "", "", "LUMINANCE", fmt.Sprintf("%.4f", luminance), stats.Duration.String()})

	table.Render()
	logger.Noticef("render statistics\n%s", buf.String())
}
