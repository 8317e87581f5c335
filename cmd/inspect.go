package cmd

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// parsePixel parses "x,y" pixel coordinates
func parsePixel(value string) (int, int, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid pixel %q, expected x,y", value)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid pixel x %q: %w", parts[0], err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid pixel y %q: %w", parts[1], err)
	}
	return x, y, nil
}

func newKeyValueTable(w io.Writer, title string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{title, "Value"})
	return table
}

func formatVec(v core.Vec3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}

// Inspect a scene: camera and primitive summary, glTF metadata for glTF files, and
// optionally the surface seen through one pixel.
func Inspect(ctx *cli.Context) error {
	setupLogging(ctx)

	ref := ctx.Args().First()
	var overrides []scene.CameraOverride
	if ctx.IsSet("height") {
		height := ctx.Int("height")
		overrides = append(overrides, func(c *renderer.CameraConfig) { c.Height = height })
	}

	sc, err := scene.Open(ref, ctx.String("scenes-dir"), nil, overrides...)
	if err != nil {
		return err
	}

	out := ctx.App.Writer
	camera := sc.Camera.Config()

	summary := newKeyValueTable(out, "Scene")
	summary.Append([]string{"Name", sc.Name})
	summary.Append([]string{"Resolution", fmt.Sprintf("%dx%d", sc.Camera.Width(), sc.Camera.Height())})
	summary.Append([]string{"Camera position", formatVec(camera.Position)})
	summary.Append([]string{"Camera look-at", formatVec(camera.LookAt)})
	summary.Append([]string{"Vertical FOV", fmt.Sprintf("%.2f", camera.VFov)})
	summary.Append([]string{"Samples per pixel", strconv.Itoa(camera.SamplesPerPixel)})
	summary.Append([]string{"Max depth", strconv.Itoa(camera.MaxDepth)})
	summary.Append([]string{"Background", formatVec(camera.Background)})
	summary.Append([]string{"Shapes", strconv.Itoa(len(sc.Shapes))})
	summary.Append([]string{"Primitives", strconv.Itoa(sc.GetPrimitiveCount())})

	if path, _ := scene.ResolvePath(ref, ctx.String("scenes-dir")); path != "" {
		info, err := loaders.ReadGLTFInfo(path)
		if err != nil {
			return err
		}
		summary.Append([]string{"glTF scene", info.SceneName})
		summary.Append([]string{"glTF cameras", strconv.Itoa(info.Cameras)})
		summary.Append([]string{"glTF meshes", strconv.Itoa(info.Meshes)})
		summary.Append([]string{"glTF triangles", strconv.Itoa(info.Triangles)})
	}
	summary.Render()

	if !ctx.IsSet("pixel") {
		return nil
	}

	x, y, err := parsePixel(ctx.String("pixel"))
	if err != nil {
		return err
	}
	result, err := sc.InspectPixel(x, y)
	if err != nil {
		return err
	}

	hitTable := newKeyValueTable(out, fmt.Sprintf("Pixel %d,%d", x, y))
	if !result.Hit {
		hitTable.Append([]string{"Hit", "background"})
		hitTable.Render()
		return nil
	}

	hitTable.Append([]string{"Geometry", result.GeometryType})
	hitTable.Append([]string{"Material", result.MaterialType})
	hitTable.Append([]string{"Distance", fmt.Sprintf("%.4f", result.Record.T)})
	hitTable.Append([]string{"Point", formatVec(result.Record.Point)})
	hitTable.Append([]string{"Normal", formatVec(result.Record.Normal)})
	hitTable.Append([]string{"Facing", result.Record.Facing.String()})

	keys := make([]string, 0, len(result.Properties))
	for k := range result.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		hitTable.Append([]string{k, result.Properties[k]})
	}
	hitTable.Render()
	return nil
}
