package main

import (
	"os"

	"github.com/df07/go-pathtracer/cmd"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/urfave/cli"
)

var logger = log.New("pathtracer")

func newApp() *cli.App {
	// -v selects verbose logging, so the version flag keeps only its long name
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "pathtracer"
	app.Usage = "render scenes using Monte-Carlo path tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a still frame",
			Description: `
Render a built-in scene, a glTF scene or a YAML render configuration and save the
result as an image. Command line flags override values from --config.

Tiles are rendered in parallel unless --sequential is given. The output depends
only on the scene and --seed, not on the number of workers.`,
			Flags:  cmd.RenderFlags,
			Action: cmd.RenderFrame,
		},
		{
			Name:  "scenes",
			Usage: "list built-in and glTF scenes",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scenes-dir",
					Value: "scenes",
					Usage: "directory scanned for .gltf and .glb files",
				},
			},
			Action: cmd.ListScenes,
		},
		{
			Name:      "inspect",
			Usage:     "print a scene summary and optionally the surface under a pixel",
			ArgsUsage: "[scene]",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scenes-dir",
					Value: "scenes",
					Usage: "directory searched for gltf:<name> scenes",
				},
				cli.StringFlag{
					Name:  "pixel, p",
					Usage: "pixel coordinates x,y to cast an inspection ray through",
				},
				cli.IntFlag{
					Name:  "height",
					Usage: "image height used to map pixel coordinates",
				},
			},
			Action: cmd.Inspect,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
