package cmd

import (
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// List built-in scenes and glTF scenes found in the scenes directory.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	groups, err := scene.ListAllScenes(ctx.String("scenes-dir"))
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Group", "ID", "Name", "Description"})
	count := 0
	for _, group := range groups {
		for _, info := range group.Scenes {
			table.Append([]string{group.Name, info.ID, info.DisplayName, info.Description})
			count++
		}
	}
	table.Render()

	logger.Infof("found %d scenes in %d groups", count, len(groups))
	return nil
}
