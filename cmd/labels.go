package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/folknology/atask/internal/store"
)

// LabelsCmd returns the labels command.
func LabelsCmd() *cli.Command {
	return &cli.Command{
		Name:  "labels",
		Usage: "Manage labels",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List known labels",
				Flags:  commonFlags(),
				Action: labelsListAction,
			},
			{
				Name:      "create",
				Usage:     "Create a label",
				ArgsUsage: "<name>",
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:  "color",
						Usage: "Hex display color",
						Value: "ededed",
					},
					&cli.StringFlag{
						Name:    "description",
						Aliases: []string{"d"},
						Usage:   "Label description",
					},
				),
				Action: labelsCreateAction,
			},
		},
	}
}

func labelsListAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	defer ctx.Close()

	labels, err := ctx.Store.Labels(c.Context)
	if err != nil {
		return fmt.Errorf("failed to list labels: %w", err)
	}

	color.Green("Labels")
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tName\tColor\tDescription")
	for _, l := range labels {
		fmt.Fprintf(tw, "%d\t%s\t#%s\t%s\n", l.ID, l.Name, l.Color, l.Description)
	}
	return tw.Flush()
}

func labelsCreateAction(c *cli.Context) error {
	name := c.Args().First()
	if name == "" {
		return fmt.Errorf("usage: labels create <name>")
	}

	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	defer ctx.Close()

	id, err := ctx.Store.InsertLabel(c.Context, &store.Label{
		Name:        name,
		Color:       c.String("color"),
		Description: c.String("description"),
	})
	if err != nil {
		return fmt.Errorf("failed to create label: %w", err)
	}

	fmt.Printf("Created label %q (#%d)\n", name, id)
	return nil
}
