package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/folknology/atask/internal/board"
)

// BoardCmd returns the board command.
func BoardCmd() *cli.Command {
	return &cli.Command{
		Name:    "board",
		Aliases: []string{"b"},
		Usage:   "Print the workflow board to the console",
		Flags:   commonFlags(),
		Action:  boardAction,
	}
}

func boardAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	defer ctx.Close()

	issues, err := ctx.Store.Issues(c.Context)
	if err != nil {
		return fmt.Errorf("failed to list issues: %w", err)
	}

	b := board.Build(ctx.Config.Web.Title, issues, nil)

	color.Green("%s (%d cards)", b.Title, b.TotalCards())
	for _, column := range b.Columns {
		fmt.Printf("\n%s (%d)\n", color.CyanString(column.Title), len(column.Cards))
		if len(column.Cards) == 0 {
			fmt.Println("  -")
			continue
		}
		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, card := range column.Cards {
			fmt.Fprintf(tw, "  #%d\t%s\t%s\n", card.IssueID, card.Priority, card.Title)
		}
		tw.Flush()
	}
	return nil
}
