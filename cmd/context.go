package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/folknology/atask/config"
	"github.com/folknology/atask/internal/output"
	"github.com/folknology/atask/internal/store"
)

// CommandContext holds common state for command execution.
// It encapsulates the shared setup logic across commands.
type CommandContext struct {
	Config *config.Config
	Store  *store.SQLite
}

// NewCommandContext creates a context from CLI flags.
// It loads configuration, opens the database, and seeds default labels.
func NewCommandContext(c *cli.Context) (*CommandContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	s, err := store.OpenSQLite(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := store.SeedDefaultLabels(c.Context, s); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to seed labels: %w", err)
	}

	return &CommandContext{
		Config: cfg,
		Store:  s,
	}, nil
}

// Close releases the database handle.
func (ctx *CommandContext) Close() error {
	return ctx.Store.Close()
}

// OutputOptions creates OutputOptions from CLI flags.
func OutputOptions(c *cli.Context) output.OutputOptions {
	return output.OutputOptions{
		Format:     getOutputFormat(c.String("format")),
		Limit:      c.Int("limit"),
		OutputPath: c.String("output"),
	}
}
