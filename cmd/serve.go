package cmd

import (
	"context"
	"fmt"

	"github.com/maxbolgarin/contem"
	"github.com/maxbolgarin/logze/v2"
	"github.com/urfave/cli/v2"

	"github.com/folknology/atask/internal/web"
)

// ServeCmd returns the serve command.
func ServeCmd() *cli.Command {
	flags := append(commonFlags(),
		&cli.StringFlag{
			Name:    "address",
			Aliases: []string{"a"},
			Usage:   "Listen address for the board server",
		},
	)

	return &cli.Command{
		Name:   "serve",
		Usage:  "Serve the task board over HTTP",
		Flags:  flags,
		Action: serveAction,
	}
}

func serveAction(c *cli.Context) (err error) {
	cmdCtx, err := NewCommandContext(c)
	if err != nil {
		return err
	}

	ctx := contem.New(contem.WithLogger(logze.DefaultPtr()), contem.Exit(&err))
	defer ctx.Shutdown()

	ctx.Add(func(context.Context) error { return cmdCtx.Close() })

	cfg := web.Config{
		Address: cmdCtx.Config.Web.Address,
		Title:   cmdCtx.Config.Web.Title,
		Timeout: cmdCtx.Config.Web.Timeout(),
	}
	if addr := c.String("address"); addr != "" {
		cfg.Address = addr
	}

	server, err := web.New(cfg, cmdCtx.Store)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	ctx.Add(server.Stop)

	fmt.Printf("Task board listening on %s\n", cfg.Address)
	<-ctx.Done()
	return nil
}
