package cmd

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/folknology/atask/internal/git"
	"github.com/folknology/atask/internal/output"
	"github.com/folknology/atask/internal/store"
	"github.com/folknology/atask/internal/tracker"
)

// IssuesCmd returns the issues command.
func IssuesCmd() *cli.Command {
	return &cli.Command{
		Name:    "issues",
		Aliases: []string{"i"},
		Usage:   "Manage tracked issues",
		Subcommands: []*cli.Command{
			issuesListCmd(),
			issuesCreateCmd(),
			issuesImportCmd(),
		},
	}
}

func issuesListCmd() *cli.Command {
	return &cli.Command{
		Name:   "list",
		Usage:  "List tracked issues",
		Flags:  commonFlags(),
		Action: issuesListAction,
	}
}

func issuesCreateCmd() *cli.Command {
	flags := append(commonFlags(),
		&cli.StringFlag{
			Name:     "title",
			Aliases:  []string{"t"},
			Usage:    "Issue title",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "description",
			Aliases: []string{"d"},
			Usage:   "Issue description",
		},
		&cli.StringFlag{
			Name:    "priority",
			Aliases: []string{"p"},
			Usage:   "Priority (low, medium, high, critical)",
			Value:   "medium",
		},
		&cli.StringSliceFlag{
			Name:    "label",
			Aliases: []string{"l"},
			Usage:   "Label to attach (can be specified multiple times)",
		},
		&cli.StringFlag{
			Name:  "assignee",
			Usage: "Assignee name",
		},
	)

	return &cli.Command{
		Name:   "create",
		Usage:  "Create a new issue",
		Flags:  flags,
		Action: issuesCreateAction,
	}
}

func issuesImportCmd() *cli.Command {
	flags := append(commonFlags(),
		&cli.StringFlag{
			Name:  "owner",
			Usage: "GitHub repository owner (default: from config or origin remote)",
		},
		&cli.StringFlag{
			Name:  "project",
			Usage: "GitHub repository name (default: from config or origin remote)",
		},
	)

	return &cli.Command{
		Name:   "import",
		Usage:  "Import open GitHub issues that are not yet tracked",
		Flags:  flags,
		Action: issuesImportAction,
	}
}

func issuesListAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	defer ctx.Close()

	issues, err := ctx.Store.Issues(c.Context)
	if err != nil {
		return fmt.Errorf("failed to list issues: %w", err)
	}

	report := &output.IssueListReport{
		GeneratedAt: time.Now(),
		Issues:      issues,
	}

	opts := OutputOptions(c)
	return output.NewIssueReportWriter(opts.Format).Write(report, opts)
}

func issuesCreateAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	defer ctx.Close()

	priority, err := store.ParsePriority(c.String("priority"))
	if err != nil {
		return err
	}

	issue := &store.Issue{
		Title:       c.String("title"),
		Description: c.String("description"),
		Status:      store.StatusOpen,
		Priority:    priority,
		Assignee:    c.String("assignee"),
		Labels:      c.StringSlice("label"),
	}

	id, err := ctx.Store.InsertIssue(c.Context, issue)
	if err != nil {
		return fmt.Errorf("failed to create issue: %w", err)
	}

	fmt.Printf("Created issue #%d: %s\n", id, issue.Title)
	return nil
}

func issuesImportAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	defer ctx.Close()

	owner, project, err := resolveRemote(c, ctx)
	if err != nil {
		return err
	}

	var client *tracker.Client
	if token := ctx.Config.GitHub.Token; token != "" {
		client, err = tracker.NewClient(token, owner, project)
	} else {
		client, err = tracker.NewClientFromEnv(owner, project)
	}
	if err != nil {
		return err
	}

	syncer := tracker.NewSyncer(client, ctx.Store)
	imported, err := syncer.ImportOpenIssues(c.Context)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Printf("Imported %d issues from %s/%s.\n", imported, owner, project)
	return nil
}

// resolveRemote determines the GitHub owner/project from flags, config,
// or the repository's configured remote, in that order.
func resolveRemote(c *cli.Context, ctx *CommandContext) (string, string, error) {
	owner := c.String("owner")
	project := c.String("project")
	if owner == "" {
		owner = ctx.Config.GitHub.Owner
	}
	if project == "" {
		project = ctx.Config.GitHub.Repo
	}
	if owner != "" && project != "" {
		return owner, project, nil
	}

	repo, err := git.Open(ctx.Config.Repo.Path, git.ExtractOptions{})
	if err != nil {
		return "", "", fmt.Errorf("cannot determine GitHub repository: %w", err)
	}
	url, err := repo.RemoteURL(ctx.Config.Repo.Remote)
	if err != nil {
		return "", "", fmt.Errorf("cannot determine GitHub repository: %w", err)
	}
	return git.ParseRemoteURL(url)
}
