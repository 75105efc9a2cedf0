package cmd

import (
	"fmt"

	"github.com/gosuri/uilive"
	"github.com/urfave/cli/v2"

	"github.com/folknology/atask/internal/git"
	"github.com/folknology/atask/internal/ingest"
	"github.com/folknology/atask/internal/store"
)

// SyncCmd returns the sync command.
func SyncCmd() *cli.Command {
	flags := append(commonFlags(),
		&cli.StringFlag{
			Name:    "strategy",
			Aliases: []string{"s"},
			Usage:   "History extraction strategy (graph, log)",
			Value:   "graph",
		},
		&cli.IntFlag{
			Name:  "max-commits",
			Usage: "Stop after this many commits (0 = full history)",
		},
	)

	return &cli.Command{
		Name:    "sync",
		Aliases: []string{"s"},
		Usage:   "Extract commit history and store new commits",
		Flags:   flags,
		Action:  syncAction,
	}
}

func syncAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	defer ctx.Close()

	opts := git.ExtractOptions{
		Limit:   c.Int("max-commits"),
		Include: ctx.Config.Filters.Include,
		Exclude: ctx.Config.Filters.Exclude,
	}

	extractor, err := newExtractor(c, ctx.Config.Repo.Path, opts)
	if err != nil {
		return err
	}

	commits, err := extractor.Commits(c.Context)
	if err != nil {
		return fmt.Errorf("failed to extract history: %w", err)
	}

	if len(commits) == 0 {
		fmt.Println("No commits found.")
		return nil
	}

	progress := uilive.New()
	progress.Start()

	coordinator := ingest.New(ctx.Store)
	coordinator.OnProgress = func(seen, inserted int) {
		fmt.Fprintf(progress, "Syncing commits... %d/%d (%d new)\n", seen, len(commits), inserted)
	}

	inserted, err := coordinator.Run(c.Context, commits)
	progress.Stop()
	if err != nil {
		return fmt.Errorf("sync aborted after %d new commits: %w", inserted, err)
	}

	fmt.Printf("Synced %d commits: %d new, %d already stored.\n",
		len(commits), inserted, len(commits)-inserted)

	if path := ctx.Config.Database.ArchivePath; path != "" {
		archived, err := archiveCommits(c, path, commits)
		if err != nil {
			return fmt.Errorf("archive failed: %w", err)
		}
		fmt.Printf("Archived %d new commits to %s.\n", archived, path)
	}

	return nil
}

// newExtractor selects the history extraction strategy.
func newExtractor(c *cli.Context, repoPath string, opts git.ExtractOptions) (git.HistoryExtractor, error) {
	switch strategy := c.String("strategy"); strategy {
	case "graph", "":
		repo, err := git.Open(repoPath, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to open repository: %w", err)
		}
		return repo, nil
	case "log":
		raw, err := git.ExportLog(c.Context, repoPath)
		if err != nil {
			return nil, fmt.Errorf("failed to export log: %w", err)
		}
		return git.NewLogParser(raw), nil
	default:
		return nil, fmt.Errorf("unknown strategy: %s (expected graph or log)", strategy)
	}
}

// archiveCommits mirrors extracted commits into the cold archive.
func archiveCommits(c *cli.Context, path string, commits []git.Commit) (int, error) {
	archive, err := store.OpenArchive(path)
	if err != nil {
		return 0, err
	}
	defer archive.Close()

	return ingest.New(archive).Run(c.Context, commits)
}
