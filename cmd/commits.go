package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/folknology/atask/internal/git"
	"github.com/folknology/atask/internal/output"
)

// CommitsCmd returns the commits command.
func CommitsCmd() *cli.Command {
	return &cli.Command{
		Name:    "commits",
		Aliases: []string{"c"},
		Usage:   "List stored commits, newest first",
		Flags:   commonFlags(),
		Action:  commitsAction,
	}
}

// ShowCmd returns the show command.
func ShowCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a single commit by its full hash",
		ArgsUsage: "<hash>",
		Flags:     commonFlags(),
		Action:    showAction,
	}
}

func commitsAction(c *cli.Context) error {
	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	defer ctx.Close()

	commits, err := ctx.Store.Commits(c.Context)
	if err != nil {
		return fmt.Errorf("failed to list commits: %w", err)
	}

	report := &output.CommitListReport{
		RepoPath:    ctx.Config.Repo.Path,
		GeneratedAt: time.Now(),
		Commits:     commits,
	}

	opts := OutputOptions(c)
	return output.NewCommitReportWriter(opts.Format).Write(report, opts)
}

func showAction(c *cli.Context) error {
	hash := c.Args().First()
	if hash == "" {
		return fmt.Errorf("usage: show <hash>")
	}

	ctx, err := NewCommandContext(c)
	if err != nil {
		return err
	}
	defer ctx.Close()

	return showCommit(c, ctx, hash)
}

// showCommit looks a commit up in the store, falling back to the
// repository for commits that have not been synced yet.
func showCommit(c *cli.Context, ctx *CommandContext, hash string) error {
	stored, err := ctx.Store.CommitByHash(c.Context, hash)
	if err != nil {
		return fmt.Errorf("failed to look up commit: %w", err)
	}

	var commit *git.Commit
	if stored != nil {
		commit = &stored.Commit
	} else {
		repo, err := git.Open(ctx.Config.Repo.Path, git.ExtractOptions{
			Include: ctx.Config.Filters.Include,
			Exclude: ctx.Config.Filters.Exclude,
		})
		if err != nil {
			return fmt.Errorf("failed to open repository: %w", err)
		}
		commit, err = repo.CommitByHash(hash)
		if err != nil {
			return err
		}
	}

	if commit == nil {
		fmt.Printf("Commit %s not found.\n", hash)
		return nil
	}

	fmt.Printf("Commit:  %s\n", commit.Hash)
	fmt.Printf("Author:  %s <%s>\n", commit.AuthorName, commit.AuthorEmail)
	fmt.Printf("Date:    %s\n", commit.CommitDate.Format(time.RFC3339))
	fmt.Printf("Subject: %s\n", commit.Subject())
	fmt.Printf("Churn:   +%d -%d across %d files\n", commit.Insertions, commit.Deletions, len(commit.FilesChanged))
	if len(commit.FilesChanged) > 0 {
		fmt.Printf("Files:\n  %s\n", strings.Join(commit.FilesChanged, "\n  "))
	}
	return nil
}
