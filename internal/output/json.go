package output

import (
	"fmt"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/folknology/atask/internal/store"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONCommitWriter writes commit listings as JSON.
type JSONCommitWriter struct{}

// JSONCommitReport is the JSON output structure for commit listings.
type JSONCommitReport struct {
	RepoPath     string         `json:"repo,omitempty"`
	GeneratedAt  string         `json:"generatedAt"`
	TotalCommits int            `json:"totalCommits"`
	Commits      []store.Commit `json:"commits"`
}

// Write outputs the commit listing as JSON.
func (w *JSONCommitWriter) Write(report *CommitListReport, options OutputOptions) error {
	commits := limitTop(report.Commits, options.Limit)

	return writeJSON(JSONCommitReport{
		RepoPath:     report.RepoPath,
		GeneratedAt:  report.GeneratedAt.Format(time.RFC3339),
		TotalCommits: len(report.Commits),
		Commits:      commits,
	}, options.OutputPath)
}

// JSONIssueWriter writes issue listings as JSON.
type JSONIssueWriter struct{}

// JSONIssueReport is the JSON output structure for issue listings.
type JSONIssueReport struct {
	GeneratedAt string        `json:"generatedAt"`
	TotalIssues int           `json:"totalIssues"`
	Issues      []store.Issue `json:"issues"`
}

// Write outputs the issue listing as JSON.
func (w *JSONIssueWriter) Write(report *IssueListReport, options OutputOptions) error {
	issues := limitTop(report.Issues, options.Limit)

	return writeJSON(JSONIssueReport{
		GeneratedAt: report.GeneratedAt.Format(time.RFC3339),
		TotalIssues: len(report.Issues),
		Issues:      issues,
	}, options.OutputPath)
}

func writeJSON(data interface{}, outputPath string) error {
	encoder := json.NewEncoder(os.Stdout)
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		defer file.Close()
		encoder = json.NewEncoder(file)
	}

	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
