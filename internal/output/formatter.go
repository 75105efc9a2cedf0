package output

import (
	"time"

	"github.com/folknology/atask/internal/store"
)

// Compile-time interface conformance checks.
var (
	_ CommitReportWriter = (*ConsoleCommitWriter)(nil)
	_ CommitReportWriter = (*JSONCommitWriter)(nil)
	_ CommitReportWriter = (*CSVCommitWriter)(nil)

	_ IssueReportWriter = (*ConsoleIssueWriter)(nil)
	_ IssueReportWriter = (*JSONIssueWriter)(nil)
	_ IssueReportWriter = (*CSVIssueWriter)(nil)
)

// OutputFormat represents the output format type.
type OutputFormat string

const (
	FormatConsole OutputFormat = "console"
	FormatJSON    OutputFormat = "json"
	FormatCSV     OutputFormat = "csv"
)

// OutputOptions controls output behavior.
type OutputOptions struct {
	Format     OutputFormat
	Limit      int
	OutputPath string
}

// CommitListReport holds stored commits for listing.
type CommitListReport struct {
	RepoPath    string
	GeneratedAt time.Time
	Commits     []store.Commit
}

// IssueListReport holds tracked issues for listing.
type IssueListReport struct {
	GeneratedAt time.Time
	Issues      []store.Issue
}

// CommitReportWriter writes commit listings.
type CommitReportWriter interface {
	Write(report *CommitListReport, options OutputOptions) error
}

// IssueReportWriter writes issue listings.
type IssueReportWriter interface {
	Write(report *IssueListReport, options OutputOptions) error
}

// NewCommitReportWriter creates a commit writer for the specified format.
func NewCommitReportWriter(format OutputFormat) CommitReportWriter {
	switch format {
	case FormatJSON:
		return &JSONCommitWriter{}
	case FormatCSV:
		return &CSVCommitWriter{}
	default:
		return &ConsoleCommitWriter{}
	}
}

// NewIssueReportWriter creates an issue writer for the specified format.
func NewIssueReportWriter(format OutputFormat) IssueReportWriter {
	switch format {
	case FormatJSON:
		return &JSONIssueWriter{}
	case FormatCSV:
		return &CSVIssueWriter{}
	default:
		return &ConsoleIssueWriter{}
	}
}
