package output

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

// ConsoleCommitWriter writes commit listings to the console.
type ConsoleCommitWriter struct{}

// Write outputs the commit listing to the console.
func (w *ConsoleCommitWriter) Write(report *CommitListReport, options OutputOptions) error {
	commits := limitTop(report.Commits, options.Limit)

	color.Green("Stored Commit History")
	if report.RepoPath != "" {
		fmt.Printf("Repository: %s\n", report.RepoPath)
	}
	fmt.Printf("Total commits: %d\n\n", len(report.Commits))

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tHash\tDate\tAuthor\tFiles\t+\t-\tSubject")

	for i, c := range commits {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			i+1,
			c.ShortHash(),
			c.CommitDate.Format(reportDateLayout),
			c.AuthorName,
			len(c.FilesChanged),
			c.Insertions,
			c.Deletions,
			truncateMessage(c.Subject(), 50),
		)
	}

	return tw.Flush()
}

// ConsoleIssueWriter writes issue listings to the console.
type ConsoleIssueWriter struct{}

// Write outputs the issue listing to the console.
func (w *ConsoleIssueWriter) Write(report *IssueListReport, options OutputOptions) error {
	issues := limitTop(report.Issues, options.Limit)

	color.Green("Tracked Issues")
	fmt.Printf("Total issues: %d\n\n", len(report.Issues))

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tStatus\tPriority\tLabels\tTitle")

	for i, issue := range issues {
		priorityColor := getPriorityColor(string(issue.Priority))
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\n",
			i+1,
			issue.ID,
			issue.Status,
			priorityColor(string(issue.Priority)),
			strings.Join(issue.Labels, ","),
			truncateMessage(issue.Title, 60),
		)
	}

	return tw.Flush()
}

func getPriorityColor(priority string) func(string, ...interface{}) string {
	switch priority {
	case "critical", "high":
		return color.RedString
	case "medium":
		return color.YellowString
	default:
		return color.GreenString
	}
}
