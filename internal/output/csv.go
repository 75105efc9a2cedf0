package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// CSVCommitWriter writes commit listings as CSV.
type CSVCommitWriter struct{}

// Write outputs the commit listing as CSV.
func (w *CSVCommitWriter) Write(report *CommitListReport, options OutputOptions) error {
	commits := limitTop(report.Commits, options.Limit)

	writer, file, err := createCSVWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	headers := []string{"Hash", "AuthorName", "AuthorEmail", "CommitDate", "Insertions", "Deletions", "FilesChanged", "Subject"}
	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, c := range commits {
		row := []string{
			c.Hash,
			c.AuthorName,
			c.AuthorEmail,
			c.CommitDate.Format(reportDateTimeLayout),
			fmt.Sprintf("%d", c.Insertions),
			fmt.Sprintf("%d", c.Deletions),
			strings.Join(c.FilesChanged, ";"),
			c.Subject(),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// CSVIssueWriter writes issue listings as CSV.
type CSVIssueWriter struct{}

// Write outputs the issue listing as CSV.
func (w *CSVIssueWriter) Write(report *IssueListReport, options OutputOptions) error {
	issues := limitTop(report.Issues, options.Limit)

	writer, file, err := createCSVWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	headers := []string{"ID", "Title", "Status", "Priority", "Labels", "CreatedAt"}
	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, issue := range issues {
		row := []string{
			fmt.Sprintf("%d", issue.ID),
			issue.Title,
			string(issue.Status),
			string(issue.Priority),
			strings.Join(issue.Labels, ";"),
			issue.CreatedAt.Format(reportDateTimeLayout),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func createCSVWriter(outputPath string) (*csv.Writer, *os.File, error) {
	if outputPath == "" {
		return csv.NewWriter(os.Stdout), nil, nil
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, err
	}
	return csv.NewWriter(file), file, nil
}
