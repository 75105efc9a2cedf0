package output

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/folknology/atask/internal/git"
	"github.com/folknology/atask/internal/store"
)

func TestNewCommitReportWriter(t *testing.T) {
	tests := []struct {
		format   OutputFormat
		expected interface{}
	}{
		{FormatConsole, &ConsoleCommitWriter{}},
		{FormatJSON, &JSONCommitWriter{}},
		{FormatCSV, &CSVCommitWriter{}},
		{OutputFormat("unknown"), &ConsoleCommitWriter{}},
	}

	for _, tt := range tests {
		writer := NewCommitReportWriter(tt.format)
		if writer == nil {
			t.Fatalf("NewCommitReportWriter(%q) returned nil", tt.format)
		}
		switch tt.expected.(type) {
		case *ConsoleCommitWriter:
			if _, ok := writer.(*ConsoleCommitWriter); !ok {
				t.Errorf("format %q: got %T", tt.format, writer)
			}
		case *JSONCommitWriter:
			if _, ok := writer.(*JSONCommitWriter); !ok {
				t.Errorf("format %q: got %T", tt.format, writer)
			}
		case *CSVCommitWriter:
			if _, ok := writer.(*CSVCommitWriter); !ok {
				t.Errorf("format %q: got %T", tt.format, writer)
			}
		}
	}
}

func TestLimitTop(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name     string
		top      int
		expected int
	}{
		{"zero means all", 0, 5},
		{"negative means all", -1, 5},
		{"smaller than length", 3, 3},
		{"equal to length", 5, 5},
		{"larger than length", 10, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := limitTop(items, tt.top)
			if len(got) != tt.expected {
				t.Errorf("limitTop(%d) length = %d, expected %d", tt.top, len(got), tt.expected)
			}
		})
	}
}

func TestTruncateMessage(t *testing.T) {
	if got := truncateMessage("short", 40); got != "short" {
		t.Errorf("truncateMessage = %q", got)
	}
	long := strings.Repeat("x", 50)
	got := truncateMessage(long, 40)
	if len(got) != 40 {
		t.Errorf("truncated length = %d, expected 40", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated message missing ellipsis: %q", got)
	}
}

func sampleCommitReport() *CommitListReport {
	return &CommitListReport{
		RepoPath:    "/src/project",
		GeneratedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Commits: []store.Commit{
			{ID: 1, Commit: git.Commit{
				Hash:         strings.Repeat("a", 40),
				AuthorName:   "Jane Doe",
				AuthorEmail:  "jane@example.com",
				CommitDate:   time.Date(2024, 5, 30, 10, 0, 0, 0, time.UTC),
				Message:      "Fix parser crash on empty input",
				FilesChanged: []string{"parser.go", "parser_test.go"},
				Insertions:   12,
				Deletions:    3,
			}},
			{ID: 2, Commit: git.Commit{
				Hash:       strings.Repeat("b", 40),
				AuthorName: "John Smith",
				CommitDate: time.Date(2024, 5, 29, 9, 0, 0, 0, time.UTC),
				Message:    "Add retry logic",
			}},
		},
	}
}

func TestJSONCommitWriter_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commits.json")

	w := &JSONCommitWriter{}
	if err := w.Write(sampleCommitReport(), OutputOptions{Format: FormatJSON, OutputPath: path}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var report JSONCommitReport
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if report.TotalCommits != 2 {
		t.Errorf("TotalCommits = %d, expected 2", report.TotalCommits)
	}
	if report.Commits[0].AuthorName != "Jane Doe" {
		t.Errorf("first author = %q", report.Commits[0].AuthorName)
	}
}

func TestJSONCommitWriter_Limit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commits.json")

	w := &JSONCommitWriter{}
	if err := w.Write(sampleCommitReport(), OutputOptions{OutputPath: path, Limit: 1}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var report JSONCommitReport
	if err := json.Unmarshal(data, &report); err != nil {
		t.Fatal(err)
	}
	if len(report.Commits) != 1 {
		t.Errorf("commits listed = %d, expected 1", len(report.Commits))
	}
	// Total reflects the full store, not the page.
	if report.TotalCommits != 2 {
		t.Errorf("TotalCommits = %d, expected 2", report.TotalCommits)
	}
}

func TestCSVCommitWriter_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commits.csv")

	w := &CSVCommitWriter{}
	if err := w.Write(sampleCommitReport(), OutputOptions{OutputPath: path}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, expected header + 2", len(rows))
	}
	if rows[0][0] != "Hash" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][1] != "Jane Doe" {
		t.Errorf("author cell = %q", rows[1][1])
	}
	if rows[1][6] != "parser.go;parser_test.go" {
		t.Errorf("files cell = %q", rows[1][6])
	}
}

func TestCSVIssueWriter_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "issues.csv")

	report := &IssueListReport{
		GeneratedAt: time.Now(),
		Issues: []store.Issue{
			{ID: 7, Title: "Flaky test in CI", Status: store.StatusOpen, Priority: store.PriorityHigh, Labels: []string{"bug", "ci"}},
		},
	}

	w := &CSVIssueWriter{}
	if err := w.Write(report, OutputOptions{OutputPath: path}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, expected header + 1", len(rows))
	}
	if rows[1][4] != "bug;ci" {
		t.Errorf("labels cell = %q", rows[1][4])
	}
}
