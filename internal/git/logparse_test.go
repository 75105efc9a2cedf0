package git

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLogParser_SingleCommit(t *testing.T) {
	raw := "abc123|Jane Doe|jane@x.com|2024-01-01 10:00:00 +0000|Fix bug\n" +
		"3\t1\tsrc/main.rs\n"

	commits, err := NewLogParser(raw).Commits(context.Background())
	if err != nil {
		t.Fatalf("Commits: %v", err)
	}
	if len(commits) != 1 {
		t.Fatalf("commits = %d, expected 1", len(commits))
	}

	c := commits[0]
	if c.Hash != "abc123" {
		t.Errorf("Hash = %q, expected %q", c.Hash, "abc123")
	}
	if c.AuthorName != "Jane Doe" || c.AuthorEmail != "jane@x.com" {
		t.Errorf("author = %q <%q>", c.AuthorName, c.AuthorEmail)
	}
	if c.Message != "Fix bug" {
		t.Errorf("Message = %q, expected %q", c.Message, "Fix bug")
	}
	if c.Insertions != 3 || c.Deletions != 1 {
		t.Errorf("counts = +%d -%d, expected +3 -1", c.Insertions, c.Deletions)
	}
	if len(c.FilesChanged) != 1 || c.FilesChanged[0] != "src/main.rs" {
		t.Errorf("FilesChanged = %v, expected [src/main.rs]", c.FilesChanged)
	}

	want := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	if !c.CommitDate.Equal(want) {
		t.Errorf("CommitDate = %v, expected %v", c.CommitDate, want)
	}
}

func TestLogParser_OffsetNormalizedToUTC(t *testing.T) {
	raw := "abc123|Jane|j@x.com|2024-06-15 12:30:00 +0200|Tune offsets\n"

	commits, err := NewLogParser(raw).Commits(context.Background())
	if err != nil {
		t.Fatalf("Commits: %v", err)
	}
	want := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
	if !commits[0].CommitDate.Equal(want) {
		t.Errorf("CommitDate = %v, expected %v", commits[0].CommitDate, want)
	}
	if commits[0].CommitDate.Location() != time.UTC {
		t.Errorf("CommitDate location = %v, expected UTC", commits[0].CommitDate.Location())
	}
}

func TestLogParser_MultipleCommitsWithBlankSeparators(t *testing.T) {
	fullHashA := strings.Repeat("a", 40)
	fullHashB := strings.Repeat("b", 40)
	raw := fullHashA + "|Alice|alice@x.com|2024-03-01 09:00:00 +0000|Add parser\n" +
		"10\t0\tparser.go\n" +
		"5\t2\tparser_test.go\n" +
		"\n" +
		fullHashB + "|Bob|bob@x.com|2024-02-28 18:00:00 +0000|Initial import\n" +
		"100\t0\tmain.go\n"

	commits, err := NewLogParser(raw).Commits(context.Background())
	if err != nil {
		t.Fatalf("Commits: %v", err)
	}
	if len(commits) != 2 {
		t.Fatalf("commits = %d, expected 2", len(commits))
	}
	if commits[0].Hash != fullHashA || commits[1].Hash != fullHashB {
		t.Errorf("hash order = %q, %q", commits[0].Hash, commits[1].Hash)
	}
	if commits[0].Insertions != 15 || commits[0].Deletions != 2 {
		t.Errorf("first commit counts = +%d -%d, expected +15 -2",
			commits[0].Insertions, commits[0].Deletions)
	}
	if len(commits[0].FilesChanged) != 2 {
		t.Errorf("first commit files = %v", commits[0].FilesChanged)
	}
}

func TestLogParser_HeaderBoundaryWithoutBlankLine(t *testing.T) {
	// Exports without blank separators rely on the header heuristic:
	// a line containing '|' longer than a full hash starts a new region.
	fullHashA := strings.Repeat("1", 40)
	fullHashB := strings.Repeat("2", 40)
	raw := fullHashA + "|Alice|alice@x.com|2024-03-01 09:00:00 +0000|One\n" +
		"1\t1\ta.go\n" +
		fullHashB + "|Bob|bob@x.com|2024-02-28 18:00:00 +0000|Two\n" +
		"2\t2\tb.go\n"

	commits, err := NewLogParser(raw).Commits(context.Background())
	if err != nil {
		t.Fatalf("Commits: %v", err)
	}
	if len(commits) != 2 {
		t.Fatalf("commits = %d, expected 2", len(commits))
	}
	if commits[0].Insertions != 1 || commits[1].Insertions != 2 {
		t.Errorf("counts = %d, %d", commits[0].Insertions, commits[1].Insertions)
	}
}

func TestLogParser_SkipsMalformedHeaders(t *testing.T) {
	raw := "not a header line\n" +
		"too|few|fields\n" +
		"abc123|Jane|j@x.com|2024-01-01 10:00:00 +0000|Real commit\n" +
		"1\t0\tf.go\n"

	commits, err := NewLogParser(raw).Commits(context.Background())
	if err != nil {
		t.Fatalf("Commits: %v", err)
	}
	if len(commits) != 1 || commits[0].Message != "Real commit" {
		t.Fatalf("commits = %v", commits)
	}
}

func TestLogParser_BinaryStatCountsDefaultToZero(t *testing.T) {
	raw := "abc123|Jane|j@x.com|2024-01-01 10:00:00 +0000|Add image\n" +
		"-\t-\tlogo.png\n" +
		"2\t1\treadme.md\n"

	commits, err := NewLogParser(raw).Commits(context.Background())
	if err != nil {
		t.Fatalf("Commits: %v", err)
	}
	c := commits[0]
	if c.Insertions != 2 || c.Deletions != 1 {
		t.Errorf("counts = +%d -%d, expected +2 -1", c.Insertions, c.Deletions)
	}
	if len(c.FilesChanged) != 2 {
		t.Errorf("FilesChanged = %v, expected both paths kept", c.FilesChanged)
	}
}

func TestLogParser_BadDateIsParseError(t *testing.T) {
	raw := "abc123|Jane|j@x.com|yesterday at noon|Broken date\n"

	_, err := NewLogParser(raw).Commits(context.Background())
	if err == nil {
		t.Fatal("expected error for unparseable date")
	}
	if !errors.Is(err, ErrParse) {
		t.Errorf("error = %v, expected ErrParse", err)
	}
}

func TestLogParser_CommitWithoutStats(t *testing.T) {
	raw := "abc123|Jane|j@x.com|2024-01-01 10:00:00 +0000|Empty merge\n\n"

	commits, err := NewLogParser(raw).Commits(context.Background())
	if err != nil {
		t.Fatalf("Commits: %v", err)
	}
	if len(commits) != 1 {
		t.Fatalf("commits = %d, expected 1", len(commits))
	}
	c := commits[0]
	if c.Insertions != 0 || c.Deletions != 0 || len(c.FilesChanged) != 0 {
		t.Errorf("expected empty change set, got %+v", c)
	}
}

func TestLogParser_EmptyInput(t *testing.T) {
	commits, err := NewLogParser("").Commits(context.Background())
	if err != nil {
		t.Fatalf("Commits: %v", err)
	}
	if len(commits) != 0 {
		t.Errorf("commits = %d, expected 0", len(commits))
	}
}
