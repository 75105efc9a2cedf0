package git

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// logDateLayout is the civil format emitted by git's %ai placeholder.
const logDateLayout = "2006-01-02 15:04:05 -0700"

// logPrettyFormat is the header format the parser expects, one line per
// commit followed by --numstat output.
const logPrettyFormat = "%H|%an|%ae|%ai|%s"

// LogParser reconstructs canonical commits from exported log text.
//
// The input is a newline-delimited blob produced by
// `git log --pretty=format:%H|%an|%ae|%ai|%s --numstat`:
// a header line of exactly five '|'-delimited fields, then zero or more
// tab-delimited stat lines (insertions, deletions, path). Header lines
// that do not split into five fields are skipped. A stat region ends at a
// blank line, end of input, or a line that itself looks like a new header:
// it contains '|' and is longer than a full hash. A path containing '|'
// near that length can misfire this boundary check; the behavior is kept
// for compatibility with existing exports.
type LogParser struct {
	raw string
}

// NewLogParser wraps a raw log export for extraction.
func NewLogParser(raw string) *LogParser {
	return &LogParser{raw: raw}
}

// Commits scans the blob with an explicit line cursor and emits one record
// per header region. Non-numeric stat counts (git prints '-' for binary
// files) degrade to zero; an unparseable header date aborts the call.
func (p *LogParser) Commits(ctx context.Context) ([]Commit, error) {
	lines := strings.Split(p.raw, "\n")

	var results []Commit
	i := 0
	for i < len(lines) {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		line := strings.TrimSpace(lines[i])
		if line == "" {
			i++
			continue
		}

		parts := strings.SplitN(line, "|", 5)
		if len(parts) != 5 {
			i++
			continue
		}

		when, err := time.Parse(logDateLayout, parts[3])
		if err != nil {
			return results, fmt.Errorf("%w: commit date %q: %v", ErrParse, parts[3], err)
		}

		rec := Commit{
			Hash:        parts[0],
			AuthorName:  parts[1],
			AuthorEmail: parts[2],
			CommitDate:  when.UTC(),
			Message:     strings.TrimSpace(parts[4]),
		}

		// Consume the stat region.
		i++
		for i < len(lines) {
			stat := strings.TrimSpace(lines[i])
			if stat == "" {
				break
			}
			if strings.Contains(stat, "|") && len(stat) > hashHexLength {
				// Looks like the next commit header.
				break
			}

			fields := strings.Split(stat, "\t")
			if len(fields) >= 3 {
				added, _ := strconv.Atoi(fields[0])
				deleted, _ := strconv.Atoi(fields[1])
				rec.FilesChanged = append(rec.FilesChanged, fields[2])
				rec.Insertions += added
				rec.Deletions += deleted
			}
			i++
		}

		results = append(results, rec)
	}

	return results, nil
}

// ExportLog runs git itself to produce a blob in the format LogParser
// expects. This is the degraded path for repositories go-git cannot walk.
func ExportLog(ctx context.Context, repoPath string) (string, error) {
	args := []string{
		"-C", repoPath,
		"log",
		"--no-color",
		"--pretty=format:" + logPrettyFormat,
		"--numstat",
	}

	out, err := exec.CommandContext(ctx, "git", args...).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%w: git log: %v: %s", ErrRepository, err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}
