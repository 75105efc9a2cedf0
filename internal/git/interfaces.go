package git

import "context"

// HistoryExtractor produces canonical commit records, newest first.
// Two interchangeable strategies implement it: a structural walk over the
// object graph (Repo) and a stateful parse of exported log text (LogParser).
// Callers depend only on this interface.
type HistoryExtractor interface {
	// Commits returns the extracted history. A failure aborts the remaining
	// sequence; records already extracted by a previous call are unaffected.
	Commits(ctx context.Context) ([]Commit, error)
}

// Compile-time interface conformance checks.
var (
	_ HistoryExtractor = (*Repo)(nil)
	_ HistoryExtractor = (*LogParser)(nil)
)
