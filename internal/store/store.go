// Package store persists mined history and workflow state. The SQLite
// implementation is the long-lived owner of all records; the bbolt archive
// and the in-memory store satisfy the same contracts for snapshots and
// tests.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/folknology/atask/internal/git"
)

// ErrDuplicate indicates an insert for a primary identity (commit hash,
// label name) that is already present. Callers are expected to filter via
// an existence check first; hitting this error is always loud.
var ErrDuplicate = errors.New("record already exists")

// Commit is a persisted canonical commit record.
type Commit struct {
	ID int64 `json:"id"`
	git.Commit
}

// Status is the workflow state of an issue.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
)

// ParseStatus converts the stored string form back to a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown issue status %q", s)
	}
}

// Priority is the urgency of an issue.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// ParsePriority converts the stored string form back to a Priority.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return Priority(s), nil
	default:
		return "", fmt.Errorf("unknown issue priority %q", s)
	}
}

// Issue is a locally tracked work item feeding the workflow board.
type Issue struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	Assignee    string    `json:"assignee"`
	Labels      []string  `json:"labels"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Label is a named tag with a display color.
type Label struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CommitStore is the boundary the ingestion coordinator consumes: one
// insert, one point lookup, one ordered listing.
type CommitStore interface {
	// InsertCommit persists a new record and returns its row id.
	// Inserting an already-present hash returns ErrDuplicate.
	InsertCommit(ctx context.Context, c *Commit) (int64, error)
	// CommitByHash returns the record for hash, or (nil, nil) when absent.
	CommitByHash(ctx context.Context, hash string) (*Commit, error)
	// Commits lists all records ordered by commit date, newest first.
	Commits(ctx context.Context) ([]Commit, error)
}

// IssueStore manages issues and labels for the workflow board.
type IssueStore interface {
	InsertIssue(ctx context.Context, issue *Issue) (int64, error)
	IssueByID(ctx context.Context, id int64) (*Issue, error)
	Issues(ctx context.Context) ([]Issue, error)
	UpdateIssueStatus(ctx context.Context, id int64, status Status) error
	DeleteIssue(ctx context.Context, id int64) error

	InsertLabel(ctx context.Context, label *Label) (int64, error)
	LabelByName(ctx context.Context, name string) (*Label, error)
	Labels(ctx context.Context) ([]Label, error)
}

// Store is the full persistence boundary.
type Store interface {
	CommitStore
	IssueStore
	io.Closer
}

// defaultLabels mirrors the label set a fresh GitHub repository carries.
var defaultLabels = []Label{
	{Name: "bug", Color: "#d73a4a", Description: "Something isn't working"},
	{Name: "enhancement", Color: "#a2eeef", Description: "New feature or request"},
	{Name: "documentation", Color: "#0075ca", Description: "Improvements or additions to documentation"},
	{Name: "good first issue", Color: "#7057ff", Description: "Good for newcomers"},
	{Name: "help wanted", Color: "#008672", Description: "Extra attention is needed"},
	{Name: "invalid", Color: "#e4e669", Description: "This doesn't seem right"},
	{Name: "question", Color: "#d876e3", Description: "Further information is requested"},
	{Name: "wontfix", Color: "#ffffff", Description: "This will not be worked on"},
}

// SeedDefaultLabels inserts any default label not already present.
func SeedDefaultLabels(ctx context.Context, s IssueStore) error {
	for _, label := range defaultLabels {
		existing, err := s.LabelByName(ctx, label.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		l := label
		l.CreatedAt = time.Now().UTC()
		if _, err := s.InsertLabel(ctx, &l); err != nil {
			return err
		}
	}
	return nil
}
