package tracker

import (
	"context"
	"fmt"
	"strings"

	"github.com/maxbolgarin/logze/v2"

	"github.com/folknology/atask/internal/store"
)

// RemoteSource lists open issues on the remote tracker. *Client satisfies
// it; tests substitute a fixture.
type RemoteSource interface {
	OpenIssues(ctx context.Context) ([]RemoteIssue, error)
}

// Syncer imports remote issues into the local store.
type Syncer struct {
	remote RemoteSource
	store  store.IssueStore
	log    logze.Logger
}

// NewSyncer builds a syncer reading from remote and writing to s.
func NewSyncer(remote RemoteSource, s store.IssueStore) *Syncer {
	return &Syncer{
		remote: remote,
		store:  s,
		log:    logze.With("module", "tracker"),
	}
}

// ImportOpenIssues copies remote open issues that are not yet tracked
// locally and returns the number imported.
//
// A remote issue #N counts as already tracked when any local issue's title
// or description contains the substring "#N". Imported issues are tagged
// with that reference so later runs skip them, but it is best effort: "#1" also
// matches inside "#10", and a hand-written "#N" in an unrelated issue
// suppresses the import. Do not rely on it as a correctness guarantee.
func (s *Syncer) ImportOpenIssues(ctx context.Context) (int, error) {
	remote, err := s.remote.OpenIssues(ctx)
	if err != nil {
		return 0, err
	}
	local, err := s.store.Issues(ctx)
	if err != nil {
		return 0, fmt.Errorf("list local issues: %w", err)
	}

	imported := 0
	for _, issue := range remote {
		if referencesIssue(local, issue.Number) {
			continue
		}

		description := issue.Body
		reference := fmt.Sprintf("#%d", issue.Number)
		if !strings.Contains(issue.Title, reference) && !strings.Contains(description, reference) {
			// Tag the import so the next sync recognizes it.
			description = strings.TrimRight(description, "\n") +
				fmt.Sprintf("\n\nImported from GitHub issue %s", reference)
		}

		_, err := s.store.InsertIssue(ctx, &store.Issue{
			Title:       issue.Title,
			Description: description,
			Status:      store.StatusOpen,
			Priority:    priorityFromLabels(issue.Labels),
			Assignee:    issue.Assignee,
			Labels:      issue.Labels,
			CreatedAt:   issue.CreatedAt,
			UpdatedAt:   issue.UpdatedAt,
		})
		if err != nil {
			return imported, fmt.Errorf("import issue #%d: %w", issue.Number, err)
		}
		imported++
	}

	s.log.Info("imported remote issues", "remote", len(remote), "imported", imported)
	return imported, nil
}

// referencesIssue reports whether any local issue mentions "#number".
func referencesIssue(local []store.Issue, number int) bool {
	reference := fmt.Sprintf("#%d", number)
	for _, issue := range local {
		if strings.Contains(issue.Title, reference) || strings.Contains(issue.Description, reference) {
			return true
		}
	}
	return false
}

// priorityFromLabels derives urgency from label names; medium when nothing
// matches.
func priorityFromLabels(labels []string) store.Priority {
	contains := func(substr string) bool {
		for _, label := range labels {
			if strings.Contains(strings.ToLower(label), substr) {
				return true
			}
		}
		return false
	}
	switch {
	case contains("critical"):
		return store.PriorityCritical
	case contains("high"):
		return store.PriorityHigh
	case contains("low"):
		return store.PriorityLow
	default:
		return store.PriorityMedium
	}
}
