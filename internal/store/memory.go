package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Memory is an in-process store used by tests and ephemeral runs.
type Memory struct {
	mu      sync.RWMutex
	nextID  int64
	commits map[string]Commit // keyed by hash
	issues  map[int64]Issue
	labels  map[string]Label // keyed by name
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		commits: make(map[string]Commit),
		issues:  make(map[int64]Issue),
		labels:  make(map[string]Label),
	}
}

// Close is a no-op; the store lives and dies with the process.
func (m *Memory) Close() error { return nil }

func (m *Memory) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *Memory) InsertCommit(_ context.Context, c *Commit) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.commits[c.Hash]; ok {
		return 0, fmt.Errorf("%w: commit %s", ErrDuplicate, c.Hash)
	}
	stored := *c
	stored.ID = m.id()
	// Copy the slice so callers cannot alias stored state.
	stored.FilesChanged = append([]string(nil), c.FilesChanged...)
	m.commits[c.Hash] = stored
	return stored.ID, nil
}

func (m *Memory) CommitByHash(_ context.Context, hash string) (*Commit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.commits[hash]
	if !ok {
		return nil, nil
	}
	// Copy the slice so callers cannot alias stored state.
	c.FilesChanged = append([]string(nil), c.FilesChanged...)
	return &c, nil
}

func (m *Memory) Commits(_ context.Context) ([]Commit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	commits := make([]Commit, 0, len(m.commits))
	for _, c := range m.commits {
		c.FilesChanged = append([]string(nil), c.FilesChanged...)
		commits = append(commits, c)
	}
	sort.Slice(commits, func(i, j int) bool {
		return commits[i].CommitDate.After(commits[j].CommitDate)
	})
	return commits, nil
}

func (m *Memory) InsertIssue(_ context.Context, issue *Issue) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *issue
	stored.ID = m.id()
	now := time.Now().UTC()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = now
	}
	stored.Labels = append([]string(nil), issue.Labels...)
	m.issues[stored.ID] = stored
	return stored.ID, nil
}

func (m *Memory) IssueByID(_ context.Context, id int64) (*Issue, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	issue, ok := m.issues[id]
	if !ok {
		return nil, nil
	}
	issue.Labels = append([]string(nil), issue.Labels...)
	return &issue, nil
}

func (m *Memory) Issues(_ context.Context) ([]Issue, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	issues := make([]Issue, 0, len(m.issues))
	for _, issue := range m.issues {
		issue.Labels = append([]string(nil), issue.Labels...)
		issues = append(issues, issue)
	}
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].CreatedAt.Equal(issues[j].CreatedAt) {
			return issues[i].ID > issues[j].ID
		}
		return issues[i].CreatedAt.After(issues[j].CreatedAt)
	})
	return issues, nil
}

func (m *Memory) UpdateIssueStatus(_ context.Context, id int64, status Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	issue, ok := m.issues[id]
	if !ok {
		return fmt.Errorf("issue %d not found", id)
	}
	issue.Status = status
	issue.UpdatedAt = time.Now().UTC()
	m.issues[id] = issue
	return nil
}

func (m *Memory) DeleteIssue(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.issues, id)
	return nil
}

func (m *Memory) InsertLabel(_ context.Context, label *Label) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.labels[label.Name]; ok {
		return 0, fmt.Errorf("%w: label %q", ErrDuplicate, label.Name)
	}
	stored := *label
	stored.ID = m.id()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	m.labels[label.Name] = stored
	return stored.ID, nil
}

func (m *Memory) LabelByName(_ context.Context, name string) (*Label, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	label, ok := m.labels[name]
	if !ok {
		return nil, nil
	}
	return &label, nil
}

func (m *Memory) Labels(_ context.Context) ([]Label, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	labels := make([]Label, 0, len(m.labels))
	for _, label := range m.labels {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i].Name < labels[j].Name })
	return labels, nil
}
