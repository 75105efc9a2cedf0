package tracker

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/folknology/atask/internal/store"
)

type fakeRemote struct {
	issues []RemoteIssue
	err    error
}

func (f *fakeRemote) OpenIssues(_ context.Context) ([]RemoteIssue, error) {
	return f.issues, f.err
}

func TestSyncer_ImportsUntrackedIssues(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	remote := &fakeRemote{issues: []RemoteIssue{
		{Number: 3, Title: "Board drag and drop", Body: "Cards should move", Labels: []string{"enhancement"}},
		{Number: 8, Title: "Crash on empty repo", Body: "", Labels: []string{"bug", "critical"}},
	}}

	imported, err := NewSyncer(remote, s).ImportOpenIssues(ctx)
	if err != nil {
		t.Fatalf("ImportOpenIssues: %v", err)
	}
	if imported != 2 {
		t.Fatalf("imported = %d, expected 2", imported)
	}

	issues, err := s.Issues(ctx)
	if err != nil {
		t.Fatalf("Issues: %v", err)
	}
	if len(issues) != 2 {
		t.Fatalf("issues = %d, expected 2", len(issues))
	}

	byTitle := map[string]store.Issue{}
	for _, issue := range issues {
		byTitle[issue.Title] = issue
	}

	crash := byTitle["Crash on empty repo"]
	if crash.Priority != store.PriorityCritical {
		t.Errorf("priority = %q, expected critical from labels", crash.Priority)
	}
	if crash.Status != store.StatusOpen {
		t.Errorf("status = %q, expected open", crash.Status)
	}

	// Imports are tagged with the remote number so the next sync sees them.
	drag := byTitle["Board drag and drop"]
	if want := "#3"; !strings.Contains(drag.Description, want) {
		t.Errorf("description %q does not reference %s", drag.Description, want)
	}
}

func TestSyncer_SecondImportIsNoOp(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	remote := &fakeRemote{issues: []RemoteIssue{
		{Number: 5, Title: "Document sync command", Body: "Needs a README section"},
	}}
	syncer := NewSyncer(remote, s)

	if _, err := syncer.ImportOpenIssues(ctx); err != nil {
		t.Fatalf("first import: %v", err)
	}
	imported, err := syncer.ImportOpenIssues(ctx)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if imported != 0 {
		t.Errorf("second import = %d, expected 0", imported)
	}
}

func TestSyncer_ExistingReferenceSuppressesImport(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	if _, err := s.InsertIssue(ctx, &store.Issue{
		Title:       "Tracking upstream #12",
		Description: "Local mirror of the upstream report",
		Status:      store.StatusOpen,
		Priority:    store.PriorityMedium,
		CreatedAt:   time.Now().UTC(),
	}); err != nil {
		t.Fatalf("InsertIssue: %v", err)
	}

	remote := &fakeRemote{issues: []RemoteIssue{
		{Number: 12, Title: "Upstream report", Body: "Something broke"},
	}}
	imported, err := NewSyncer(remote, s).ImportOpenIssues(ctx)
	if err != nil {
		t.Fatalf("ImportOpenIssues: %v", err)
	}
	if imported != 0 {
		t.Errorf("imported = %d, expected 0 (already referenced)", imported)
	}
}

func TestSyncer_RemoteErrorPropagates(t *testing.T) {
	remoteErr := errors.New("api rate limited")
	_, err := NewSyncer(&fakeRemote{err: remoteErr}, store.NewMemory()).
		ImportOpenIssues(context.Background())
	if !errors.Is(err, remoteErr) {
		t.Errorf("error = %v, expected wrapped remote error", err)
	}
}

func TestPriorityFromLabels(t *testing.T) {
	tests := []struct {
		name     string
		labels   []string
		expected store.Priority
	}{
		{name: "critical wins", labels: []string{"bug", "Critical"}, expected: store.PriorityCritical},
		{name: "high", labels: []string{"high-impact"}, expected: store.PriorityHigh},
		{name: "low", labels: []string{"low"}, expected: store.PriorityLow},
		{name: "default medium", labels: []string{"bug", "docs"}, expected: store.PriorityMedium},
		{name: "no labels", labels: nil, expected: store.PriorityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := priorityFromLabels(tt.labels); got != tt.expected {
				t.Errorf("priorityFromLabels(%v) = %q, expected %q", tt.labels, got, tt.expected)
			}
		})
	}
}
