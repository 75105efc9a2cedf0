// Package ingest feeds extracted commit records into the store exactly
// once each, regardless of how many times extraction runs.
package ingest

import (
	"context"
	"fmt"

	"github.com/maxbolgarin/logze/v2"

	"github.com/folknology/atask/internal/git"
	"github.com/folknology/atask/internal/store"
)

// Coordinator deduplicates a record sequence by hash and persists only
// unseen records. The store handle is lent by the caller for the duration
// of a run; single-writer usage is assumed.
type Coordinator struct {
	store store.CommitStore
	log   logze.Logger

	// OnProgress, when set, is called after each record with the number of
	// records seen and inserted so far.
	OnProgress func(seen, inserted int)
}

// New creates a coordinator writing to s.
func New(s store.CommitStore) *Coordinator {
	return &Coordinator{
		store: s,
		log:   logze.With("module", "ingest"),
	}
}

// Run ingests the sequence and returns the number of newly inserted
// records. Each hash is checked for existence before a single insertion
// attempt; a duplicate constraint violation therefore only surfaces when
// another writer races this run, and it aborts with the error. Records
// already persisted before a failure stay persisted.
func (c *Coordinator) Run(ctx context.Context, commits []git.Commit) (int, error) {
	inserted := 0
	for seen, commit := range commits {
		if err := ctx.Err(); err != nil {
			return inserted, err
		}

		existing, err := c.store.CommitByHash(ctx, commit.Hash)
		if err != nil {
			return inserted, fmt.Errorf("check commit %s: %w", commit.Hash, err)
		}
		if existing == nil {
			if _, err := c.store.InsertCommit(ctx, &store.Commit{Commit: commit}); err != nil {
				return inserted, fmt.Errorf("ingest commit %s: %w", commit.Hash, err)
			}
			inserted++
		}

		if c.OnProgress != nil {
			c.OnProgress(seen+1, inserted)
		}
	}

	c.log.Debug("ingestion run finished", "seen", len(commits), "inserted", inserted)
	return inserted, nil
}
