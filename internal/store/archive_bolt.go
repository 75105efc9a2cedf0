package store

import (
	"context"
	"fmt"
	"sort"

	bolt "go.etcd.io/bbolt"
)

var commitsBucket = []byte("commits")

// Archive is a file-based commit snapshot keyed by hash, for carrying
// mined history between machines without the relational store. It
// satisfies the same commit contract the ingestion coordinator consumes.
type Archive struct {
	db *bolt.DB
}

var _ CommitStore = (*Archive)(nil)

// OpenArchive opens (creating if needed) the archive file at path.
func OpenArchive(path string) (*Archive, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(commitsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init archive bucket: %w", err)
	}
	return &Archive{db: db}, nil
}

// Close releases the file lock.
func (a *Archive) Close() error {
	return a.db.Close()
}

// InsertCommit stores the record under its hash; an existing key is a
// duplicate, consistent with the relational store's UNIQUE constraint.
func (a *Archive) InsertCommit(_ context.Context, c *Commit) (int64, error) {
	var id int64
	err := a.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(commitsBucket)
		if bucket.Get([]byte(c.Hash)) != nil {
			return fmt.Errorf("%w: commit %s", ErrDuplicate, c.Hash)
		}

		seq, err := bucket.NextSequence()
		if err != nil {
			return err
		}
		id = int64(seq)

		stored := *c
		stored.ID = id
		raw, err := json.Marshal(stored)
		if err != nil {
			return fmt.Errorf("encode commit %s: %w", c.Hash, err)
		}
		return bucket.Put([]byte(c.Hash), raw)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// CommitByHash returns the archived record for hash, or (nil, nil).
func (a *Archive) CommitByHash(_ context.Context, hash string) (*Commit, error) {
	var c *Commit
	err := a.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(commitsBucket).Get([]byte(hash))
		if raw == nil {
			return nil
		}
		var decoded Commit
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return fmt.Errorf("decode commit %s: %w", hash, err)
		}
		c = &decoded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Commits lists all archived records, newest commit date first.
func (a *Archive) Commits(_ context.Context) ([]Commit, error) {
	var commits []Commit
	err := a.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(commitsBucket).ForEach(func(_, raw []byte) error {
			var c Commit
			if err := json.Unmarshal(raw, &c); err != nil {
				return fmt.Errorf("decode archived commit: %w", err)
			}
			commits = append(commits, c)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(commits, func(i, j int) bool {
		return commits[i].CommitDate.After(commits[j].CommitDate)
	})
	return commits, nil
}
