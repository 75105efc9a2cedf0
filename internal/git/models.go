package git

import (
	"strings"
	"time"
)

// Commit is the canonical, extractor-agnostic record of one commit.
// Both extraction strategies produce the same shape, and the hash uniquely
// determines every other field for a given repository state.
type Commit struct {
	Hash         string    `json:"hash"`
	AuthorName   string    `json:"author_name"`
	AuthorEmail  string    `json:"author_email"`
	CommitDate   time.Time `json:"commit_date"` // always UTC
	Message      string    `json:"message"`
	FilesChanged []string  `json:"files_changed"` // diff emission order
	Insertions   int       `json:"insertions"`
	Deletions    int       `json:"deletions"`
}

// Subject returns the first line of the commit message.
func (c Commit) Subject() string {
	if idx := strings.IndexByte(c.Message, '\n'); idx != -1 {
		return c.Message[:idx]
	}
	return c.Message
}

// ShortHash returns the abbreviated hash used in listings.
func (c Commit) ShortHash() string {
	if len(c.Hash) > 8 {
		return c.Hash[:8]
	}
	return c.Hash
}

// Churn returns total lines changed (insertions + deletions).
func (c Commit) Churn() int {
	return c.Insertions + c.Deletions
}

// ExtractOptions configures the graph-walk extractor.
type ExtractOptions struct {
	Limit   int      // maximum commits to walk; 0 means unbounded
	Include []string // glob patterns to include
	Exclude []string // glob patterns to exclude
}
