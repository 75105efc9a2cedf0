package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	fdiff "github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// hashHexLength is the length of a full hex object id.
const hashHexLength = 40

// Repo extracts history by walking the commit graph of a local repository.
type Repo struct {
	repo *gogit.Repository
	opts ExtractOptions
}

// Open opens the repository at path for extraction.
func Open(path string, opts ExtractOptions) (*Repo, error) {
	repo, err := gogit.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrRepository, path, err)
	}
	return &Repo{repo: repo, opts: opts}, nil
}

// Commits walks the graph from HEAD, newest first along the primary
// ancestry path, and builds one canonical record per commit. An
// unresolvable HEAD (e.g. an empty repository) is a repository error.
// When a limit is configured the walk stops early without error.
func (r *Repo) Commits(ctx context.Context) ([]Commit, error) {
	head, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("%w: resolve HEAD: %v", ErrRepository, err)
	}

	iter, err := r.repo.Log(&gogit.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("%w: walk from %s: %v", ErrRepository, head.Hash(), err)
	}

	var results []Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if r.opts.Limit > 0 && len(results) >= r.opts.Limit {
			return storer.ErrStop
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rec, err := r.record(c)
		if err != nil {
			return err
		}
		results = append(results, rec)
		return nil
	})
	if err != nil {
		return results, err
	}

	return results, nil
}

// CommitByHash looks up a single commit by its full hex id. A syntactically
// invalid hash is a parse error; a valid hash with no matching object
// returns (nil, nil).
func (r *Repo) CommitByHash(hash string) (*Commit, error) {
	if !validHash(hash) {
		return nil, fmt.Errorf("%w: commit hash %q", ErrParse, hash)
	}

	c, err := r.repo.CommitObject(plumbing.NewHash(hash))
	if errors.Is(err, plumbing.ErrObjectNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: lookup %s: %v", ErrRepository, hash, err)
	}

	rec, err := r.record(c)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// RemoteURL returns the first fetch URL of the named remote.
func (r *Repo) RemoteURL(name string) (string, error) {
	remote, err := r.repo.Remote(name)
	if err != nil {
		return "", fmt.Errorf("%w: remote %q: %v", ErrRepository, name, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("%w: remote %q has no URL", ErrRepository, name)
	}
	return urls[0], nil
}

// record builds the canonical commit by diffing against the first parent,
// or against the empty tree for a root commit so that every line of the
// initial content counts as an insertion.
func (r *Repo) record(c *object.Commit) (Commit, error) {
	tree, err := c.Tree()
	if err != nil {
		return Commit{}, fmt.Errorf("%w: tree of %s: %v", ErrRepository, c.Hash, err)
	}

	var parentTree *object.Tree
	if c.NumParents() > 0 {
		parent, err := c.Parent(0)
		if err != nil {
			return Commit{}, fmt.Errorf("%w: parent of %s: %v", ErrRepository, c.Hash, err)
		}
		parentTree, err = parent.Tree()
		if err != nil {
			return Commit{}, fmt.Errorf("%w: parent tree of %s: %v", ErrRepository, c.Hash, err)
		}
	}

	changes, err := object.DiffTree(parentTree, tree)
	if err != nil {
		return Commit{}, fmt.Errorf("%w: diff %s: %v", ErrRepository, c.Hash, err)
	}
	patch, err := changes.Patch()
	if err != nil {
		return Commit{}, fmt.Errorf("%w: patch %s: %v", ErrRepository, c.Hash, err)
	}

	var files []string
	var insertions, deletions int
	for _, fp := range patch.FilePatches() {
		from, to := fp.Files()

		// Prefer the new path; deletions only carry the old one.
		var path string
		switch {
		case to != nil:
			path = to.Path()
		case from != nil:
			path = from.Path()
		}
		if path == "" || !r.matchesFilters(path) {
			continue
		}

		files = append(files, path)
		for _, chunk := range fp.Chunks() {
			switch chunk.Type() {
			case fdiff.Add:
				insertions += countLines(chunk.Content())
			case fdiff.Delete:
				deletions += countLines(chunk.Content())
			}
		}
	}

	return Commit{
		Hash:         c.Hash.String(),
		AuthorName:   c.Author.Name,
		AuthorEmail:  c.Author.Email,
		CommitDate:   c.Author.When.UTC(),
		Message:      strings.TrimSpace(c.Message),
		FilesChanged: files,
		Insertions:   insertions,
		Deletions:    deletions,
	}, nil
}

// matchesFilters checks a path against the include/exclude globs.
func (r *Repo) matchesFilters(path string) bool {
	path = strings.ReplaceAll(path, "\\", "/")

	for _, pattern := range r.opts.Exclude {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return false
		}
	}
	if len(r.opts.Include) == 0 {
		return true
	}
	for _, pattern := range r.opts.Include {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return true
		}
	}
	return false
}

// countLines counts content lines, tolerating a missing trailing newline.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}

// validHash reports whether s has the syntactic form of a full object id.
func validHash(s string) bool {
	if len(s) != hashHexLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
