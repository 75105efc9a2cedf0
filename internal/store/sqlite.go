package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	sqlite3 "github.com/mattn/go-sqlite3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SQLite is the primary store, backed by a single database file.
// Single-writer usage is assumed; concurrent ingestion runs are only
// protected by the UNIQUE constraint on commits.hash.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

// OpenSQLite opens (creating if needed) the database at path and ensures
// the schema exists. Use ":memory:" for an ephemeral store. Foreign keys
// are switched on explicitly; the driver leaves them off by default, and
// the issue_labels cascade depends on them.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	s := &SQLite{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying connection pool.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) initSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS commits (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			hash TEXT UNIQUE NOT NULL,
			author_name TEXT NOT NULL,
			author_email TEXT NOT NULL,
			commit_date DATETIME NOT NULL,
			message TEXT NOT NULL,
			files_changed TEXT NOT NULL,
			insertions INTEGER DEFAULT 0,
			deletions INTEGER DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS labels (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT UNIQUE NOT NULL,
			color TEXT NOT NULL DEFAULT '#808080',
			description TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS issues (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			description TEXT,
			status TEXT NOT NULL DEFAULT 'open',
			priority TEXT NOT NULL DEFAULT 'medium',
			assignee TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS issue_labels (
			issue_id INTEGER NOT NULL,
			label_id INTEGER NOT NULL,
			PRIMARY KEY (issue_id, label_id),
			FOREIGN KEY (issue_id) REFERENCES issues (id) ON DELETE CASCADE,
			FOREIGN KEY (label_id) REFERENCES labels (id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_commits_hash ON commits(hash)`,
		`CREATE INDEX IF NOT EXISTS idx_commits_date ON commits(commit_date)`,
		`CREATE INDEX IF NOT EXISTS idx_issues_status ON issues(status)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// InsertCommit persists one canonical commit. FilesChanged is serialized
// as a JSON array so order and content survive the round trip exactly.
func (s *SQLite) InsertCommit(ctx context.Context, c *Commit) (int64, error) {
	files, err := json.MarshalToString(c.FilesChanged)
	if err != nil {
		return 0, fmt.Errorf("encode files_changed: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO commits (hash, author_name, author_email, commit_date, message, files_changed, insertions, deletions)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Hash, c.AuthorName, c.AuthorEmail, c.CommitDate.UTC().Format(time.RFC3339),
		c.Message, files, c.Insertions, c.Deletions,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: commit %s", ErrDuplicate, c.Hash)
		}
		return 0, fmt.Errorf("insert commit %s: %w", c.Hash, err)
	}
	return res.LastInsertId()
}

// CommitByHash returns the persisted record for hash, or (nil, nil).
func (s *SQLite) CommitByHash(ctx context.Context, hash string) (*Commit, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, hash, author_name, author_email, commit_date, message, files_changed, insertions, deletions
		 FROM commits WHERE hash = ?`, hash)

	c, err := scanCommit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query commit %s: %w", hash, err)
	}
	return c, nil
}

// Commits lists every record, newest commit date first.
func (s *SQLite) Commits(ctx context.Context) ([]Commit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, hash, author_name, author_email, commit_date, message, files_changed, insertions, deletions
		 FROM commits ORDER BY commit_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("query commits: %w", err)
	}
	defer rows.Close()

	var commits []Commit
	for rows.Next() {
		c, err := scanCommit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan commit: %w", err)
		}
		commits = append(commits, *c)
	}
	return commits, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCommit(row scanner) (*Commit, error) {
	var c Commit
	var date, files string
	if err := row.Scan(&c.ID, &c.Hash, &c.AuthorName, &c.AuthorEmail, &date,
		&c.Message, &files, &c.Insertions, &c.Deletions); err != nil {
		return nil, err
	}

	when, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return nil, fmt.Errorf("parse commit_date %q: %w", date, err)
	}
	c.CommitDate = when.UTC()

	if err := json.UnmarshalFromString(files, &c.FilesChanged); err != nil {
		return nil, fmt.Errorf("decode files_changed: %w", err)
	}
	return &c, nil
}

// InsertIssue persists the issue and its label associations.
func (s *SQLite) InsertIssue(ctx context.Context, issue *Issue) (int64, error) {
	now := time.Now().UTC()
	created := issue.CreatedAt
	if created.IsZero() {
		created = now
	}
	updated := issue.UpdatedAt
	if updated.IsZero() {
		updated = now
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO issues (title, description, status, priority, assignee, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		issue.Title, issue.Description, string(issue.Status), string(issue.Priority),
		issue.Assignee, created.Format(time.RFC3339), updated.Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("insert issue %q: %w", issue.Title, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, name := range issue.Labels {
		label, err := s.LabelByName(ctx, name)
		if err != nil {
			return 0, err
		}
		if label == nil {
			continue
		}
		if _, err := s.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO issue_labels (issue_id, label_id) VALUES (?, ?)`,
			id, label.ID); err != nil {
			return 0, fmt.Errorf("link issue %d to label %q: %w", id, name, err)
		}
	}
	return id, nil
}

// IssueByID returns the issue with its labels, or (nil, nil) when absent.
func (s *SQLite) IssueByID(ctx context.Context, id int64) (*Issue, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, description, status, priority, assignee, created_at, updated_at
		 FROM issues WHERE id = ?`, id)

	issue, err := s.scanIssue(ctx, row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query issue %d: %w", id, err)
	}
	return issue, nil
}

// Issues lists all issues with labels, newest first.
func (s *SQLite) Issues(ctx context.Context) ([]Issue, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, status, priority, assignee, created_at, updated_at
		 FROM issues ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query issues: %w", err)
	}
	defer rows.Close()

	var issues []Issue
	for rows.Next() {
		issue, err := s.scanIssue(ctx, rows)
		if err != nil {
			return nil, fmt.Errorf("scan issue: %w", err)
		}
		issues = append(issues, *issue)
	}
	return issues, rows.Err()
}

func (s *SQLite) scanIssue(ctx context.Context, row scanner) (*Issue, error) {
	var issue Issue
	var status, priority, created, updated string
	var description, assignee sql.NullString
	if err := row.Scan(&issue.ID, &issue.Title, &description, &status, &priority,
		&assignee, &created, &updated); err != nil {
		return nil, err
	}
	issue.Description = description.String
	issue.Assignee = assignee.String

	var err error
	if issue.Status, err = ParseStatus(status); err != nil {
		return nil, err
	}
	if issue.Priority, err = ParsePriority(priority); err != nil {
		return nil, err
	}
	if issue.CreatedAt, err = parseStoredTime(created); err != nil {
		return nil, err
	}
	if issue.UpdatedAt, err = parseStoredTime(updated); err != nil {
		return nil, err
	}

	if issue.Labels, err = s.issueLabels(ctx, issue.ID); err != nil {
		return nil, err
	}
	return &issue, nil
}

func (s *SQLite) issueLabels(ctx context.Context, issueID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT l.name FROM labels l
		 JOIN issue_labels il ON l.id = il.label_id
		 WHERE il.issue_id = ?`, issueID)
	if err != nil {
		return nil, fmt.Errorf("query labels of issue %d: %w", issueID, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// UpdateIssueStatus moves an issue to a new workflow state.
func (s *SQLite) UpdateIssueStatus(ctx context.Context, id int64, status Status) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE issues SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("update issue %d status: %w", id, err)
	}
	return nil
}

// DeleteIssue removes an issue; label links cascade.
func (s *SQLite) DeleteIssue(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM issues WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete issue %d: %w", id, err)
	}
	return nil
}

// InsertLabel persists a label; duplicate names are ErrDuplicate.
func (s *SQLite) InsertLabel(ctx context.Context, label *Label) (int64, error) {
	created := label.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO labels (name, color, description, created_at) VALUES (?, ?, ?, ?)`,
		label.Name, label.Color, label.Description, created.Format(time.RFC3339))
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: label %q", ErrDuplicate, label.Name)
		}
		return 0, fmt.Errorf("insert label %q: %w", label.Name, err)
	}
	return res.LastInsertId()
}

// LabelByName returns the named label, or (nil, nil) when absent.
func (s *SQLite) LabelByName(ctx context.Context, name string) (*Label, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, color, description, created_at FROM labels WHERE name = ?`, name)

	label, err := scanLabel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query label %q: %w", name, err)
	}
	return label, nil
}

// Labels lists all labels ordered by name.
func (s *SQLite) Labels(ctx context.Context) ([]Label, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, color, description, created_at FROM labels ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query labels: %w", err)
	}
	defer rows.Close()

	var labels []Label
	for rows.Next() {
		label, err := scanLabel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan label: %w", err)
		}
		labels = append(labels, *label)
	}
	return labels, rows.Err()
}

func scanLabel(row scanner) (*Label, error) {
	var label Label
	var description sql.NullString
	var created string
	if err := row.Scan(&label.ID, &label.Name, &label.Color, &description, &created); err != nil {
		return nil, err
	}
	label.Description = description.String

	var err error
	if label.CreatedAt, err = parseStoredTime(created); err != nil {
		return nil, err
	}
	return &label, nil
}

// parseStoredTime accepts both RFC3339 (written by this code) and the bare
// civil format SQLite's CURRENT_TIMESTAMP default produces.
func parseStoredTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored time %q: %w", s, err)
	}
	return t.UTC(), nil
}

func isUniqueViolation(err error) bool {
	var serr sqlite3.Error
	return errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintUnique
}
