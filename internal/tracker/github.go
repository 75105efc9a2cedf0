// Package tracker talks to the remote issue tracker and imports its state
// into the local store.
package tracker

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// RemoteIssue is the tracker-agnostic view of a remote issue.
type RemoteIssue struct {
	Number    int
	Title     string
	Body      string
	Assignee  string
	Labels    []string
	Comments  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RemoteLabel is a label as defined on the remote repository.
type RemoteLabel struct {
	Name        string
	Color       string
	Description string
}

// Client wraps the GitHub API for one repository.
type Client struct {
	gh    *github.Client
	owner string
	repo  string
}

// NewClient builds an authenticated client for owner/repo.
func NewClient(token, owner, repo string) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("github token is required")
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)

	return &Client{
		gh:    github.NewClient(tc),
		owner: owner,
		repo:  repo,
	}, nil
}

// NewClientFromEnv reads the token from GITHUB_TOKEN.
func NewClientFromEnv(owner, repo string) (*Client, error) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("GITHUB_TOKEN environment variable not set")
	}
	return NewClient(token, owner, repo)
}

// OpenIssues lists the repository's open issues, following pagination.
// Pull requests share the issues API and are filtered out.
func (c *Client) OpenIssues(ctx context.Context) ([]RemoteIssue, error) {
	opts := &github.IssueListByRepoOptions{
		State:       "open",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var results []RemoteIssue
	for {
		issues, resp, err := c.gh.Issues.ListByRepo(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("list issues for %s/%s: %w", c.owner, c.repo, err)
		}
		for _, issue := range issues {
			if issue.IsPullRequest() {
				continue
			}
			results = append(results, convertIssue(issue))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return results, nil
}

// Issue fetches a single issue by number.
func (c *Client) Issue(ctx context.Context, number int) (*RemoteIssue, error) {
	issue, _, err := c.gh.Issues.Get(ctx, c.owner, c.repo, number)
	if err != nil {
		return nil, fmt.Errorf("get issue #%d: %w", number, err)
	}
	converted := convertIssue(issue)
	return &converted, nil
}

// CreateIssue creates a remote issue and returns its number.
func (c *Client) CreateIssue(ctx context.Context, title, body string, labels []string) (int, error) {
	req := &github.IssueRequest{
		Title: github.String(title),
		Body:  github.String(body),
	}
	if len(labels) > 0 {
		req.Labels = &labels
	}
	issue, _, err := c.gh.Issues.Create(ctx, c.owner, c.repo, req)
	if err != nil {
		return 0, fmt.Errorf("create issue %q: %w", title, err)
	}
	return issue.GetNumber(), nil
}

// AddComment appends a comment to the numbered issue.
func (c *Client) AddComment(ctx context.Context, number int, body string) error {
	comment := &github.IssueComment{Body: github.String(body)}
	if _, _, err := c.gh.Issues.CreateComment(ctx, c.owner, c.repo, number, comment); err != nil {
		return fmt.Errorf("comment on issue #%d: %w", number, err)
	}
	return nil
}

// Labels lists the repository's labels.
func (c *Client) Labels(ctx context.Context) ([]RemoteLabel, error) {
	opts := &github.ListOptions{PerPage: 100}
	var results []RemoteLabel
	for {
		labels, resp, err := c.gh.Issues.ListLabels(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("list labels for %s/%s: %w", c.owner, c.repo, err)
		}
		for _, label := range labels {
			results = append(results, RemoteLabel{
				Name:        label.GetName(),
				Color:       label.GetColor(),
				Description: label.GetDescription(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return results, nil
}

func convertIssue(issue *github.Issue) RemoteIssue {
	converted := RemoteIssue{
		Number:    issue.GetNumber(),
		Title:     issue.GetTitle(),
		Body:      issue.GetBody(),
		Assignee:  issue.GetAssignee().GetLogin(),
		Comments:  issue.GetComments(),
		CreatedAt: issue.GetCreatedAt().Time,
		UpdatedAt: issue.GetUpdatedAt().Time,
	}
	for _, label := range issue.Labels {
		converted.Labels = append(converted.Labels, label.GetName())
	}
	return converted
}
