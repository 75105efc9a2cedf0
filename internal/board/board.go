// Package board arranges open issues into the workflow columns the web
// and console views render.
package board

import (
	"strings"
	"time"

	"github.com/folknology/atask/internal/store"
)

// Column ids, which double as the workflow labels that route cards.
const (
	ColumnEvaluating  = "evaluating"
	ColumnPreparing   = "preparing"
	ColumnProgressing = "progressing"
	ColumnDone        = "done"
)

// Board is one rendered snapshot of the workflow state.
type Board struct {
	Title       string    `json:"title"`
	LastUpdated time.Time `json:"last_updated"`
	Columns     []Column  `json:"columns"`
}

// Column holds the cards routed to one workflow stage.
type Column struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	LabelName string `json:"label_name"` // workflow label that routes here
	Color     string `json:"color"`      // CSS color for the column header
	Cards     []Card `json:"cards"`
}

// Card is one issue as shown on the board.
type Card struct {
	IssueID   int64          `json:"issue_number"`
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	BodyHTML  string         `json:"body_html"`
	Assignee  string         `json:"assignee"`
	Labels    []string       `json:"labels"`
	Priority  store.Priority `json:"priority"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// TotalCards counts cards across all columns.
func (b *Board) TotalCards() int {
	total := 0
	for _, column := range b.Columns {
		total += len(column.Cards)
	}
	return total
}

// Column returns the column with the given id, or nil.
func (b *Board) Column(id string) *Column {
	for i := range b.Columns {
		if b.Columns[i].ID == id {
			return &b.Columns[i]
		}
	}
	return nil
}

// ValidColumn reports whether id names a workflow column.
func ValidColumn(id string) bool {
	switch id {
	case ColumnEvaluating, ColumnPreparing, ColumnProgressing, ColumnDone:
		return true
	}
	return false
}

// BodyRenderer turns a card's raw description into display HTML.
type BodyRenderer func(markdown string) string

// Build arranges the open issues into columns by workflow label,
// case-insensitively, most specific stage first. Issues with no workflow
// label land in Evaluating. renderBody may be nil, in which case BodyHTML
// stays empty.
func Build(title string, issues []store.Issue, renderBody BodyRenderer) *Board {
	board := &Board{
		Title:       title,
		LastUpdated: time.Now().UTC(),
		Columns: []Column{
			{ID: ColumnEvaluating, Title: "Evaluating", LabelName: "Evaluating", Color: "#fef2c0"},
			{ID: ColumnPreparing, Title: "Preparing", LabelName: "Preparing", Color: "#fef3c7"},
			{ID: ColumnProgressing, Title: "Progressing", LabelName: "Progressing", Color: "#bfdbfe"},
			{ID: ColumnDone, Title: "Done", LabelName: "Done", Color: "#bbf7d0"},
		},
	}

	for _, issue := range issues {
		if issue.Status != store.StatusOpen {
			continue
		}

		card := Card{
			IssueID:   issue.ID,
			Title:     issue.Title,
			Body:      issue.Description,
			Assignee:  issue.Assignee,
			Labels:    issue.Labels,
			Priority:  issue.Priority,
			CreatedAt: issue.CreatedAt,
			UpdatedAt: issue.UpdatedAt,
		}
		if renderBody != nil {
			card.BodyHTML = renderBody(issue.Description)
		}

		column := board.Column(columnForLabels(issue.Labels))
		column.Cards = append(column.Cards, card)
	}

	return board
}

// columnForLabels picks the most advanced workflow stage named by the
// issue's labels, defaulting to Evaluating.
func columnForLabels(labels []string) string {
	has := func(name string) bool {
		for _, label := range labels {
			if strings.EqualFold(label, name) {
				return true
			}
		}
		return false
	}
	switch {
	case has("done"):
		return ColumnDone
	case has("progressing"):
		return ColumnProgressing
	case has("preparing"):
		return ColumnPreparing
	default:
		return ColumnEvaluating
	}
}

// StatusForColumn maps a board move target to the issue status it implies.
func StatusForColumn(id string) (store.Status, bool) {
	switch id {
	case ColumnEvaluating, ColumnPreparing:
		return store.StatusOpen, true
	case ColumnProgressing:
		return store.StatusInProgress, true
	case ColumnDone:
		return store.StatusClosed, true
	default:
		return "", false
	}
}
