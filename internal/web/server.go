// Package web serves the workflow board over HTTP: an HTML page for
// humans and a small JSON API for board tooling.
package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/servex/v2"

	"github.com/folknology/atask/internal/board"
	"github.com/folknology/atask/internal/store"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Config holds the server settings.
type Config struct {
	Address string        // listen address, e.g. ":8420"
	Title   string        // board title shown on the page
	Timeout time.Duration // read timeout; idle is twice this
}

// Server renders the board from the store.
type Server struct {
	store  store.IssueStore
	config Config
	log    logze.Logger
	server *servex.Server
}

// New creates the board server and registers its routes.
func New(cfg Config, s store.IssueStore) (*Server, error) {
	if cfg.Title == "" {
		cfg.Title = "Task Board"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	log := logze.With("module", "web")
	srv, err := servex.NewServer(
		servex.WithReadTimeout(cfg.Timeout),
		servex.WithIdleTimeout(cfg.Timeout*2),
		servex.WithLogger(log),
		servex.WithHealthEndpoint(),
	)
	if err != nil {
		return nil, fmt.Errorf("create server: %w", err)
	}

	h := &Server{
		store:  s,
		config: cfg,
		log:    log,
		server: srv,
	}

	srv.HandleFunc("/", h.handleBoardPage)
	srv.HandleFunc("/api/board", h.handleAPIBoard)
	srv.HandleFunc("/api/move", h.handleAPIMove)
	srv.HandleFunc("/api/refresh", h.handleAPIRefresh)

	return h, nil
}

// Start begins serving on the configured address.
func (h *Server) Start(ctx context.Context) error {
	h.log.Info("board server starting", "address", h.config.Address)
	return h.server.StartHTTP(h.config.Address)
}

// Stop shuts the server down gracefully.
func (h *Server) Stop(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// apiResponse is the envelope for every JSON endpoint.
type apiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// moveRequest asks to move an issue between columns.
type moveRequest struct {
	IssueID    int64  `json:"issue_number"`
	FromColumn string `json:"from_column"`
	ToColumn   string `json:"to_column"`
}

// refreshRequest names the column to refresh.
type refreshRequest struct {
	Column string `json:"column"`
}

func (h *Server) buildBoard(ctx context.Context) (*board.Board, error) {
	issues, err := h.store.Issues(ctx)
	if err != nil {
		return nil, fmt.Errorf("load issues: %w", err)
	}
	return board.Build(h.config.Title, issues, RenderMarkdown), nil
}

func (h *Server) handleBoardPage(w http.ResponseWriter, r *http.Request) {
	b, err := h.buildBoard(r.Context())
	if err != nil {
		h.log.Error("build board", "error", err)
		http.Error(w, "failed to build board", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := boardTemplate.Execute(w, b); err != nil {
		h.log.Error("render board page", "error", err)
	}
}

func (h *Server) handleAPIBoard(w http.ResponseWriter, r *http.Request) {
	b, err := h.buildBoard(r.Context())
	if err != nil {
		h.log.Error("build board", "error", err)
		h.writeJSON(w, http.StatusOK, apiResponse{Success: false, Message: fmt.Sprintf("failed to fetch board: %v", err)})
		return
	}
	h.writeJSON(w, http.StatusOK, apiResponse{Success: true, Data: b})
}

func (h *Server) handleAPIMove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeJSON(w, http.StatusMethodNotAllowed, apiResponse{Success: false, Message: "POST required"})
		return
	}

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: "invalid request body"})
		return
	}

	status, ok := board.StatusForColumn(req.ToColumn)
	if !ok {
		h.writeJSON(w, http.StatusOK, apiResponse{Success: false, Message: fmt.Sprintf("invalid column: %s", req.ToColumn)})
		return
	}

	issue, err := h.store.IssueByID(r.Context(), req.IssueID)
	if err != nil {
		h.writeJSON(w, http.StatusOK, apiResponse{Success: false, Message: fmt.Sprintf("database error: %v", err)})
		return
	}
	if issue == nil {
		h.writeJSON(w, http.StatusOK, apiResponse{Success: false, Message: fmt.Sprintf("issue #%d not found", req.IssueID)})
		return
	}

	if err := h.store.UpdateIssueStatus(r.Context(), req.IssueID, status); err != nil {
		h.writeJSON(w, http.StatusOK, apiResponse{Success: false, Message: fmt.Sprintf("failed to move issue: %v", err)})
		return
	}

	h.log.Info("issue moved", "issue", req.IssueID, "from", req.FromColumn, "to", req.ToColumn)
	h.writeJSON(w, http.StatusOK, apiResponse{
		Success: true,
		Message: fmt.Sprintf("moved issue #%d from %s to %s", req.IssueID, req.FromColumn, req.ToColumn),
	})
}

func (h *Server) handleAPIRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeJSON(w, http.StatusMethodNotAllowed, apiResponse{Success: false, Message: "POST required"})
		return
	}

	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Message: "invalid request body"})
		return
	}

	if !board.ValidColumn(req.Column) {
		h.writeJSON(w, http.StatusOK, apiResponse{Success: false, Message: fmt.Sprintf("column %q not found", req.Column)})
		return
	}

	// The board is rebuilt from the store on every request, so a refresh
	// only needs to confirm the column exists.
	h.writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: fmt.Sprintf("refreshed column %q", req.Column)})
}

func (h *Server) writeJSON(w http.ResponseWriter, status int, resp apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.log.Error("encode response", "error", err)
	}
}
