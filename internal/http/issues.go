package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/issuedesk/internal/backend"
	"github.com/issuedesk/internal/validation"
)

// CreateIssueRequest is the browser-facing issue payload. The access token
// is taken from the session, never from the client.
type CreateIssueRequest struct {
	Repo  string `json:"repo"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// createIssue validates the input and forwards it to the issue-creation
// backend with the session token attached. Validation happens before any
// network call; the backend's response is relayed verbatim.
func (s *Server) createIssue(c *gin.Context) {
	sess, ok := s.requireSession(c)
	if !ok {
		return
	}

	var req CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := validation.ValidateRepoName(req.Repo); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if err := validation.ValidateIssueTitle(req.Title); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	if err := validation.ValidateIssueBody(req.Body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := s.backend.CreateIssue(c.Request.Context(), backend.IssueRequest{
		Repo:        strings.TrimSpace(req.Repo),
		Title:       strings.TrimSpace(req.Title),
		Body:        req.Body,
		AccessToken: sess.AccessToken,
	})
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "issue creation request failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to connect to issue backend",
			Details: err.Error(),
		})
		return
	}

	if !json.Valid(resp.Body) {
		slog.ErrorContext(c.Request.Context(), "issue backend returned invalid JSON",
			"status", resp.StatusCode)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Invalid response from backend"})
		return
	}

	passthrough(c, resp.StatusCode, resp.Body)
}
