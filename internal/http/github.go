package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	gh "github.com/google/go-github/v66/github"
	githubapi "github.com/issuedesk/internal/github"
	"github.com/issuedesk/internal/session"
)

// githubAPI is the GitHub surface the proxy handlers depend on
type githubAPI interface {
	User(ctx context.Context, token string) (*gh.User, error)
	Organizations(ctx context.Context, token string) ([]*gh.Organization, error)
	Repositories(ctx context.Context, token string) ([]*gh.Repository, error)
	Accounts(ctx context.Context, token string) (*githubapi.AccountsSummary, error)
	Scopes(ctx context.Context, token string) (*githubapi.ScopeReport, error)
}

// requireSession gates a handler on an authenticated session. Returns false
// after writing the 401 response if no access token is present.
func (s *Server) requireSession(c *gin.Context) (*session.Session, bool) {
	sess := s.store.Load(c.Request)
	if sess.AccessToken == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Not authenticated"})
		return nil, false
	}
	return sess, true
}

// handleGitHubError normalizes upstream failures: a 401 from GitHub means
// the token is expired or revoked, so the session is destroyed and the
// client sees 401; everything else is a generic 500.
func (s *Server) handleGitHubError(c *gin.Context, sess *session.Session, err error, fallback string) {
	if errors.Is(err, githubapi.ErrUnauthorized) {
		if derr := sess.Destroy(c.Writer, c.Request); derr != nil {
			slog.WarnContext(c.Request.Context(), "failed to destroy session", "error", derr)
		}
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "GitHub token expired"})
		return
	}

	slog.ErrorContext(c.Request.Context(), "GitHub request failed", "error", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   fallback,
		Details: err.Error(),
	})
}

// getGitHubUser returns the authenticated user's GitHub profile
func (s *Server) getGitHubUser(c *gin.Context) {
	sess, ok := s.requireSession(c)
	if !ok {
		return
	}

	user, err := s.github.User(c.Request.Context(), sess.AccessToken)
	if err != nil {
		s.handleGitHubError(c, sess, err, "Failed to fetch user data")
		return
	}

	c.JSON(http.StatusOK, user)
}

// getGitHubOrgs returns the user's organizations
func (s *Server) getGitHubOrgs(c *gin.Context) {
	sess, ok := s.requireSession(c)
	if !ok {
		return
	}

	orgs, err := s.github.Organizations(c.Request.Context(), sess.AccessToken)
	if err != nil {
		s.handleGitHubError(c, sess, err, "Failed to fetch organizations")
		return
	}

	c.JSON(http.StatusOK, orgs)
}

// getGitHubRepos returns the merged, deduplicated personal + organization
// repository list
func (s *Server) getGitHubRepos(c *gin.Context) {
	sess, ok := s.requireSession(c)
	if !ok {
		return
	}

	repos, err := s.github.Repositories(c.Request.Context(), sess.AccessToken)
	if err != nil {
		s.handleGitHubError(c, sess, err, "Failed to fetch repositories")
		return
	}

	c.JSON(http.StatusOK, repos)
}

// getGitHubAccounts returns repositories grouped by owning account
func (s *Server) getGitHubAccounts(c *gin.Context) {
	sess, ok := s.requireSession(c)
	if !ok {
		return
	}

	accounts, err := s.github.Accounts(c.Request.Context(), sess.AccessToken)
	if err != nil {
		s.handleGitHubError(c, sess, err, "Failed to fetch account data")
		return
	}

	c.JSON(http.StatusOK, accounts)
}

// getTokenScopes reports the token's OAuth scopes and whether a
// re-authorization is needed
func (s *Server) getTokenScopes(c *gin.Context) {
	sess, ok := s.requireSession(c)
	if !ok {
		return
	}

	report, err := s.github.Scopes(c.Request.Context(), sess.AccessToken)
	if err != nil {
		s.handleGitHubError(c, sess, err, "Failed to check token scopes")
		return
	}

	c.JSON(http.StatusOK, report)
}
