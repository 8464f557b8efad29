package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/issuedesk/internal/apipaths"
)

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.engine.HandleMethodNotAllowed = true
	s.engine.NoMethod(methodNotAllowed)
	s.engine.NoRoute(notFound)

	// Health check endpoint (no auth required)
	s.engine.GET(apipaths.Health, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "issuedesk",
		})
	})

	// Auth flow
	s.engine.POST(apipaths.AuthCallback, s.authCallback)
	s.engine.POST(apipaths.AuthLogin, s.deprecatedLogin)
	s.engine.GET(apipaths.AuthSession, s.getSessionInfo)
	s.engine.DELETE(apipaths.AuthSession, s.logout)

	// Backend proxies
	s.engine.POST(apipaths.OAuthToken, s.exchangeToken)
	s.engine.POST(apipaths.CreateIssue, s.createIssue)

	// GitHub proxies (session-gated)
	s.engine.GET(apipaths.GitHubUser, s.getGitHubUser)
	s.engine.GET(apipaths.GitHubOrgs, s.getGitHubOrgs)
	s.engine.GET(apipaths.GitHubRepos, s.getGitHubRepos)
	s.engine.GET(apipaths.GitHubAccounts, s.getGitHubAccounts)

	// Diagnostics
	s.engine.GET(apipaths.DebugScopes, s.getTokenScopes)
	s.engine.GET(apipaths.DebugSession, s.getDebugSession)
	s.engine.GET(apipaths.DebugOAuth, s.getDebugOAuth)
	s.engine.GET(apipaths.DebugSystem, s.getDebugSystem)
}
