package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/issuedesk/internal/system"
)

// getDebugSession reports which session fields and configuration values are
// present. Only presence booleans, never the values themselves.
func (s *Server) getDebugSession(c *gin.Context) {
	sess := s.store.Load(c.Request)

	login := ""
	if sess.User != nil {
		login = sess.User.Login
	}

	c.JSON(http.StatusOK, gin.H{
		"hasUser":        sess.User != nil,
		"hasAccessToken": sess.AccessToken != "",
		"userLogin":      login,
		"envCheck": gin.H{
			"hasGithubClientId":     s.config.GitHub.ClientID != "",
			"hasGithubClientSecret": s.config.GitHub.ClientSecret != "",
			"hasSessionSecret":      s.config.SessionSecret != "",
			"sessionSecretLength":   len(s.config.SessionSecret),
		},
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// getDebugOAuth probes the external backend and reports reachability
func (s *Server) getDebugOAuth(c *gin.Context) {
	resp, err := s.backend.Ping(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to connect to backend",
			Details: err.Error(),
		})
		return
	}

	var status interface{}
	if err := json.Unmarshal(resp.Body, &status); err != nil {
		body := string(resp.Body)
		if len(body) > 500 {
			body = body[:500]
		}
		status = gin.H{"error": "Invalid JSON response", "responseText": body}
	}

	c.JSON(http.StatusOK, gin.H{
		"backend_url":    s.config.BackendURL,
		"backend_http":   resp.StatusCode,
		"backend_status": status,
	})
}

// getDebugSystem returns a host statistics snapshot
func (s *Server) getDebugSystem(c *gin.Context) {
	c.JSON(http.StatusOK, system.Collect())
}
