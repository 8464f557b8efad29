package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/issuedesk/internal/session"
)

// authCallbackRequest carries the OAuth redirect parameters posted by the
// browser after GitHub redirects back. The state comparison itself happens
// in the browser against its locally generated value; the server only
// requires the parameter to be present.
type authCallbackRequest struct {
	Code  string `json:"code"`
	State string `json:"state"`
}

// tokenExchangeRequest is the proxy payload for the external token endpoint
type tokenExchangeRequest struct {
	Code        string `json:"code"`
	RedirectURI string `json:"redirect_uri"`
}

// authCallback exchanges the authorization code for a token, fetches the
// GitHub profile and binds both to a fresh session. The token never appears
// in the response.
func (s *Server) authCallback(c *gin.Context) {
	var req authCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.Code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No authorization code received"})
		return
	}
	if req.State == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid state parameter"})
		return
	}

	const fallback = "Failed to authenticate with GitHub"
	ctx := c.Request.Context()

	resp, err := s.backend.ExchangeToken(ctx, req.Code, s.callbackRedirectURI(c))
	if err != nil {
		slog.ErrorContext(ctx, "token exchange failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
		return
	}
	if !resp.OK() {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: resp.ErrorMessage(fallback)})
		return
	}

	token, err := resp.AccessToken()
	if err != nil {
		slog.ErrorContext(ctx, "token exchange returned no token", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
		return
	}

	user, err := s.github.User(ctx, token)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch GitHub profile", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
		return
	}

	sess := s.store.Load(c.Request)
	sess.User = &session.User{
		Login:     user.GetLogin(),
		Name:      user.GetName(),
		AvatarURL: user.GetAvatarURL(),
	}
	sess.AccessToken = token

	if err := sess.Save(c.Writer, c.Request); err != nil {
		slog.ErrorContext(ctx, "failed to persist session", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    sess.User,
	})
}

// callbackRedirectURI reconstructs the redirect URI the browser used when
// starting the OAuth flow. GitHub requires the exchange to repeat it, and
// the Origin header is where the browser's copy came from.
func (s *Server) callbackRedirectURI(c *gin.Context) string {
	origin := c.GetHeader("Origin")
	if origin == "" && len(s.config.CORS.AllowedOrigins) > 0 {
		origin = s.config.CORS.AllowedOrigins[0]
	}
	return origin + "/auth/callback"
}

// exchangeToken forwards an authorization code to the external token
// endpoint and relays the result verbatim
func (s *Server) exchangeToken(c *gin.Context) {
	var req tokenExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.Code == "" || req.RedirectURI == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing code or redirect_uri"})
		return
	}

	resp, err := s.backend.ExchangeToken(c.Request.Context(), req.Code, req.RedirectURI)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "token exchange failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Failed to exchange token",
			Details: err.Error(),
		})
		return
	}

	passthrough(c, resp.StatusCode, resp.Body)
}

// getSessionInfo reports the login state with sanitized profile fields only
func (s *Server) getSessionInfo(c *gin.Context) {
	sess := s.store.Load(c.Request)

	if sess.User == nil {
		c.JSON(http.StatusOK, gin.H{
			"isLoggedIn": false,
			"user":       nil,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"isLoggedIn": true,
		"user":       sess.User,
	})
}

// logout destroys the session. Destroying an already empty session succeeds
// with the same result.
func (s *Server) logout(c *gin.Context) {
	sess := s.store.Load(c.Request)

	if err := sess.Destroy(c.Writer, c.Request); err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to destroy session", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to log out"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// deprecatedLogin is kept so old clients get a pointer at the callback flow
func (s *Server) deprecatedLogin(c *gin.Context) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error: "This endpoint is deprecated. Use /api/auth/callback for secure authentication.",
	})
}
