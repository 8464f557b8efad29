package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents a standardized error response. Every endpoint
// uses this envelope; collaborator `detail` fields are folded into it.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// passthrough relays a collaborator response body and status verbatim
func passthrough(c *gin.Context, statusCode int, body []byte) {
	c.Data(statusCode, "application/json", body)
}

// methodNotAllowed is the shared 405 handler
func methodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, ErrorResponse{Error: "Method not allowed"})
}

// notFound is the shared 404 handler
func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
}
