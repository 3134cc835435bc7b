package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking-graphql/internal/logging"
)

// HTTPError is the body of every non-GraphQL failure. The request id lets a
// caller's report be matched to the server logs.
type HTTPError struct {
	Code      string `json:"error_code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// Write ends the request with err as body; later handlers in the chain do not run.
func Write(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, HTTPError{
		Code:      code,
		Message:   message,
		RequestID: logging.RequestID(c.Request.Context()),
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

// Unavailable reports that dependency cannot serve requests right now.
func Unavailable(c *gin.Context, dependency string) {
	Write(c, http.StatusServiceUnavailable, "dependency_unavailable", dependency+" is unreachable")
}
