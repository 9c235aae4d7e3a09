// Package respond maps service errors onto the JSON error body shared by
// every endpoint: {"error": <message>, "code": <machine code>}.
package respond

import (
	"errors"
	"net/http"

	"staffdesk/internal/logs"
	"staffdesk/internal/services"

	"github.com/gin-gonic/gin"
)

type mapping struct {
	status int
	code   string
}

var errorMap = map[error]mapping{
	services.ErrMissingToken:       {http.StatusUnauthorized, "MISSING_TOKEN"},
	services.ErrInvalidToken:       {http.StatusUnauthorized, "INVALID_TOKEN"},
	services.ErrSessionNotFound:    {http.StatusUnauthorized, "SESSION_NOT_FOUND"},
	services.ErrTokenExpired:       {http.StatusUnauthorized, "TOKEN_EXPIRED"},
	services.ErrInvalidCredentials: {http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	services.ErrInactiveAccount:    {http.StatusForbidden, "INACTIVE_ACCOUNT"},
	services.ErrForbidden:          {http.StatusForbidden, "FORBIDDEN"},
	services.ErrInvalidArgument:    {http.StatusBadRequest, "INVALID_ARGUMENT"},
	services.ErrNotFound:           {http.StatusNotFound, "NOT_FOUND"},
	services.ErrEmployeeExists:     {http.StatusConflict, "ALREADY_EXISTS"},
	services.ErrSimilarExists:      {http.StatusConflict, "SIMILAR_EXISTS"},
	services.ErrEmployeeReferenced: {http.StatusConflict, "REFERENCED"},
	services.ErrProjectReferenced:  {http.StatusConflict, "REFERENCED"},
}

// Error writes the JSON body for a service error. Unknown errors are logged
// and returned as a generic internal failure without leaking details.
func Error(c *gin.Context, err error) {
	for sentinel, m := range errorMap {
		if errors.Is(err, sentinel) {
			c.JSON(m.status, gin.H{"error": sentinel.Error(), "code": m.code})
			return
		}
	}

	logs.Logger.WithError(err).WithField("path", c.FullPath()).Error("internal error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "code": "INTERNAL"})
}

// BadRequest reports a malformed request body or parameter.
func BadRequest(c *gin.Context, detail string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": detail, "code": "INVALID_ARGUMENT"})
}
