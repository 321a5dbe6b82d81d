package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"servicepro-server/apperr"
)

// respond writes the success envelope.
func respond(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// respondError maps a service error to the failure envelope. Unknown errors
// become an opaque 500 so storage detail never leaks to clients.
func respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	c.JSON(statusFor(kind), gin.H{
		"success": false,
		"error":   apperr.MessageOf(err),
		"code":    string(kind),
	})
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindInvalidTransition:
		return http.StatusBadRequest
	case apperr.KindInvalidCredentials, apperr.KindInvalidOrExpiredToken:
		return http.StatusUnauthorized
	case apperr.KindAccessDenied:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindDuplicateIdentity:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// parseID reads a numeric path parameter, failing the request on garbage.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := parseUint(c.Param(name))
	if err != nil {
		respondError(c, apperr.Validation("invalid %s", name))
		return 0, false
	}
	return id, true
}
