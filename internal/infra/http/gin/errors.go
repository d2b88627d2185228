package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"villastay/internal/domain/shared/apperr"
)

// respondError maps the engine's error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is an internal error and keeps its detail out of the
// response.
func respondError(c *gin.Context, err error) {
	var e *apperr.Error
	if !errors.As(err, &e) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "INTERNAL", "message": "internal error"})
		return
	}
	c.JSON(statusFor(e.Kind), errorBody(e))
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindBusinessRule:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func errorBody(e *apperr.Error) gin.H {
	body := gin.H{"error": string(e.Kind), "message": e.Message}
	if len(e.Detail) > 0 {
		body["details"] = e.Detail
	}
	return body
}
