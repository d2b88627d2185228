package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	bookingsvc "villastay/internal/app/services/booking"
)

// PublicHandler serves the unauthenticated guest surface. Routes mounted
// with it sit behind the abuse rate limiter.
type PublicHandler struct {
	Bookings *bookingsvc.Service
}

type lookupRequest struct {
	Reference string `json:"reference"`
	Email     string `json:"email"`
}

func (h PublicHandler) Lookup(c *gin.Context) {
	var req lookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": err.Error()})
		return
	}
	b, err := h.Bookings.Lookup(c.Request.Context(), tenantID(c), req.Reference, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

var _ PublicHTTP = PublicHandler{}
