package ginserver

import (
	"net/http"
	"strconv"

	gin "github.com/gin-gonic/gin"

	promosvc "villastay/internal/app/services/promo"
)

type PromoHandler struct {
	Promo *promosvc.Service
}

// Validate answers GET /promocodes/validate. Constraint failures come back
// as 200 with valid=false; only malformed input is an error.
func (h PromoHandler) Validate(c *gin.Context) {
	checkIn, okIn := parseDate(c.Query("checkIn"))
	checkOut, okOut := parseDate(c.Query("checkOut"))
	if !okIn || !okOut {
		c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": "invalid checkIn or checkOut date"})
		return
	}
	total, err := strconv.ParseFloat(c.Query("totalAmount"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": "invalid totalAmount"})
		return
	}
	nights, err := strconv.Atoi(c.DefaultQuery("nights", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": "invalid nights"})
		return
	}

	result, err := h.Promo.Validate(c.Request.Context(), promosvc.ValidateInput{
		Code:        c.Query("code"),
		TenantID:    tenantID(c),
		PropertyID:  c.Query("propertyId"),
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		TotalAmount: total,
		Nights:      nights,
		GuestEmail:  c.Query("guestEmail"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ PromoHTTP = PromoHandler{}
