package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	availabilitysvc "villastay/internal/app/services/availability"
)

type AvailabilityHandler struct {
	Availability *availabilitysvc.Service
}

type checkRequest struct {
	PropertyID       string `json:"propertyId"`
	CheckIn          string `json:"checkIn"`
	CheckOut         string `json:"checkOut"`
	ExcludeBookingID string `json:"excludeBookingId"`
}

func (h AvailabilityHandler) Check(c *gin.Context) {
	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": err.Error()})
		return
	}
	checkIn, ok := parseDate(req.CheckIn)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": "invalid checkIn date"})
		return
	}
	checkOut, ok := parseDate(req.CheckOut)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": "invalid checkOut date"})
		return
	}

	result, err := h.Availability.Check(c.Request.Context(), availabilitysvc.CheckInput{
		TenantID:         tenantID(c),
		PropertyID:       req.PropertyID,
		CheckIn:          checkIn,
		CheckOut:         checkOut,
		ExcludeBookingID: req.ExcludeBookingID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h AvailabilityHandler) Calendar(c *gin.Context) {
	start, ok := parseDate(c.Query("startDate"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": "invalid startDate"})
		return
	}
	end, ok := parseDate(c.Query("endDate"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": "invalid endDate"})
		return
	}

	cal, err := h.Availability.BuildCalendar(c.Request.Context(), availabilitysvc.CalendarInput{
		TenantID:   tenantID(c),
		PropertyID: c.Param("id"),
		StartDate:  start,
		EndDate:    end,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cal)
}

var _ AvailabilityHTTP = AvailabilityHandler{}
