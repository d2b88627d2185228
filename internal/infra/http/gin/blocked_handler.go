package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	availabilitysvc "villastay/internal/app/services/availability"
	domainavailability "villastay/internal/domain/availability"
)

type BlockedPeriodHandler struct {
	Availability *availabilitysvc.Service
}

type blockRequest struct {
	PropertyID string `json:"propertyId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Reason     string `json:"reason"`
	Notes      string `json:"notes"`
}

type blockResponse struct {
	ID         string `json:"id"`
	PropertyID string `json:"propertyId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Reason     string `json:"reason,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

func toBlockResponse(b *domainavailability.BlockedPeriod) blockResponse {
	return blockResponse{
		ID:         b.ID,
		PropertyID: b.PropertyID,
		StartDate:  b.StartDate.Format("2006-01-02"),
		EndDate:    b.EndDate.Format("2006-01-02"),
		Reason:     b.Reason,
		Notes:      b.Notes,
	}
}

func (h BlockedPeriodHandler) Create(c *gin.Context) {
	var req blockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": err.Error()})
		return
	}
	start, ok := parseDate(req.StartDate)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": "invalid startDate"})
		return
	}
	end, ok := parseDate(req.EndDate)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": "invalid endDate"})
		return
	}

	block, err := h.Availability.Block(c.Request.Context(), availabilitysvc.BlockInput{
		TenantID:   tenantID(c),
		PropertyID: req.PropertyID,
		StartDate:  start,
		EndDate:    end,
		Reason:     req.Reason,
		Notes:      req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBlockResponse(block))
}

type blockUpdateRequest struct {
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
	Reason    *string `json:"reason"`
	Notes     *string `json:"notes"`
}

func (h BlockedPeriodHandler) Update(c *gin.Context) {
	var req blockUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": err.Error()})
		return
	}
	update := availabilitysvc.BlockUpdate{Reason: req.Reason, Notes: req.Notes}
	if req.StartDate != nil {
		start, ok := parseDate(*req.StartDate)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": "invalid startDate"})
			return
		}
		update.StartDate = &start
	}
	if req.EndDate != nil {
		end, ok := parseDate(*req.EndDate)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "message": "invalid endDate"})
			return
		}
		update.EndDate = &end
	}

	block, err := h.Availability.UpdateBlock(c.Request.Context(), tenantID(c), c.Param("id"), update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBlockResponse(block))
}

func (h BlockedPeriodHandler) Delete(c *gin.Context) {
	if err := h.Availability.Unblock(c.Request.Context(), tenantID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h BlockedPeriodHandler) List(c *gin.Context) {
	propertyID := c.Query("propertyId")
	blocks, err := h.Availability.ListBlocks(c.Request.Context(), tenantID(c), propertyID)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]blockResponse, 0, len(blocks))
	for i := range blocks {
		out = append(out, toBlockResponse(&blocks[i]))
	}
	c.JSON(http.StatusOK, gin.H{"blockedPeriods": out})
}

var _ BlockedPeriodHTTP = BlockedPeriodHandler{}
