package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	pricingsvc "villastay/internal/app/services/pricing"
)

type PricingHandler struct {
	Pricing *pricingsvc.Service
}

type quoteRequest struct {
	PropertyID string         `json:"propertyId"`
	CheckIn    string         `json:"checkIn"`
	CheckOut   string         `json:"checkOut"`
	Adults     int            `json:"adults"`
	Children   int            `json:"children"`
	Infants    int            `json:"infants"`
	Pets       int            `json:"pets"`
	Extras     []extraRequest `json:"extras"`
}

type extraRequest struct {
	OptionID string `json:"optionId"`
	Quantity int    `json:"quantity"`
}

func (h PricingHandler) Quote(c *gin.Context) {
	var req quoteRequest
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

	input := pricingsvc.CalculateInput{
		TenantID:   tenantID(c),
		PropertyID: req.PropertyID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests: pricingsvc.GuestCounts{
			Adults:   req.Adults,
			Children: req.Children,
			Infants:  req.Infants,
			Pets:     req.Pets,
		},
	}
	for _, e := range req.Extras {
		input.Extras = append(input.Extras, pricingsvc.SelectedExtra{OptionID: e.OptionID, Quantity: e.Quantity})
	}

	quote, err := h.Pricing.Calculate(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

var _ PricingHTTP = PricingHandler{}
