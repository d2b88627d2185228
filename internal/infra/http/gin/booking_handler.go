package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	bookingsvc "villastay/internal/app/services/booking"
	pricingsvc "villastay/internal/app/services/pricing"
	domainbooking "villastay/internal/domain/booking"
)

type BookingHandler struct {
	Bookings *bookingsvc.Service
}

type createBookingRequest struct {
	PropertyID string         `json:"propertyId"`
	CheckIn    string         `json:"checkIn"`
	CheckOut   string         `json:"checkOut"`
	Adults     int            `json:"adults"`
	Children   int            `json:"children"`
	Infants    int            `json:"infants"`
	Pets       int            `json:"pets"`
	Extras     []extraRequest `json:"extras"`
	Guest      guestRequest   `json:"guest"`
	PromoCode  string         `json:"promoCode"`
}

type guestRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type bookingResponse struct {
	ID                 string  `json:"id"`
	Reference          string  `json:"reference"`
	PropertyID         string  `json:"propertyId"`
	CheckIn            string  `json:"checkIn"`
	CheckOut           string  `json:"checkOut"`
	Nights             int     `json:"nights"`
	Adults             int     `json:"adults"`
	Children           int     `json:"children"`
	Infants            int     `json:"infants"`
	Pets               int     `json:"pets"`
	GuestFirstName     string  `json:"guestFirstName"`
	GuestLastName      string  `json:"guestLastName"`
	GuestEmail         string  `json:"guestEmail"`
	AccommodationTotal float64 `json:"accommodationTotal"`
	CleaningFee        float64 `json:"cleaningFee"`
	TouristTax         float64 `json:"touristTax"`
	ExtraFeesTotal     float64 `json:"extraFeesTotal"`
	DiscountAmount     float64 `json:"discountAmount"`
	Subtotal           float64 `json:"subtotal"`
	Total              float64 `json:"total"`
	CommissionAmount   float64 `json:"commissionAmount"`
	PayoutAmount       float64 `json:"payoutAmount"`
	Status             string  `json:"status"`
}

func toBookingResponse(b *domainbooking.Booking) bookingResponse {
	return bookingResponse{
		ID:                 b.ID,
		Reference:          b.Reference,
		PropertyID:         b.PropertyID,
		CheckIn:            b.Range.CheckIn.Format("2006-01-02"),
		CheckOut:           b.Range.CheckOut.Format("2006-01-02"),
		Nights:             b.Nights(),
		Adults:             b.Adults,
		Children:           b.Children,
		Infants:            b.Infants,
		Pets:               b.Pets,
		GuestFirstName:     b.Guest.FirstName,
		GuestLastName:      b.Guest.LastName,
		GuestEmail:         b.Guest.Email,
		AccommodationTotal: b.AccommodationTotal,
		CleaningFee:        b.CleaningFee,
		TouristTax:         b.TouristTax,
		ExtraFeesTotal:     b.ExtraFeesTotal,
		DiscountAmount:     b.DiscountAmount,
		Subtotal:           b.Subtotal,
		Total:              b.Total,
		CommissionAmount:   b.CommissionAmount,
		PayoutAmount:       b.PayoutAmount,
		Status:             string(b.Status),
	}
}

func (h BookingHandler) Create(c *gin.Context) {
	var req createBookingRequest
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

	input := bookingsvc.CreateInput{
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
		Guest: domainbooking.Guest{
			FirstName: req.Guest.FirstName,
			LastName:  req.Guest.LastName,
			Email:     req.Guest.Email,
		},
		PromoCode: req.PromoCode,
	}
	for _, e := range req.Extras {
		input.Extras = append(input.Extras, pricingsvc.SelectedExtra{OptionID: e.OptionID, Quantity: e.Quantity})
	}

	b, err := h.Bookings.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toBookingResponse(b))
}

func (h BookingHandler) Get(c *gin.Context) {
	b, err := h.Bookings.Get(c.Request.Context(), tenantID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h BookingHandler) Confirm(c *gin.Context) {
	b, err := h.Bookings.Confirm(c.Request.Context(), tenantID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

func (h BookingHandler) Cancel(c *gin.Context) {
	var req cancelRequest
	_ = c.ShouldBindJSON(&req)
	b, err := h.Bookings.Cancel(c.Request.Context(), tenantID(c), c.Param("id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h BookingHandler) Complete(c *gin.Context) {
	b, err := h.Bookings.Complete(c.Request.Context(), tenantID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h BookingHandler) NoShow(c *gin.Context) {
	b, err := h.Bookings.MarkNoShow(c.Request.Context(), tenantID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(b))
}

func (h BookingHandler) NextReference(c *gin.Context) {
	ref, err := h.Bookings.GenerateReference(c.Request.Context(), tenantID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reference": ref})
}

var _ BookingHTTP = BookingHandler{}
