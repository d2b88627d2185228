package pricing

import "time"

// DayPrice is one line of the nightly breakdown.
type DayPrice struct {
	Date           time.Time `json:"date"`
	BasePrice      float64   `json:"basePrice"`
	WeekendApplied bool      `json:"weekendApplied"`
	FinalPrice     float64   `json:"finalPrice"`
	PeriodName     string    `json:"periodName,omitempty"`
}

// ExtraFee is a mandatory or selected add-on charge for the stay.
type ExtraFee struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Amount   float64 `json:"amount"`
}

// Quote is the full price breakdown for a stay.
type Quote struct {
	Nights             int        `json:"nights"`
	AccommodationTotal float64    `json:"accommodationTotal"`
	CleaningFee        float64    `json:"cleaningFee"`
	TouristTax         float64    `json:"touristTax"`
	ExtraFees          []ExtraFee `json:"extraFees"`
	DiscountAmount     float64    `json:"discountAmount"`
	Subtotal           float64    `json:"subtotal"`
	Total              float64    `json:"total"`
	AveragePerNight    float64    `json:"averagePerNight"`
	Breakdown          []DayPrice `json:"breakdown"`
}

// ExtraFeesTotal sums the add-on charges.
func (q Quote) ExtraFeesTotal() float64 {
	var total float64
	for _, fee := range q.ExtraFees {
		total += fee.Amount
	}
	return total
}
