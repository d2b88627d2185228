package booking

import (
	"context"
	"time"

	domainbooking "villastay/internal/domain/booking"
)

// Booking lifecycle events published to collaborators (notifications,
// analytics). Delivery is best-effort; the booking itself is already
// committed when an event goes out.
const (
	EventCreated   = "booking.created"
	EventConfirmed = "booking.confirmed"
	EventCancelled = "booking.cancelled"
)

type Event struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"bookingId"`
	TenantID   string    `json:"tenantId"`
	PropertyID string    `json:"propertyId"`
	Reference  string    `json:"reference"`
	CheckIn    time.Time `json:"checkIn"`
	CheckOut   time.Time `json:"checkOut"`
	Total      float64   `json:"total"`
	Status     string    `json:"status"`
	At         time.Time `json:"at"`
}

type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, event Event) error
}

func (s *Service) publish(ctx context.Context, eventType string, b *domainbooking.Booking) {
	if s.Events == nil || b == nil {
		return
	}
	event := Event{
		Type:       eventType,
		BookingID:  b.ID,
		TenantID:   b.TenantID,
		PropertyID: b.PropertyID,
		Reference:  b.Reference,
		CheckIn:    b.Range.CheckIn,
		CheckOut:   b.Range.CheckOut,
		Total:      b.Total,
		Status:     string(b.Status),
		At:         s.now(),
	}
	if err := s.Events.PublishBookingEvent(ctx, event); err != nil {
		s.log().Warn("booking event publish failed", "type", eventType, "booking_id", b.ID, "error", err)
	}
}
