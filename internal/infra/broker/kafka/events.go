package kafka

import (
	"context"
	"encoding/json"

	bookingsvc "villastay/internal/app/services/booking"
)

const bookingTopic = "villastay.bookings"

// BookingEvents adapts the sync producer to the booking service's event
// publisher port. Messages are keyed by booking id so per-booking ordering
// is preserved.
type BookingEvents struct {
	Producer    *Producer
	TopicPrefix string
}

func (p BookingEvents) PublishBookingEvent(ctx context.Context, event bookingsvc.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.Producer.Publish(ctx, p.TopicPrefix+bookingTopic, event.BookingID, payload, map[string]string{
		"type":      event.Type,
		"tenant_id": event.TenantID,
	})
}

var _ bookingsvc.EventPublisher = BookingEvents{}
