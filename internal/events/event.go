package events

import "serenity/internal/domains/booking/model"

type NotificationKind string

const (
	NotificationKindConfirmed NotificationKind = "confirmed"
	NotificationKindCompleted NotificationKind = "completed"
)

// BookingSnapshot is the booking state captured at the moment of a lifecycle
// transition. The dispatcher works from the snapshot alone, so later edits to
// the booking never change what a notification says.
type BookingSnapshot struct {
	BookingID     string `json:"booking_id"`
	TreatmentName string `json:"treatment_name"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	Date          string `json:"date"`
	SlotLabel     string `json:"slot_label"`
}

// Notification is the obligation a lifecycle transition emits. Delivery,
// retries and idempotency of the send belong to the consumer, not here.
type Notification struct {
	Kind        NotificationKind `json:"kind"`
	Booking     BookingSnapshot  `json:"booking"`
	FeedbackRef string           `json:"feedback_ref,omitempty"`
}

func SnapshotOf(booking model.Booking, dateFormat string) BookingSnapshot {
	return BookingSnapshot{
		BookingID:     booking.ID,
		TreatmentName: booking.TreatmentName,
		CustomerName:  booking.CustomerName,
		CustomerEmail: booking.CustomerEmail,
		CustomerPhone: booking.CustomerPhone,
		Date:          booking.BookingDate.Format(dateFormat),
		SlotLabel:     booking.SlotLabel,
	}
}
