package model

import (
	"time"

	"serenity/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldTreatmentID   = "treatment_id"
	FieldTreatmentName = "treatment_name"
	FieldCustomerName  = "customer_name"
	FieldCustomerEmail = "customer_email"
	FieldCustomerPhone = "customer_phone"
	FieldBookingDate   = "booking_date"
	FieldSlotLabel     = "slot_label"
	FieldStatus        = "status"
	FieldPaymentStatus = "payment_status"
	FieldPaymentAmount = "payment_amount"
	FieldNotes         = "notes"
)

// Booking references its treatment by id but also carries the treatment name,
// slot label and price by value. Later edits or deletions of the treatment or
// slot must not corrupt booking history, so everything a booking needs to
// describe itself is frozen at reservation time.
type Booking struct {
	ID            string    `db:"id"`
	TreatmentID   string    `db:"treatment_id"`
	TreatmentName string    `db:"treatment_name"`
	CustomerName  string    `db:"customer_name"`
	CustomerEmail string    `db:"customer_email"`
	CustomerPhone string    `db:"customer_phone"`
	BookingDate   time.Time `db:"booking_date"`
	SlotLabel     string    `db:"slot_label"`
	Status        Status    `db:"status"`
	PaymentStatus string    `db:"payment_status"`
	PaymentAmount int       `db:"payment_amount"`
	Notes         string    `db:"notes"`
	model.Metadata
}
