package model

import "serenity/shared/model"

const (
	TableName  = "time_slots"
	EntityName = "time_slot"

	FieldID          = "id"
	FieldLabel       = "label"
	FieldStartMinute = "start_minute"
	FieldCapacity    = "capacity"
	FieldActive      = "active"
)

// TimeSlot is a named time-of-day window with a fixed capacity. Bookings
// reference slots by label value, never by id, so editing or deleting a slot
// leaves existing bookings untouched.
type TimeSlot struct {
	ID          string `db:"id"`
	Label       string `db:"label"`
	StartMinute int    `db:"start_minute"`
	Capacity    int    `db:"capacity"`
	Active      bool   `db:"active"`
	model.Metadata
}
