package model

import (
	"time"

	"serenity/shared/model"
)

const (
	TableName  = "blocked_dates"
	EntityName = "blocked_date"

	FieldID     = "id"
	FieldDate   = "date"
	FieldReason = "reason"
)

// BlockedDate removes a calendar date from booking entirely, regardless of
// slot capacity. Dates are unique; inserting a duplicate is rejected.
type BlockedDate struct {
	ID     string    `db:"id"`
	Date   time.Time `db:"date"`
	Reason string    `db:"reason"`
	model.Metadata
}
