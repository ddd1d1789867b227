package model

import "serenity/shared/model"

const (
	TableName  = "treatments"
	EntityName = "treatment"

	FieldID              = "id"
	FieldName            = "name"
	FieldPrice           = "price"
	FieldDurationMinutes = "duration_minutes"
	FieldActive          = "active"
	FieldCombo           = "combo"
)

// Treatment is a bookable offering. Price is whole rupees; bookings freeze
// their own copy of it at reservation time, so editing a treatment never
// rewrites history.
type Treatment struct {
	ID              string `db:"id"`
	Name            string `db:"name"`
	Price           int    `db:"price"`
	DurationMinutes int    `db:"duration_minutes"`
	Active          bool   `db:"active"`
	Combo           bool   `db:"combo"`
	model.Metadata
}
