package dto

import (
	"time"

	"github.com/google/uuid"

	"serenity/internal/domains/booking/model"
	treatmentModel "serenity/internal/domains/treatment/model"
	"serenity/shared"
	"serenity/shared/constant"
	gDto "serenity/shared/dto"
	gModel "serenity/shared/model"
	"serenity/shared/timezone"
)

type ReserveBookingRequest struct {
	TreatmentID   string `json:"treatment_id"   validate:"required,uuid"`
	CustomerName  string `json:"customer_name"  validate:"required,max=100"`
	CustomerEmail string `json:"customer_email" validate:"required,email,max=100"`
	CustomerPhone string `json:"customer_phone" validate:"required,max=30"`
	Date          string `json:"date"           validate:"required,bookingdate"`
	SlotLabel     string `json:"slot_label"     validate:"required,max=20"`
	Notes         string `json:"notes"          validate:"omitempty,max=500"`
}

// ToModel freezes the treatment's name and current price into the booking so
// later treatment edits never alter it.
func (r *ReserveBookingRequest) ToModel(treatment treatmentModel.Treatment, date time.Time, user string) model.Booking {
	return model.Booking{
		ID:            uuid.NewString(),
		TreatmentID:   treatment.ID,
		TreatmentName: treatment.Name,
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		BookingDate:   date,
		SlotLabel:     r.SlotLabel,
		Status:        model.StatusPending,
		PaymentStatus: constant.PaymentStatusUnpaid,
		PaymentAmount: treatment.Price,
		Notes:         r.Notes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type TransitionBookingRequest struct {
	Status      string `json:"status"       validate:"required,oneof=confirmed completed cancelled"`
	FeedbackRef string `json:"feedback_ref" validate:"omitempty,max=255"`
}

// UpdatePaymentRequest carries the externally-set payment status. The value is
// opaque to the booking lifecycle and never reconciled against it.
type UpdatePaymentRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required,max=30"`
}

type BookingResponse struct {
	ID            string `json:"id"`
	TreatmentID   string `json:"treatment_id"`
	TreatmentName string `json:"treatment_name"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	Date          string `json:"date"`
	SlotLabel     string `json:"slot_label"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	PaymentAmount int    `json:"payment_amount"`
	Notes         string `json:"notes"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.TreatmentID = model.TreatmentID
	r.TreatmentName = model.TreatmentName
	r.CustomerName = model.CustomerName
	r.CustomerEmail = model.CustomerEmail
	r.CustomerPhone = model.CustomerPhone
	r.Date = model.BookingDate.Format(constant.BookingDateFormat)
	r.SlotLabel = model.SlotLabel
	r.Status = model.Status.String()
	r.PaymentStatus = model.PaymentStatus
	r.PaymentAmount = model.PaymentAmount
	r.Notes = model.Notes
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
