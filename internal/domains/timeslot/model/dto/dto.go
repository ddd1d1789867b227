package dto

import (
	"github.com/google/uuid"

	"serenity/internal/domains/timeslot/model"
	"serenity/shared"
	gDto "serenity/shared/dto"
	gModel "serenity/shared/model"
	"serenity/shared/timezone"
)

type CreateTimeSlotRequest struct {
	Label       string `json:"label"        validate:"required,max=50"`
	StartMinute int    `json:"start_minute" validate:"gte=0,lt=1440"`
	Capacity    int    `json:"capacity"     validate:"required,gte=1"`
	Active      *bool  `json:"active"       validate:"omitempty"`
}

func (c *CreateTimeSlotRequest) ToModel(user string) model.TimeSlot {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.TimeSlot{
		ID:          uuid.NewString(),
		Label:       c.Label,
		StartMinute: c.StartMinute,
		Capacity:    c.Capacity,
		Active:      active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateTimeSlotRequest struct {
	Label       string `db:"label"        json:"label"        validate:"omitempty,max=50"`
	StartMinute *int   `db:"start_minute" json:"start_minute" validate:"omitempty,gte=0,lt=1440"`
	Capacity    int    `db:"capacity"     json:"capacity"     validate:"omitempty,gte=1"`
	Active      *bool  `db:"active"       json:"active"       validate:"omitempty"`
}

type TimeSlotResponse struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	StartMinute int    `json:"start_minute"`
	Capacity    int    `json:"capacity"`
	Active      bool   `json:"active"`
	gDto.Metadata
}

func (r *TimeSlotResponse) FromModel(model model.TimeSlot) {
	r.ID = model.ID
	r.Label = model.Label
	r.StartMinute = model.StartMinute
	r.Capacity = model.Capacity
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetTimeSlotsResponse struct {
	TimeSlots []TimeSlotResponse `json:"time_slots"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetTimeSlotsResponse) FromModels(models []model.TimeSlot, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.TimeSlots = make([]TimeSlotResponse, len(models))
	for i, mod := range models {
		r.TimeSlots[i].FromModel(mod)
	}
}
