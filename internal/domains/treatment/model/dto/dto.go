package dto

import (
	"github.com/google/uuid"

	"serenity/internal/domains/treatment/model"
	"serenity/shared"
	gDto "serenity/shared/dto"
	gModel "serenity/shared/model"
	"serenity/shared/timezone"
)

type CreateTreatmentRequest struct {
	Name            string `json:"name"             validate:"required,max=100"`
	Price           int    `json:"price"            validate:"required,gte=1"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,gte=5,lte=480"`
	Active          *bool  `json:"active"           validate:"omitempty"`
	Combo           bool   `json:"combo"            validate:"omitempty"`
}

func (c *CreateTreatmentRequest) ToModel(user string) model.Treatment {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Treatment{
		ID:              uuid.NewString(),
		Name:            c.Name,
		Price:           c.Price,
		DurationMinutes: c.DurationMinutes,
		Active:          active,
		Combo:           c.Combo,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateTreatmentRequest struct {
	Name            string `db:"name"             json:"name"             validate:"omitempty,max=100"`
	Price           int    `db:"price"            json:"price"            validate:"omitempty,gte=1"`
	DurationMinutes int    `db:"duration_minutes" json:"duration_minutes" validate:"omitempty,gte=5,lte=480"`
	Active          *bool  `db:"active"           json:"active"           validate:"omitempty"`
	Combo           *bool  `db:"combo"            json:"combo"            validate:"omitempty"`
}

type TreatmentResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Price           int    `json:"price"`
	DurationMinutes int    `json:"duration_minutes"`
	Active          bool   `json:"active"`
	Combo           bool   `json:"combo"`
	gDto.Metadata
}

func (r *TreatmentResponse) FromModel(model model.Treatment) {
	r.ID = model.ID
	r.Name = model.Name
	r.Price = model.Price
	r.DurationMinutes = model.DurationMinutes
	r.Active = model.Active
	r.Combo = model.Combo
	r.Metadata.FromModel(model.Metadata)
}

type GetTreatmentsResponse struct {
	Treatments []TreatmentResponse `json:"treatments"`
	TotalPage  int                 `json:"total_page"`
	TotalData  int                 `json:"total_data"`
}

func (r *GetTreatmentsResponse) FromModels(models []model.Treatment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Treatments = make([]TreatmentResponse, len(models))
	for i, mod := range models {
		r.Treatments[i].FromModel(mod)
	}
}
