package dto

import (
	"time"

	"github.com/google/uuid"

	"serenity/internal/domains/blockeddate/model"
	"serenity/shared"
	"serenity/shared/constant"
	gDto "serenity/shared/dto"
	gModel "serenity/shared/model"
	"serenity/shared/timezone"
)

type CreateBlockedDateRequest struct {
	Date   string `json:"date"   validate:"required,bookingdate"`
	Reason string `json:"reason" validate:"omitempty,max=255"`
}

func (c *CreateBlockedDateRequest) ToModel(user string) (model.BlockedDate, error) {
	date, err := time.Parse(constant.BookingDateFormat, c.Date)
	if err != nil {
		return model.BlockedDate{}, err
	}

	return model.BlockedDate{
		ID:     uuid.NewString(),
		Date:   date,
		Reason: c.Reason,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type BlockedDateResponse struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Reason string `json:"reason"`
	gDto.Metadata
}

func (r *BlockedDateResponse) FromModel(model model.BlockedDate) {
	r.ID = model.ID
	r.Date = model.Date.Format(constant.BookingDateFormat)
	r.Reason = model.Reason
	r.Metadata.FromModel(model.Metadata)
}

type GetBlockedDatesResponse struct {
	BlockedDates []BlockedDateResponse `json:"blocked_dates"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetBlockedDatesResponse) FromModels(models []model.BlockedDate, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.BlockedDates = make([]BlockedDateResponse, len(models))
	for i, mod := range models {
		r.BlockedDates[i].FromModel(mod)
	}
}
