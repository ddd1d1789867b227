package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"time"

	"serenity/infras/otel"
	"serenity/infras/postgres"
	"serenity/internal/domains/blockeddate/model"
	"serenity/shared/constant"
	gDto "serenity/shared/dto"
	gRepo "serenity/shared/repository"
)

type BlockedDate interface {
	Insert(ctx context.Context, model model.BlockedDate) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.BlockedDate, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.BlockedDate, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	IsBlocked(ctx context.Context, date time.Time) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.BlockedDate]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) BlockedDate {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.BlockedDate](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// IsBlocked reports whether the calendar date is excluded from booking.
func (repo *repositoryImpl) IsBlocked(ctx context.Context, date time.Time) (bool, error) {
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldDate,
				Operator: gDto.FilterOperatorEq,
				Value:    date.Format(constant.BookingDateFormat),
				Table:    model.TableName,
			},
		},
	}

	return repo.Exist(ctx, filter)
}
