package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"serenity/infras/otel"
	"serenity/infras/postgres"
	"serenity/internal/domains/timeslot/model"
	gDto "serenity/shared/dto"
	gRepo "serenity/shared/repository"
)

type TimeSlot interface {
	Insert(ctx context.Context, model model.TimeSlot) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.TimeSlot, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.TimeSlot, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	Active(ctx context.Context) ([]model.TimeSlot, error)
	ActiveByLabel(ctx context.Context, label string) (model.TimeSlot, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.TimeSlot]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) TimeSlot {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.TimeSlot](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Active returns every active slot in intrinsic time-of-day order, not
// insertion order.
func (repo *repositoryImpl) Active(ctx context.Context) ([]model.TimeSlot, error) {
	params := gDto.QueryParams{
		SortBy:  model.FieldStartMinute,
		SortDir: gDto.SortDirAsc,
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    model.TableName,
			},
		},
	}

	return repo.GetAll(ctx, params, filter)
}

// ActiveByLabel resolves an active slot by its label. Returns the zero value
// when no active slot carries the label.
func (repo *repositoryImpl) ActiveByLabel(ctx context.Context, label string) (model.TimeSlot, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldLabel,
				Operator: gDto.FilterOperatorEq,
				Value:    label,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    model.TableName,
			},
		},
	}

	return repo.Get(ctx, filter)
}
