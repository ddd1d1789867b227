package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"serenity/infras/otel"
	"serenity/infras/postgres"
	"serenity/internal/domains/booking/model"
	"serenity/shared/constant"
	gDto "serenity/shared/dto"
	"serenity/shared/logger"
	gRepo "serenity/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	InsertIfCapacity(ctx context.Context, booking model.Booking, capacity int) error
	CountBySlot(ctx context.Context, date time.Time) (map[string]int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// InsertIfCapacity commits the booking only if the (date, slot) pair still has
// a free seat. The count and the insert run in one transaction serialized by a
// pg advisory lock keyed on the pair, so two callers racing for the last seat
// cannot both commit; callers on different pairs never contend. The lock is
// transaction-scoped and released on commit or rollback.
func (repo *repositoryImpl) InsertIfCapacity(ctx context.Context, booking model.Booking, capacity int) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.InsertIfCapacity")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin reservation transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("failed to roll back reservation transaction")
			}
		}
	}()

	lockKey := fmt.Sprintf("%s|%s", booking.BookingDate.Format(constant.BookingDateFormat), booking.SlotLabel)

	if _, err = tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", lockKey); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to acquire reservation lock: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT COUNT(id) FROM %s WHERE %s = $1 AND %s = $2 AND %s != $3",
		model.TableName, model.FieldBookingDate, model.FieldSlotLabel, model.FieldStatus,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var occupied int
	if err = tx.GetContext(ctx, &occupied, query, booking.BookingDate, booking.SlotLabel, model.StatusCancelled); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to count slot occupancy: %w", err)
	}

	if occupied >= capacity {
		err = ErrSlotCapacityExceeded

		return err
	}

	if err = repo.InsertTx(ctx, tx, booking); err != nil {
		return err //nolint:wrapcheck
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit reservation transaction: %w", err)
	}

	return nil
}

// CountBySlot returns the non-cancelled booking count per slot label for one
// date. Slots without bookings are absent from the map.
func (repo *repositoryImpl) CountBySlot(ctx context.Context, date time.Time) (result map[string]int, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CountBySlot")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(
		"SELECT %s, COUNT(id) AS total FROM %s WHERE %s = $1 AND %s != $2 GROUP BY %s",
		model.FieldSlotLabel, model.TableName, model.FieldBookingDate, model.FieldStatus, model.FieldSlotLabel,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	rows := []struct {
		SlotLabel string `db:"slot_label"`
		Total     int    `db:"total"`
	}{}

	if err = repo.db.Read.SelectContext(ctx, &rows, query, date, model.StatusCancelled); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to count bookings per slot: %w", err)
	}

	result = make(map[string]int, len(rows))
	for _, row := range rows {
		result[row.SlotLabel] = row.Total
	}

	return result, nil
}
