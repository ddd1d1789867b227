package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"serenity/config"
	"serenity/infras/otel"
	"serenity/internal/domains/booking/model"
	"serenity/internal/domains/booking/model/dto"
	"serenity/internal/domains/booking/repository"
	scheduleService "serenity/internal/domains/schedule/service"
	timeslotRepo "serenity/internal/domains/timeslot/repository"
	treatmentModel "serenity/internal/domains/treatment/model"
	treatmentRepo "serenity/internal/domains/treatment/repository"
	"serenity/internal/events"
	"serenity/shared"
	"serenity/shared/cache"
	"serenity/shared/constant"
	gDto "serenity/shared/dto"
	"serenity/shared/failure"
	"serenity/shared/timezone"
)

const (
	cacheGetAllBooking = "booking:gets"
	cacheGetBooking    = "booking:get"
)

type Booking interface {
	Reserve(ctx context.Context, req dto.ReserveBookingRequest) (dto.BookingResponse, error)
	Transition(ctx context.Context, id string, req dto.TransitionBookingRequest) (dto.BookingResponse, error)
	UpdatePayment(ctx context.Context, id string, req dto.UpdatePaymentRequest) error
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo       repository.Booking
	treatments treatmentRepo.Treatment
	timeSlots  timeslotRepo.TimeSlot
	schedule   scheduleService.Schedule
	notifier   events.Notifier
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(
	repo repository.Booking,
	treatments treatmentRepo.Treatment,
	timeSlots timeslotRepo.TimeSlot,
	schedule scheduleService.Schedule,
	notifier events.Notifier,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:       repo,
		treatments: treatments,
		timeSlots:  timeSlots,
		schedule:   schedule,
		notifier:   notifier,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

// Reserve admits a new booking into a (date, slot) pair. Eligibility is
// checked up front without writing anything; the capacity check itself is
// re-done atomically inside the repository so two callers racing for the last
// seat cannot both commit. On success the booking starts out pending with the
// treatment's current price frozen in.
func (s *serviceImpl) Reserve(ctx context.Context, req dto.ReserveBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reserve")
	defer scope.End()
	defer scope.TraceIfError(err)

	date, err := time.ParseInLocation(constant.BookingDateFormat, req.Date, timezone.GetLocation())
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	bookable, err := s.schedule.IsBookable(ctx, date)
	if err != nil {
		return res, err
	}

	if !bookable {
		return res, failure.Unbookable("this date is not open for booking") // nolint:wrapcheck
	}

	slot, err := s.timeSlots.ActiveByLabel(ctx, req.SlotLabel)
	if err != nil {
		log.Error().Err(err).Msg("failed to get time slot")

		return res, fmt.Errorf("failed to get time slot: %w", err)
	}

	if slot.ID == constant.Empty {
		return res, failure.Unbookable("this time slot is not available") // nolint:wrapcheck
	}

	treatment, err := s.activeTreatment(ctx, req.TreatmentID)
	if err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	booking := req.ToModel(treatment, date, user)

	if err = s.repo.InsertIfCapacity(ctx, booking, slot.Capacity); err != nil {
		switch {
		case errors.Is(err, repository.ErrSlotCapacityExceeded):
			return res, failure.SlotFull("this slot just filled up, please choose another") // nolint:wrapcheck
		case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
			return res, failure.Transient("reservation timed out, please try again") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to reserve booking")

		return res, fmt.Errorf("failed to reserve booking: %w", err)
	}

	s.invalidate(ctx, booking.ID, true)

	res.FromModel(booking)

	return res, nil
}

// Transition moves a booking along its lifecycle. Illegal moves are rejected
// without touching the row. Confirming or completing a booking emits a
// notification obligation; delivery failure is logged but never undoes the
// status change.
func (s *serviceImpl) Transition(ctx context.Context, id string, req dto.TransitionBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Transition")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	target := model.Status(req.Status)

	if !booking.Status.CanTransitionTo(target) {
		return res, failure.InvalidTransition(fmt.Sprintf("booking cannot move from %s to %s", booking.Status, target)) // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timezone.Now()

	update := map[string]any{
		model.FieldStatus:        target,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, update, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return res, fmt.Errorf("failed to update booking status: %w", err)
	}

	booking.Status = target
	booking.ModifiedAt = now
	booking.ModifiedBy = user

	s.emitObligation(ctx, booking, req.FeedbackRef)
	s.invalidate(ctx, booking.ID, !target.CountsTowardCapacity())

	res.FromModel(booking)

	return res, nil
}

// UpdatePayment overwrites the opaque payment status. It is deliberately not
// reconciled against the lifecycle status; a cancelled booking may keep a
// completed payment until a product decision says otherwise.
func (s *serviceImpl) UpdatePayment(ctx context.Context, id string, req dto.UpdatePaymentRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdatePayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	update := map[string]any{
		model.FieldPaymentStatus: req.PaymentStatus,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, update, filter); err != nil {
		log.Error().Err(err).Msg("failed to update payment status")

		return fmt.Errorf("failed to update payment status: %w", err)
	}

	s.invalidate(ctx, id, false)

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	bookings, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(bookings, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

// Delete hard-deletes a booking. Administrator escape hatch; no soft delete.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if booking exists")

		return fmt.Errorf("failed to check if booking exists: %w", err)
	}

	if !exist {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.invalidate(ctx, id, true)

	return nil
}

func (s *serviceImpl) activeTreatment(ctx context.Context, id string) (treatmentModel.Treatment, error) {
	filter := shared.FilterByID(id, treatmentModel.FieldID, treatmentModel.TableName)

	treatment, err := s.treatments.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get treatment")

		return treatment, fmt.Errorf("failed to get treatment: %w", err)
	}

	if treatment.ID == constant.Empty || !treatment.Active {
		return treatment, failure.Unbookable("this treatment is not available") // nolint:wrapcheck
	}

	return treatment, nil
}

func (s *serviceImpl) emitObligation(ctx context.Context, booking model.Booking, feedbackRef string) {
	var kind events.NotificationKind

	switch booking.Status {
	case model.StatusConfirmed:
		kind = events.NotificationKindConfirmed
	case model.StatusCompleted:
		kind = events.NotificationKindCompleted
	default:
		return
	}

	notification := events.Notification{
		Kind:    kind,
		Booking: events.SnapshotOf(booking, constant.BookingDateFormat),
	}

	if kind == events.NotificationKindCompleted {
		notification.FeedbackRef = feedbackRef
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.notifier.Notify(c, notification); err != nil {
			log.Error().Err(err).Str("booking_id", booking.ID).Msg("failed to dispatch notification")
		}
	}()
}

func (s *serviceImpl) invalidate(ctx context.Context, id string, occupancyChanged bool) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheGetBooking, id))

		if occupancyChanged {
			shared.InvalidateCaches(c, s.cache, constant.CachePrefixAvailability)
		}
	}()
}
