package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"serenity/config"
	"serenity/infras/otel"
	blockeddateRepo "serenity/internal/domains/blockeddate/repository"
	bookingRepo "serenity/internal/domains/booking/repository"
	timeslotRepo "serenity/internal/domains/timeslot/repository"
	"serenity/shared"
	"serenity/shared/cache"
	"serenity/shared/constant"
)

// Schedule is the read side of the booking core: the calendar policy deciding
// whether a date accepts bookings at all, and the per-slot availability view
// built on top of it. Availability is advisory; the reservation path
// re-validates capacity at commit time.
type Schedule interface {
	IsBookable(ctx context.Context, date time.Time) (bool, error)
	Availability(ctx context.Context, date time.Time) (map[string]int, error)
}

type serviceImpl struct {
	blockedDates blockeddateRepo.BlockedDate
	timeSlots    timeslotRepo.TimeSlot
	bookings     bookingRepo.Booking
	cfg          *config.Config
	cache        cache.RedisCache
	clock        Clock
	otel         otel.Otel
}

func New(
	blockedDates blockeddateRepo.BlockedDate,
	timeSlots timeslotRepo.TimeSlot,
	bookings bookingRepo.Booking,
	cfg *config.Config,
	cache cache.RedisCache,
	clock Clock,
	otel otel.Otel,
) Schedule {
	return &serviceImpl{
		blockedDates: blockedDates,
		timeSlots:    timeSlots,
		bookings:     bookings,
		cfg:          cfg,
		cache:        cache,
		clock:        clock,
		otel:         otel,
	}
}

// IsBookable reports whether date accepts new bookings: not in the past, not
// the weekly closing day, not an explicitly blocked date.
func (s *serviceImpl) IsBookable(ctx context.Context, date time.Time) (ok bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsBookable")
	defer scope.End()
	defer scope.TraceIfError(err)

	now := s.clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if date.Before(today) {
		return false, nil
	}

	if int(date.Weekday()) == s.cfg.Booking.ClosedWeekday {
		return false, nil
	}

	blocked, err := s.blockedDates.IsBlocked(ctx, date)
	if err != nil {
		log.Error().Err(err).Msg("failed to check blocked dates")

		return false, fmt.Errorf("failed to check blocked dates: %w", err)
	}

	return !blocked, nil
}

// Availability maps every active slot label to its remaining capacity for
// date. An unbookable date yields an empty map. Fully booked slots appear
// with remaining 0 so callers can render them as full, and remaining is
// floored at 0 even if a capacity edit left a slot overbooked.
func (s *serviceImpl) Availability(ctx context.Context, date time.Time) (res map[string]int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Availability")
	defer scope.End()
	defer scope.TraceIfError(err)

	bookable, err := s.IsBookable(ctx, date)
	if err != nil {
		return nil, err
	}

	if !bookable {
		return map[string]int{}, nil
	}

	cacheKey := shared.BuildCacheKey(constant.CachePrefixAvailability, date.Format(constant.BookingDateFormat))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	slots, err := s.timeSlots.Active(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get active time slots")

		return nil, fmt.Errorf("failed to get active time slots: %w", err)
	}

	occupancy, err := s.bookings.CountBySlot(ctx, date)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings per slot")

		return nil, fmt.Errorf("failed to count bookings per slot: %w", err)
	}

	res = make(map[string]int, len(slots))

	for _, slot := range slots {
		remaining := slot.Capacity - occupancy[slot.Label]
		if remaining < 0 {
			remaining = 0
		}

		res[slot.Label] = remaining
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save availability to cache")
		}
	}()

	return res, nil
}
