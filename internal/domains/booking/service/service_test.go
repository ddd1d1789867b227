package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"serenity/config"
	"serenity/infras/otel/mocks"
	bookingMocks "serenity/internal/domains/booking/mocks"
	"serenity/internal/domains/booking/model"
	"serenity/internal/domains/booking/model/dto"
	"serenity/internal/domains/booking/repository"
	"serenity/internal/domains/booking/service"
	scheduleMocks "serenity/internal/domains/schedule/mocks"
	timeslotMocks "serenity/internal/domains/timeslot/mocks"
	timeslotModel "serenity/internal/domains/timeslot/model"
	treatmentMocks "serenity/internal/domains/treatment/mocks"
	treatmentModel "serenity/internal/domains/treatment/model"
	"serenity/internal/events"
	eventMocks "serenity/internal/events/mocks"
	cacheMocks "serenity/shared/cache/mocks"
	"serenity/shared/failure"
	gModel "serenity/shared/model"
)

type bookingServiceMocks struct {
	repo       *bookingMocks.MockBooking
	treatments *treatmentMocks.MockTreatment
	timeSlots  *timeslotMocks.MockTimeSlot
	schedule   *scheduleMocks.MockSchedule
	notifier   *eventMocks.MockNotifier
	cache      *cacheMocks.MockRedisCache
}

func newBookingService(t *testing.T) (service.Booking, bookingServiceMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := bookingServiceMocks{
		repo:       bookingMocks.NewMockBooking(ctrl),
		treatments: treatmentMocks.NewMockTreatment(ctrl),
		timeSlots:  timeslotMocks.NewMockTimeSlot(ctrl),
		schedule:   scheduleMocks.NewMockSchedule(ctrl),
		notifier:   eventMocks.NewMockNotifier(ctrl),
		cache:      cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(m.repo, m.treatments, m.timeSlots, m.schedule, m.notifier, cfg, m.cache, mocks.NewOtel())

	return svc, m
}

func activeSlot() timeslotModel.TimeSlot {
	return timeslotModel.TimeSlot{
		ID:          "slot-1",
		Label:       "10:00",
		StartMinute: 600,
		Capacity:    2,
		Active:      true,
	}
}

func activeTreatment() treatmentModel.Treatment {
	return treatmentModel.Treatment{
		ID:              "c7a2d0a4-54c9-4c34-9b97-7c24b3d9f001",
		Name:            "Swedish Massage",
		Price:           250000,
		DurationMinutes: 60,
		Active:          true,
	}
}

func reserveRequest() dto.ReserveBookingRequest {
	return dto.ReserveBookingRequest{
		TreatmentID:   "c7a2d0a4-54c9-4c34-9b97-7c24b3d9f001",
		CustomerName:  "Dewi Sartika",
		CustomerEmail: "dewi@example.com",
		CustomerPhone: "+628123456789",
		Date:          "2025-06-03",
		SlotLabel:     "10:00",
	}
}

func TestBookingService_Reserve(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.ReserveBookingRequest
		setupMock func(m bookingServiceMocks)
		wantKind  failure.Kind
		wantErr   bool
	}{
		{
			name: "successful reservation freezes price",
			req:  reserveRequest(),
			setupMock: func(m bookingServiceMocks) {
				m.schedule.EXPECT().IsBookable(gomock.Any(), gomock.Any()).Return(true, nil)
				m.timeSlots.EXPECT().ActiveByLabel(gomock.Any(), "10:00").Return(activeSlot(), nil)
				m.treatments.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeTreatment(), nil)
				m.repo.EXPECT().InsertIfCapacity(gomock.Any(), gomock.Any(), 2).Return(nil)
				m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "unbookable date",
			req:  reserveRequest(),
			setupMock: func(m bookingServiceMocks) {
				m.schedule.EXPECT().IsBookable(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantKind: failure.KindUnbookable,
			wantErr:  true,
		},
		{
			name: "inactive slot",
			req:  reserveRequest(),
			setupMock: func(m bookingServiceMocks) {
				m.schedule.EXPECT().IsBookable(gomock.Any(), gomock.Any()).Return(true, nil)
				m.timeSlots.EXPECT().ActiveByLabel(gomock.Any(), "10:00").Return(timeslotModel.TimeSlot{}, nil)
			},
			wantKind: failure.KindUnbookable,
			wantErr:  true,
		},
		{
			name: "inactive treatment",
			req:  reserveRequest(),
			setupMock: func(m bookingServiceMocks) {
				m.schedule.EXPECT().IsBookable(gomock.Any(), gomock.Any()).Return(true, nil)
				m.timeSlots.EXPECT().ActiveByLabel(gomock.Any(), "10:00").Return(activeSlot(), nil)

				inactive := activeTreatment()
				inactive.Active = false
				m.treatments.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil)
			},
			wantKind: failure.KindUnbookable,
			wantErr:  true,
		},
		{
			name: "slot full at commit time",
			req:  reserveRequest(),
			setupMock: func(m bookingServiceMocks) {
				m.schedule.EXPECT().IsBookable(gomock.Any(), gomock.Any()).Return(true, nil)
				m.timeSlots.EXPECT().ActiveByLabel(gomock.Any(), "10:00").Return(activeSlot(), nil)
				m.treatments.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeTreatment(), nil)
				m.repo.EXPECT().InsertIfCapacity(gomock.Any(), gomock.Any(), 2).Return(repository.ErrSlotCapacityExceeded)
			},
			wantKind: failure.KindSlotFull,
			wantErr:  true,
		},
		{
			name: "deadline expiry reported as transient",
			req:  reserveRequest(),
			setupMock: func(m bookingServiceMocks) {
				m.schedule.EXPECT().IsBookable(gomock.Any(), gomock.Any()).Return(true, nil)
				m.timeSlots.EXPECT().ActiveByLabel(gomock.Any(), "10:00").Return(activeSlot(), nil)
				m.treatments.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeTreatment(), nil)
				m.repo.EXPECT().
					InsertIfCapacity(gomock.Any(), gomock.Any(), 2).
					Return(context.DeadlineExceeded)
			},
			wantKind: failure.KindTransient,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newBookingService(t)
			tt.setupMock(m)

			res, err := svc.Reserve(context.Background(), tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, model.StatusPending.String(), res.Status)
			assert.Equal(t, 250000, res.PaymentAmount)
			assert.Equal(t, "Swedish Massage", res.TreatmentName)
			assert.Equal(t, "2025-06-03", res.Date)
		})
	}
}

func TestBookingService_Reserve_PriceFrozenAgainstLaterEdits(t *testing.T) {
	svc, m := newBookingService(t)

	m.schedule.EXPECT().IsBookable(gomock.Any(), gomock.Any()).Return(true, nil)
	m.timeSlots.EXPECT().ActiveByLabel(gomock.Any(), "10:00").Return(activeSlot(), nil)
	m.treatments.EXPECT().Get(gomock.Any(), gomock.Any()).Return(activeTreatment(), nil)

	var inserted model.Booking
	m.repo.EXPECT().
		InsertIfCapacity(gomock.Any(), gomock.Any(), 2).
		DoAndReturn(func(_ context.Context, booking model.Booking, _ int) error {
			inserted = booking
			return nil
		})
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	res, err := svc.Reserve(context.Background(), reserveRequest())

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
	assert.Equal(t, 250000, inserted.PaymentAmount)
	assert.Equal(t, inserted.PaymentAmount, res.PaymentAmount)
}

func existingBooking(status model.Status) model.Booking {
	return model.Booking{
		ID:            "b5f3c8d2-1111-4f4f-9e9e-aaaa00000001",
		TreatmentID:   "c7a2d0a4-54c9-4c34-9b97-7c24b3d9f001",
		TreatmentName: "Swedish Massage",
		CustomerName:  "Dewi Sartika",
		CustomerEmail: "dewi@example.com",
		CustomerPhone: "+628123456789",
		BookingDate:   time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		SlotLabel:     "10:00",
		Status:        status,
		PaymentStatus: "unpaid",
		PaymentAmount: 250000,
		Metadata: gModel.Metadata{
			CreatedAt:  time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
			ModifiedAt: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		},
	}
}

func TestBookingService_Transition(t *testing.T) {
	tests := []struct {
		name       string
		req        dto.TransitionBookingRequest
		setupMock  func(m bookingServiceMocks)
		wantStatus string
		wantKind   failure.Kind
		wantErr    bool
	}{
		{
			name: "pending to confirmed emits confirmed notification",
			req:  dto.TransitionBookingRequest{Status: "confirmed"},
			setupMock: func(m bookingServiceMocks) {
				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingBooking(model.StatusPending), nil)
				m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				m.notifier.EXPECT().
					Notify(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, n events.Notification) error {
						assert.Equal(t, events.NotificationKindConfirmed, n.Kind)
						assert.Equal(t, "Swedish Massage", n.Booking.TreatmentName)
						assert.Equal(t, "2025-06-03", n.Booking.Date)
						assert.Equal(t, "10:00", n.Booking.SlotLabel)
						assert.Equal(t, "dewi@example.com", n.Booking.CustomerEmail)
						return nil
					})
				m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantStatus: "confirmed",
		},
		{
			name: "confirmed to completed carries feedback reference",
			req:  dto.TransitionBookingRequest{Status: "completed", FeedbackRef: "feedback-token-123"},
			setupMock: func(m bookingServiceMocks) {
				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingBooking(model.StatusConfirmed), nil)
				m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				m.notifier.EXPECT().
					Notify(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, n events.Notification) error {
						assert.Equal(t, events.NotificationKindCompleted, n.Kind)
						assert.Equal(t, "feedback-token-123", n.FeedbackRef)
						return nil
					})
				m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantStatus: "completed",
		},
		{
			name: "pending to cancelled emits no notification",
			req:  dto.TransitionBookingRequest{Status: "cancelled"},
			setupMock: func(m bookingServiceMocks) {
				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingBooking(model.StatusPending), nil)
				m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantStatus: "cancelled",
		},
		{
			name: "completed is terminal",
			req:  dto.TransitionBookingRequest{Status: "confirmed"},
			setupMock: func(m bookingServiceMocks) {
				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingBooking(model.StatusCompleted), nil)
			},
			wantKind: failure.KindInvalidTransition,
			wantErr:  true,
		},
		{
			name: "cancelled is terminal",
			req:  dto.TransitionBookingRequest{Status: "confirmed"},
			setupMock: func(m bookingServiceMocks) {
				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingBooking(model.StatusCancelled), nil)
			},
			wantKind: failure.KindInvalidTransition,
			wantErr:  true,
		},
		{
			name: "pending straight to completed is rejected",
			req:  dto.TransitionBookingRequest{Status: "completed"},
			setupMock: func(m bookingServiceMocks) {
				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingBooking(model.StatusPending), nil)
			},
			wantKind: failure.KindInvalidTransition,
			wantErr:  true,
		},
		{
			name: "booking not found",
			req:  dto.TransitionBookingRequest{Status: "confirmed"},
			setupMock: func(m bookingServiceMocks) {
				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantKind: failure.KindNotFound,
			wantErr:  true,
		},
		{
			name: "notifier failure does not fail the transition",
			req:  dto.TransitionBookingRequest{Status: "confirmed"},
			setupMock: func(m bookingServiceMocks) {
				m.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingBooking(model.StatusPending), nil)
				m.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				m.notifier.EXPECT().
					Notify(gomock.Any(), gomock.Any()).
					Return(errors.New("broker unreachable"))
				m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantStatus: "confirmed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newBookingService(t)
			tt.setupMock(m)

			res, err := svc.Transition(context.Background(), "b5f3c8d2-1111-4f4f-9e9e-aaaa00000001", tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, res.Status)
		})
	}
}

func TestBookingService_UpdatePayment(t *testing.T) {
	t.Run("overwrites the opaque payment status", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, update map[string]any, _ any) error {
				assert.Equal(t, "completed", update[model.FieldPaymentStatus])
				return nil
			})
		m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		err := svc.UpdatePayment(context.Background(), "b5f3c8d2-1111-4f4f-9e9e-aaaa00000001", dto.UpdatePaymentRequest{PaymentStatus: "completed"})

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("booking not found", func(t *testing.T) {
		svc, m := newBookingService(t)

		m.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.UpdatePayment(context.Background(), "missing-id", dto.UpdatePaymentRequest{PaymentStatus: "completed"})

		assert.Error(t, err)
		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})
}
