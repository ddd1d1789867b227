package events_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"serenity/config"
	"serenity/infras/kafka"
	kafkaMocks "serenity/infras/kafka/mocks"
	otelMocks "serenity/infras/otel/mocks"
	bookingModel "serenity/internal/domains/booking/model"
	"serenity/internal/events"
	"serenity/shared/constant"
)

func newTestNotifier(t *testing.T) (events.Notifier, *kafkaMocks.MockClient) {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Kafka.Topics.Notifications = "booking-notifications"

	client := kafkaMocks.NewMockClient(ctrl)

	return events.NewNotifier(cfg, client, otelMocks.NewOtel()), client
}

func testBooking() bookingModel.Booking {
	booking := bookingModel.Booking{
		ID:            "b7a3b8a0-5f5a-4b3e-9a0c-1d2e3f4a5b6c",
		TreatmentName: "Deep Tissue Massage",
		CustomerName:  "Maya Andini",
		CustomerEmail: "maya@example.com",
		CustomerPhone: "+628123456789",
		BookingDate:   time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		SlotLabel:     "10:00",
		Status:        bookingModel.StatusConfirmed,
	}

	return booking
}

func TestSnapshotOf(t *testing.T) {
	snapshot := events.SnapshotOf(testBooking(), constant.BookingDateFormat)

	assert.Equal(t, "2025-06-02", snapshot.Date)
	assert.Equal(t, "Deep Tissue Massage", snapshot.TreatmentName)
	assert.Equal(t, "Maya Andini", snapshot.CustomerName)
	assert.Equal(t, "10:00", snapshot.SlotLabel)
}

func TestNotify(t *testing.T) {
	t.Run("publishes to the notifications topic keyed by booking id", func(t *testing.T) {
		notifier, client := newTestNotifier(t)

		notification := events.Notification{
			Kind:    events.NotificationKindConfirmed,
			Booking: events.SnapshotOf(testBooking(), constant.BookingDateFormat),
		}

		client.EXPECT().
			SendMessages(gomock.Any(), "booking-notifications", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
				require.Len(t, messages, 1)
				assert.Equal(t, notification.Booking.BookingID, messages[0].Key)
				assert.Equal(t, notification, messages[0].Value)

				return nil
			})

		err := notifier.Notify(context.Background(), notification)

		require.NoError(t, err)
	})

	t.Run("wraps the broker error with the notification kind", func(t *testing.T) {
		notifier, client := newTestNotifier(t)

		client.EXPECT().
			SendMessages(gomock.Any(), "booking-notifications", gomock.Any()).
			Return(errors.New("broker unreachable"))

		err := notifier.Notify(context.Background(), events.Notification{
			Kind:    events.NotificationKindCompleted,
			Booking: events.SnapshotOf(testBooking(), constant.BookingDateFormat),
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "completed")
	})
}
