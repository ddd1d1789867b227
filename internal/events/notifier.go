package events

//go:generate go run go.uber.org/mock/mockgen -source=./notifier.go -destination=./mocks/notifier_mock.go -package=mocks

import (
	"context"
	"fmt"

	"serenity/config"
	"serenity/infras/kafka"
	"serenity/infras/otel"
	"serenity/shared/constant"
)

// Notifier is a fire-and-forget sink. Callers treat a failed publish as
// non-fatal; the status change that raised the obligation persists regardless.
type Notifier interface {
	Notify(ctx context.Context, notification Notification) error
}

type kafkaNotifier struct {
	cfg    *config.Config
	client kafka.Client
	otel   otel.Otel
}

func NewNotifier(cfg *config.Config, client kafka.Client, otel otel.Otel) Notifier {
	return &kafkaNotifier{
		cfg:    cfg,
		client: client,
		otel:   otel,
	}
}

func (n *kafkaNotifier) Notify(ctx context.Context, notification Notification) (err error) {
	ctx, scope := n.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".notifier.Notify")
	defer scope.End()
	defer scope.TraceIfError(err)

	message := kafka.Message{
		Key:   notification.Booking.BookingID,
		Value: notification,
	}

	if err = n.client.SendMessages(ctx, n.cfg.Kafka.Topics.Notifications, message); err != nil {
		return fmt.Errorf("failed to publish %s notification: %w", notification.Kind, err)
	}

	return nil
}
