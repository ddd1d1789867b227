package schedule

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"serenity/infras/otel"
	"serenity/internal/domains/schedule/service"
	"serenity/shared/constant"
	"serenity/shared/failure"
	"serenity/shared/timezone"
	"serenity/transport/http/response"
)

type Handler struct {
	service service.Schedule
	otel    otel.Otel
}

func New(service service.Schedule, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/schedule", func(routerGroup chi.Router) {
		routerGroup.Get("/bookable", handler.GetBookable)
		routerGroup.Get("/availability", handler.GetAvailability)
	})
}

// GetBookable reports whether a date accepts new bookings at all.
func (handler *Handler) GetBookable(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookable")
	defer scope.End()

	date, err := parseDateParam(request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	bookable, err := handler.service.IsBookable(ctx, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check bookable date")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, map[string]any{
		"date":     date.Format(constant.BookingDateFormat),
		"bookable": bookable,
	})
}

// GetAvailability returns remaining capacity per active slot for a date. The
// view is advisory; capacity is re-checked when a reservation commits.
func (handler *Handler) GetAvailability(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	date, err := parseDateParam(request)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	availability, err := handler.service.Availability(ctx, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get availability")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, map[string]any{
		"date":  date.Format(constant.BookingDateFormat),
		"slots": availability,
	})
}

func parseDateParam(request *http.Request) (time.Time, error) {
	raw := request.URL.Query().Get(constant.RequestParamDate)
	if raw == constant.Empty {
		return time.Time{}, failure.BadRequestFromString("date query parameter is required") // nolint:wrapcheck
	}

	date, err := time.ParseInLocation(constant.BookingDateFormat, raw, timezone.GetLocation())
	if err != nil {
		return time.Time{}, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	return date, nil
}
