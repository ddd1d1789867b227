package timeslot

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"serenity/infras/otel"
	"serenity/internal/domains/timeslot/model"
	"serenity/internal/domains/timeslot/model/dto"
	"serenity/internal/domains/timeslot/service"
	"serenity/shared"
	"serenity/shared/constant"
	gDto "serenity/shared/dto"
	"serenity/shared/validator"
	"serenity/transport/http/middleware"
	"serenity/transport/http/response"
)

type Handler struct {
	service service.TimeSlot
	auth    middleware.Auth
	otel    otel.Otel
}

func New(service service.TimeSlot, auth middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		auth:    auth,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/time-slots", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetTimeSlots)
		routerGroup.Get("/{id}", handler.GetTimeSlotByID)

		routerGroup.Group(func(admin chi.Router) {
			admin.Use(handler.auth.Auth)
			admin.Use(handler.auth.RequireRole(constant.RoleAdmin, constant.RoleSuperAdmin))

			admin.Post("/", handler.CreateTimeSlot)
			admin.Patch("/{id}", handler.UpdateTimeSlot)
			admin.Delete("/{id}", handler.DeleteTimeSlot)
		})
	})
}

// CreateTimeSlot handles the creation of a new time slot.
func (handler *Handler) CreateTimeSlot(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTimeSlot")
	defer scope.End()

	req := dto.CreateTimeSlotRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create time slot")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusCreated, "Time slot created successfully")
}

// GetTimeSlots retrieves all time slots based on query parameters.
func (handler *Handler) GetTimeSlots(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTimeSlots")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldLabel,
				Operator: gDto.FilterOperatorLike,
				Value:    request.URL.Query().Get(model.FieldLabel),
				Table:    model.TableName,
			},
		},
	}

	if active := shared.ConvertStringToBool(request.URL.Query().Get(model.FieldActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	timeSlots, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get time slots")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, timeSlots)
}

// GetTimeSlotByID retrieves a time slot by its ID.
func (handler *Handler) GetTimeSlotByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTimeSlotByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	timeSlot, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get time slot by ID")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, timeSlot)
}

// UpdateTimeSlot updates an existing time slot by its ID.
func (handler *Handler) UpdateTimeSlot(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTimeSlot")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.UpdateTimeSlotRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update time slot")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Time slot updated successfully")
}

// DeleteTimeSlot deletes a time slot by its ID. Existing bookings keep the
// slot label by value and are untouched.
func (handler *Handler) DeleteTimeSlot(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTimeSlot")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete time slot")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Time slot deleted successfully")
}
