package blockeddate

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"serenity/infras/otel"
	"serenity/internal/domains/blockeddate/model"
	"serenity/internal/domains/blockeddate/model/dto"
	"serenity/internal/domains/blockeddate/service"
	"serenity/shared/constant"
	gDto "serenity/shared/dto"
	"serenity/shared/validator"
	"serenity/transport/http/middleware"
	"serenity/transport/http/response"
)

type Handler struct {
	service service.BlockedDate
	auth    middleware.Auth
	otel    otel.Otel
}

func New(service service.BlockedDate, auth middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		auth:    auth,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/blocked-dates", func(routerGroup chi.Router) {
		routerGroup.Use(handler.auth.Auth)
		routerGroup.Use(handler.auth.RequireRole(constant.RoleAdmin, constant.RoleSuperAdmin))

		routerGroup.Post("/", handler.CreateBlockedDate)
		routerGroup.Get("/", handler.GetBlockedDates)
		routerGroup.Delete("/{id}", handler.DeleteBlockedDate)
	})
}

// CreateBlockedDate removes a date from booking entirely.
func (handler *Handler) CreateBlockedDate(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBlockedDate")
	defer scope.End()

	req := dto.CreateBlockedDateRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create blocked date")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusCreated, "Blocked date created successfully")
}

// GetBlockedDates retrieves all blocked dates based on query parameters.
func (handler *Handler) GetBlockedDates(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBlockedDates")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldReason,
				Operator: gDto.FilterOperatorLike,
				Value:    request.URL.Query().Get(model.FieldReason),
				Table:    model.TableName,
			},
		},
	}

	blockedDates, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get blocked dates")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, blockedDates)
}

// DeleteBlockedDate re-opens a previously blocked date.
func (handler *Handler) DeleteBlockedDate(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBlockedDate")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete blocked date")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Blocked date deleted successfully")
}
