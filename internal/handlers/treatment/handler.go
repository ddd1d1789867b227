package treatment

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"serenity/infras/otel"
	"serenity/internal/domains/treatment/model"
	"serenity/internal/domains/treatment/model/dto"
	"serenity/internal/domains/treatment/service"
	"serenity/shared"
	"serenity/shared/constant"
	gDto "serenity/shared/dto"
	"serenity/shared/validator"
	"serenity/transport/http/middleware"
	"serenity/transport/http/response"
)

type Handler struct {
	service service.Treatment
	auth    middleware.Auth
	otel    otel.Otel
}

func New(service service.Treatment, auth middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		auth:    auth,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/treatments", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetTreatments)
		routerGroup.Get("/{id}", handler.GetTreatmentByID)

		routerGroup.Group(func(admin chi.Router) {
			admin.Use(handler.auth.Auth)
			admin.Use(handler.auth.RequireRole(constant.RoleAdmin, constant.RoleSuperAdmin))

			admin.Post("/", handler.CreateTreatment)
			admin.Patch("/{id}", handler.UpdateTreatment)
			admin.Delete("/{id}", handler.DeleteTreatment)
		})
	})
}

// CreateTreatment handles the creation of a new treatment.
func (handler *Handler) CreateTreatment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTreatment")
	defer scope.End()

	req := dto.CreateTreatmentRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create treatment")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusCreated, "Treatment created successfully")
}

// GetTreatments retrieves all treatments based on query parameters.
func (handler *Handler) GetTreatments(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTreatments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldName,
				Operator: gDto.FilterOperatorLike,
				Value:    request.URL.Query().Get(model.FieldName),
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

	treatments, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get treatments")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, treatments)
}

// GetTreatmentByID retrieves a treatment by its ID.
func (handler *Handler) GetTreatmentByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTreatmentByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	treatment, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get treatment by ID")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, treatment)
}

// UpdateTreatment updates an existing treatment by its ID.
func (handler *Handler) UpdateTreatment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTreatment")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.UpdateTreatmentRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update treatment")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Treatment updated successfully")
}

// DeleteTreatment deletes a treatment by its ID.
func (handler *Handler) DeleteTreatment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTreatment")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete treatment")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Treatment deleted successfully")
}
