package router

import (
	"github.com/go-chi/chi/v5"

	"serenity/internal/handlers/blockeddate"
	"serenity/internal/handlers/booking"
	"serenity/internal/handlers/health"
	"serenity/internal/handlers/schedule"
	"serenity/internal/handlers/timeslot"
	"serenity/internal/handlers/treatment"
)

type DomainHandlers struct {
	Health      health.Handler
	Schedule    schedule.Handler
	Booking     booking.Handler
	Treatment   treatment.Handler
	TimeSlot    timeslot.Handler
	BlockedDate blockeddate.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	r.DomainHandlers.Health.Router(router)

	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Schedule.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Treatment.Router(routerGroup)
		r.DomainHandlers.TimeSlot.Router(routerGroup)
		r.DomainHandlers.BlockedDate.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
