package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robertarktes/visa-appointments/internal/observability"
)

func SetupRouter(h *Handlers, logger observability.Logger, rl Limiter) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(LoggerMiddleware(logger))
	r.Use(TracingMiddleware)
	r.Use(MetricsMiddleware)

	r.Get("/v1/healthz", h.Healthz)
	r.Get("/v1/readyz", h.Readyz)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Group(func(r chi.Router) {
		r.Use(RateLimitMiddleware(rl))

		r.Get("/v1/slots/dates", h.AvailableDates)
		r.Get("/v1/slots", h.SlotsForDate)

		r.Post("/v1/wizard", h.CreateWizard)
		r.Route("/v1/wizard/{id}", func(r chi.Router) {
			r.Get("/", h.GetWizard)
			r.Patch("/fields", h.UpdateFields)
			r.Put("/attachments/{kind}", h.PutAttachment)
			r.Delete("/attachments/{kind}", h.DeleteAttachment)
			r.Post("/selection", h.SelectSlot)
			r.Post("/next", h.Next)
			r.Post("/back", h.Back)
			r.Post("/confirm", h.Confirm)
		})

		r.Get("/v1/confirmation/{ref}", h.ConfirmationReturn)
	})

	return r
}
