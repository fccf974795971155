package routers

import (
	"legaldraft/drafter/internal/handlers"
	"legaldraft/drafter/internal/middleware"
	"legaldraft/drafter/internal/models"

	"github.com/go-chi/chi/v5"
)

func ConsoleRoutes(router *chi.Mux, consoleHandler *handlers.ConsoleHandler) {
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/state", consoleHandler.StateHandler)
		r.With(middleware.ValidateRequest[*models.PromptRequest]()).Put("/prompt", consoleHandler.PromptHandler)
		r.With(middleware.ValidateRequest[*models.PromptRequest]()).Post("/submit", consoleHandler.SubmitHandler)
		r.Get("/document", consoleHandler.DocumentHandler)
		r.Get("/templates", consoleHandler.TemplatesHandler)
		r.Get("/service", consoleHandler.ServiceHandler)
	})
}
