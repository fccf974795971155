package routers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// WebRoutes mounts the console page; API routes must be registered first
func WebRoutes(router *chi.Mux, page http.Handler) {
	router.Handle("/*", page)
}
