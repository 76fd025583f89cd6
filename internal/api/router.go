package api

import (
	_ "countrycache/docs"
	"countrycache/internal/country/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(countryHandler *handler.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	router.Post("/countries/refresh", countryHandler.Refresh)
	router.Get("/countries", countryHandler.List)
	// registered before {name} so "image" is never treated as a country
	router.Get("/countries/image", countryHandler.SummaryImage)
	router.Get("/countries/{name}", countryHandler.GetByName)
	router.Delete("/countries/{name}", countryHandler.DeleteByName)
	router.Get("/status", countryHandler.Status)
	return router
}
