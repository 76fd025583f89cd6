package handler

import (
	"context"
	"countrycache/internal/domain"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

type Service interface {
	Refresh(ctx context.Context) (time.Time, error)
	List(ctx context.Context, filter domain.ListFilter) ([]domain.Country, error)
	GetByName(ctx context.Context, name string) (domain.Country, error)
	DeleteByName(ctx context.Context, name string) error
	Status(ctx context.Context) (domain.Status, error)
	SummaryImage(ctx context.Context) ([]byte, error)
}

type Handler struct {
	service Service
}

func NewCountryHandler(service Service) *Handler {
	return &Handler{service: service}
}

type CountryResponse struct {
	ID              int64      `json:"id" example:"1"`
	Name            string     `json:"name" example:"Nigeria"`
	Capital         *string    `json:"capital" example:"Abuja"`
	Region          *string    `json:"region" example:"Africa"`
	Population      int64      `json:"population" example:"206139589"`
	CurrencyCode    *string    `json:"currency_code" example:"NGN"`
	ExchangeRate    *float64   `json:"exchange_rate" example:"1600.23"`
	EstimatedGDP    *float64   `json:"estimated_gdp" example:"25767448125.2"`
	FlagURL         *string    `json:"flag_url" example:"https://flagcdn.com/ng.svg"`
	LastRefreshedAt *time.Time `json:"last_refreshed_at" example:"2025-10-22T18:00:00Z"`
}

func toCountryResponse(c domain.Country) CountryResponse {
	return CountryResponse{
		ID:              c.ID,
		Name:            c.Name,
		Capital:         c.Capital,
		Region:          c.Region,
		Population:      c.Population,
		CurrencyCode:    c.CurrencyCode,
		ExchangeRate:    c.ExchangeRate,
		EstimatedGDP:    c.EstimatedGDP,
		FlagURL:         c.FlagURL,
		LastRefreshedAt: c.LastRefreshedAt,
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
	Source  string `json:"source,omitempty"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

const (
	msgCountryNotFound  = "Country not found"
	msgValidationFailed = "Validation failed"
	msgInternal         = "Internal server error"
)

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeJSON(w, statusCode, errorResponse{Error: errorMsg})
}

func writeNameRequired(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Error:   msgValidationFailed,
		Details: map[string]string{"name": "is required"},
	})
}

// nameParam returns the decoded {name} path segment, trimmed.
func nameParam(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	return strings.TrimSpace(raw)
}
