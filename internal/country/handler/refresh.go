package handler

import (
	"countrycache/internal/domain"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
)

type RefreshResponse struct {
	OK               bool   `json:"ok" example:"true"`
	TotalRefreshedAt string `json:"total_refreshed_at" example:"2025-10-22T18:00:00.000Z"`
}

// Refresh godoc
// @Summary Refresh countries
// @Description Fetch countries and exchange rates, recompute estimated GDP and upsert every country
// @Tags Countries
// @Produce json
// @Success 200 {object} RefreshResponse
// @Failure 503 {object} errorResponse "external data source unavailable"
// @Failure 500 {object} errorResponse
// @Router /countries/refresh [post]
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshedAt, err := h.service.Refresh(r.Context())
	if err != nil {
		var upstreamErr *domain.UpstreamError
		if errors.As(err, &upstreamErr) {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{
				Error:   "External data source unavailable",
				Details: upstreamDetails(upstreamErr),
				Source:  upstreamErr.Source,
			})
			return
		}
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "Refresh"}).Error("refresh failed")
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	writeJSON(w, http.StatusOK, RefreshResponse{
		OK:               true,
		TotalRefreshedAt: domain.FormatTimestamp(refreshedAt),
	})
}

func upstreamDetails(err *domain.UpstreamError) string {
	api := "countries API"
	if err.Source == domain.SourceExchangeRates {
		api = "exchange rates API"
	}
	if err.InvalidShape() {
		return "Invalid response from " + api
	}
	return "Could not fetch data from " + api
}
