package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

type StatusResponse struct {
	TotalCountries  int64   `json:"total_countries" example:"250"`
	LastRefreshedAt *string `json:"last_refreshed_at" example:"2025-10-22T18:00:00.000Z"`
}

// Status godoc
// @Summary Cache status
// @Tags Status
// @Produce json
// @Success 200 {object} StatusResponse
// @Failure 500 {object} errorResponse
// @Router /status [get]
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	st, err := h.service.Status(r.Context())
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "Status"}).Error("status failed")
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{
		TotalCountries:  st.TotalCountries,
		LastRefreshedAt: st.LastRefreshedAt,
	})
}
