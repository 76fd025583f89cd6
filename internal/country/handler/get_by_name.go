package handler

import (
	"countrycache/internal/domain"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
)

// GetByName godoc
// @Summary Get country by name
// @Description Case-insensitive lookup of one cached country
// @Tags Countries
// @Produce json
// @Param name path string true "Country name"
// @Success 200 {object} CountryResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /countries/{name} [get]
func (h *Handler) GetByName(w http.ResponseWriter, r *http.Request) {
	name := nameParam(r)
	if name == "" {
		writeNameRequired(w)
		return
	}

	country, err := h.service.GetByName(r.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrCountryNotFound) {
			writeError(w, http.StatusNotFound, msgCountryNotFound)
			return
		}
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetByName", "name": name}).Error("get failed")
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	writeJSON(w, http.StatusOK, toCountryResponse(country))
}
