package handler

import (
	"countrycache/internal/domain"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
)

// DeleteByName godoc
// @Summary Delete country by name
// @Tags Countries
// @Produce json
// @Param name path string true "Country name"
// @Success 200 {object} okResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /countries/{name} [delete]
func (h *Handler) DeleteByName(w http.ResponseWriter, r *http.Request) {
	name := nameParam(r)
	if name == "" {
		writeNameRequired(w)
		return
	}

	if err := h.service.DeleteByName(r.Context(), name); err != nil {
		if errors.Is(err, domain.ErrCountryNotFound) {
			writeError(w, http.StatusNotFound, msgCountryNotFound)
			return
		}
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "DeleteByName", "name": name}).Error("delete failed")
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	writeJSON(w, http.StatusOK, okResponse{OK: true})
}
