package handler

import (
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
)

// SummaryImage godoc
// @Summary Summary image
// @Description Regenerate and return the PNG summary of the top countries by estimated GDP
// @Tags Countries
// @Produce png
// @Success 200 {file} binary
// @Failure 500 {object} errorResponse
// @Router /countries/image [get]
func (h *Handler) SummaryImage(w http.ResponseWriter, r *http.Request) {
	img, err := h.service.SummaryImage(r.Context())
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "SummaryImage"}).Error("summary image failed")
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(img)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img)
}
