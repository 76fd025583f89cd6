package handler

import (
	"countrycache/internal/domain"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

// List godoc
// @Summary List countries
// @Description List cached countries, optionally filtered by region and currency and sorted by estimated GDP
// @Tags Countries
// @Produce json
// @Param region query string false "Region, e.g. Africa"
// @Param currency query string false "Currency code, e.g. NGN"
// @Param sort query string false "gdp_desc"
// @Success 200 {array} CountryResponse
// @Failure 500 {object} errorResponse
// @Router /countries [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := domain.ListFilter{
		Region:   strings.TrimSpace(query.Get("region")),
		Currency: strings.TrimSpace(query.Get("currency")),
	}
	if query.Get("sort") == string(domain.SortGDPDesc) {
		filter.Sort = domain.SortGDPDesc
	}

	countries, err := h.service.List(r.Context(), filter)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "List", "region": filter.Region, "currency": filter.Currency}).Error("list failed")
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	res := make([]CountryResponse, 0, len(countries))
	for _, c := range countries {
		res = append(res, toCountryResponse(c))
	}
	writeJSON(w, http.StatusOK, res)
}
