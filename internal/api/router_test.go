package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"countrycache/internal/country/handler"
	"countrycache/internal/domain"

	"github.com/stretchr/testify/require"
)

type stubService struct {
	gotName string
	image   bool
}

func (s *stubService) Refresh(context.Context) (time.Time, error) {
	return time.Date(2025, 10, 22, 18, 0, 0, 0, time.UTC), nil
}

func (s *stubService) List(context.Context, domain.ListFilter) ([]domain.Country, error) {
	return nil, nil
}

func (s *stubService) GetByName(_ context.Context, name string) (domain.Country, error) {
	s.gotName = name
	return domain.Country{ID: 1, Name: name}, nil
}

func (s *stubService) DeleteByName(_ context.Context, name string) error {
	s.gotName = name
	return domain.ErrCountryNotFound
}

func (s *stubService) Status(context.Context) (domain.Status, error) {
	return domain.Status{}, nil
}

func (s *stubService) SummaryImage(context.Context) ([]byte, error) {
	s.image = true
	return []byte("png"), nil
}

func TestRouter_Routes(t *testing.T) {
	svc := &stubService{}
	router := NewRouter(handler.NewCountryHandler(svc))

	cases := []struct {
		method string
		path   string
		code   int
	}{
		{http.MethodPost, "/countries/refresh", http.StatusOK},
		{http.MethodGet, "/countries", http.StatusOK},
		{http.MethodGet, "/status", http.StatusOK},
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodDelete, "/countries/Nowhere", http.StatusNotFound},
		{http.MethodGet, "/unknown", http.StatusNotFound},
		{http.MethodPut, "/countries", http.StatusMethodNotAllowed},
	}
	for _, tc := range cases {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))
		require.Equal(t, tc.code, rr.Code, "%s %s", tc.method, tc.path)
	}
}

func TestRouter_ImageIsNotACountryName(t *testing.T) {
	svc := &stubService{}
	router := NewRouter(handler.NewCountryHandler(svc))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/countries/image", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, svc.image)
	require.Empty(t, svc.gotName)
}

func TestRouter_NamePathIsDecoded(t *testing.T) {
	svc := &stubService{}
	router := NewRouter(handler.NewCountryHandler(svc))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/countries/United%20States", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "United States", svc.gotName)
}
