package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"countrycache/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct{ mock.Mock }

func (m *MockService) Refresh(ctx context.Context) (time.Time, error) {
	args := m.Called(ctx)
	ts, _ := args.Get(0).(time.Time)
	return ts, args.Error(1)
}

func (m *MockService) List(ctx context.Context, filter domain.ListFilter) ([]domain.Country, error) {
	args := m.Called(ctx, filter)
	countries, _ := args.Get(0).([]domain.Country)
	return countries, args.Error(1)
}

func (m *MockService) GetByName(ctx context.Context, name string) (domain.Country, error) {
	args := m.Called(ctx, name)
	c, _ := args.Get(0).(domain.Country)
	return c, args.Error(1)
}

func (m *MockService) DeleteByName(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockService) Status(ctx context.Context) (domain.Status, error) {
	args := m.Called(ctx)
	st, _ := args.Get(0).(domain.Status)
	return st, args.Error(1)
}

func (m *MockService) SummaryImage(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

type errorJSON struct {
	Error   string          `json:"error"`
	Details json.RawMessage `json:"details"`
	Source  string          `json:"source"`
}

func ptr[T any](v T) *T { return &v }

func withName(req *http.Request, name string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("name", name)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) errorJSON {
	t.Helper()
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	return ej
}

// --- Refresh ---

func TestHandler_Refresh_Success(t *testing.T) {
	mockService := new(MockService)
	h := NewCountryHandler(mockService)
	ts := time.Date(2025, 10, 22, 18, 0, 0, 123_000_000, time.UTC)

	mockService.On("Refresh", mock.Anything).Return(ts, nil).Once()

	rr := httptest.NewRecorder()
	h.Refresh(rr, httptest.NewRequest(http.MethodPost, "/countries/refresh", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var got RefreshResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.True(t, got.OK)
	require.Equal(t, "2025-10-22T18:00:00.123Z", got.TotalRefreshedAt)
}

func TestHandler_Refresh_UpstreamErrors(t *testing.T) {
	cases := []struct {
		name        string
		err         error
		wantDetails string
		wantSource  string
	}{
		{
			name:        "countries unavailable",
			err:         &domain.UpstreamError{Source: domain.SourceCountries, Err: context.DeadlineExceeded},
			wantDetails: "Could not fetch data from countries API",
			wantSource:  "countries",
		},
		{
			name:        "countries invalid",
			err:         &domain.UpstreamError{Source: domain.SourceCountries, Err: domain.ErrUpstreamInvalidShape},
			wantDetails: "Invalid response from countries API",
			wantSource:  "countries",
		},
		{
			name:        "rates unavailable",
			err:         &domain.UpstreamError{Source: domain.SourceExchangeRates, Err: domain.ErrUpstreamUnavailable},
			wantDetails: "Could not fetch data from exchange rates API",
			wantSource:  "exchange-rates",
		},
		{
			name:        "rates invalid",
			err:         &domain.UpstreamError{Source: domain.SourceExchangeRates, Err: domain.ErrUpstreamInvalidShape},
			wantDetails: "Invalid response from exchange rates API",
			wantSource:  "exchange-rates",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockService := new(MockService)
			h := NewCountryHandler(mockService)
			mockService.On("Refresh", mock.Anything).Return(time.Time{}, tc.err).Once()

			rr := httptest.NewRecorder()
			h.Refresh(rr, httptest.NewRequest(http.MethodPost, "/countries/refresh", nil))

			require.Equal(t, http.StatusServiceUnavailable, rr.Code)
			ej := decodeError(t, rr)
			require.Equal(t, "External data source unavailable", ej.Error)
			require.JSONEq(t, `"`+tc.wantDetails+`"`, string(ej.Details))
			require.Equal(t, tc.wantSource, ej.Source)
		})
	}
}

func TestHandler_Refresh_PersistenceFailure(t *testing.T) {
	mockService := new(MockService)
	h := NewCountryHandler(mockService)
	mockService.On("Refresh", mock.Anything).Return(time.Time{}, domain.ErrPersistence).Once()

	rr := httptest.NewRecorder()
	h.Refresh(rr, httptest.NewRequest(http.MethodPost, "/countries/refresh", nil))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Equal(t, "Internal server error", decodeError(t, rr).Error)
}

// --- List ---

func TestHandler_List_PassesFiltersAndSort(t *testing.T) {
	mockService := new(MockService)
	h := NewCountryHandler(mockService)
	ts := time.Date(2025, 10, 22, 18, 0, 0, 0, time.UTC)

	mockService.On("List", mock.Anything, domain.ListFilter{Region: "Africa", Currency: "NGN", Sort: domain.SortGDPDesc}).
		Return([]domain.Country{{
			ID: 7, Name: "Nigeria", Capital: ptr("Abuja"), Region: ptr("Africa"), Population: 206139589,
			CurrencyCode: ptr("NGN"), ExchangeRate: ptr(1600.23), EstimatedGDP: ptr(25767448125.2),
			FlagURL: ptr("https://flagcdn.com/ng.svg"), LastRefreshedAt: &ts,
		}}, nil).Once()

	rr := httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/countries?region=Africa&currency=NGN&sort=gdp_desc", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `[{
		"id": 7, "name": "Nigeria", "capital": "Abuja", "region": "Africa", "population": 206139589,
		"currency_code": "NGN", "exchange_rate": 1600.23, "estimated_gdp": 25767448125.2,
		"flag_url": "https://flagcdn.com/ng.svg", "last_refreshed_at": "2025-10-22T18:00:00Z"
	}]`, rr.Body.String())
	mockService.AssertExpectations(t)
}

func TestHandler_List_NullsAndUnknownSort(t *testing.T) {
	mockService := new(MockService)
	h := NewCountryHandler(mockService)

	mockService.On("List", mock.Anything, domain.ListFilter{}).
		Return([]domain.Country{{ID: 1, Name: "Aland", Population: 1000, CurrencyCode: ptr("XYZ")}}, nil).Once()

	rr := httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/countries?sort=name", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `[{
		"id": 1, "name": "Aland", "capital": null, "region": null, "population": 1000,
		"currency_code": "XYZ", "exchange_rate": null, "estimated_gdp": null,
		"flag_url": null, "last_refreshed_at": null
	}]`, rr.Body.String())
}

func TestHandler_List_EmptyIsArray(t *testing.T) {
	mockService := new(MockService)
	h := NewCountryHandler(mockService)
	mockService.On("List", mock.Anything, domain.ListFilter{}).Return(nil, nil).Once()

	rr := httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/countries", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `[]`, rr.Body.String())
}

func TestHandler_List_Error(t *testing.T) {
	mockService := new(MockService)
	h := NewCountryHandler(mockService)
	mockService.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("db")).Once()

	rr := httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/countries", nil))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
}

// --- GetByName ---

func TestHandler_GetByName_Success(t *testing.T) {
	mockService := new(MockService)
	h := NewCountryHandler(mockService)
	mockService.On("GetByName", mock.Anything, "Cote d'Ivoire").
		Return(domain.Country{ID: 3, Name: "Côte d'Ivoire", Population: 26}, nil).Once()

	rr := httptest.NewRecorder()
	h.GetByName(rr, withName(httptest.NewRequest(http.MethodGet, "/countries/x", nil), "Cote%20d'Ivoire"))

	require.Equal(t, http.StatusOK, rr.Code)
	var got CountryResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Equal(t, "Côte d'Ivoire", got.Name)
	mockService.AssertExpectations(t)
}

func TestHandler_GetByName_NotFound(t *testing.T) {
	mockService := new(MockService)
	h := NewCountryHandler(mockService)
	mockService.On("GetByName", mock.Anything, "Nowhere").Return(domain.Country{}, domain.ErrCountryNotFound).Once()

	rr := httptest.NewRecorder()
	h.GetByName(rr, withName(httptest.NewRequest(http.MethodGet, "/countries/Nowhere", nil), "Nowhere"))

	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "Country not found", decodeError(t, rr).Error)
}

func TestHandler_GetByName_EmptyName(t *testing.T) {
	mockService := new(MockService)
	h := NewCountryHandler(mockService)

	rr := httptest.NewRecorder()
	h.GetByName(rr, withName(httptest.NewRequest(http.MethodGet, "/countries/", nil), "  "))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	ej := decodeError(t, rr)
	require.Equal(t, "Validation failed", ej.Error)
	require.JSONEq(t, `{"name": "is required"}`, string(ej.Details))
	mockService.AssertNotCalled(t, "GetByName", mock.Anything, mock.Anything)
}

func TestHandler_GetByName_InternalError(t *testing.T) {
	mockService := new(MockService)
	h := NewCountryHandler(mockService)
	mockService.On("GetByName", mock.Anything, "Nigeria").Return(domain.Country{}, errors.New("db")).Once()

	rr := httptest.NewRecorder()
	h.GetByName(rr, withName(httptest.NewRequest(http.MethodGet, "/countries/Nigeria", nil), "Nigeria"))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
}

// --- DeleteByName ---

func TestHandler_DeleteByName_Success(t *testing.T) {
	mockService := new(MockService)
	h := NewCountryHandler(mockService)
	mockService.On("DeleteByName", mock.Anything, "nigeria").Return(nil).Once()

	rr := httptest.NewRecorder()
	h.DeleteByName(rr, withName(httptest.NewRequest(http.MethodDelete, "/countries/nigeria", nil), "nigeria"))

	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"ok": true}`, rr.Body.String())
}

func TestHandler_DeleteByName_NotFound(t *testing.T) {
	mockService := new(MockService)
	h := NewCountryHandler(mockService)
	mockService.On("DeleteByName", mock.Anything, "Nowhere").Return(domain.ErrCountryNotFound).Once()

	rr := httptest.NewRecorder()
	h.DeleteByName(rr, withName(httptest.NewRequest(http.MethodDelete, "/countries/Nowhere", nil), "Nowhere"))

	require.Equal(t, http.StatusNotFound, rr.Code)
	require.JSONEq(t, `{"error": "Country not found"}`, rr.Body.String())
}

func TestHandler_DeleteByName_EmptyName(t *testing.T) {
	mockService := new(MockService)
	h := NewCountryHandler(mockService)

	rr := httptest.NewRecorder()
	h.DeleteByName(rr, withName(httptest.NewRequest(http.MethodDelete, "/countries/", nil), ""))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	mockService.AssertNotCalled(t, "DeleteByName", mock.Anything, mock.Anything)
}

// --- Status ---

func TestHandler_Status(t *testing.T) {
	mockService := new(MockService)
	h := NewCountryHandler(mockService)
	mockService.On("Status", mock.Anything).
		Return(domain.Status{TotalCountries: 250, LastRefreshedAt: ptr("2025-10-22T18:00:00.123Z")}, nil).Once()

	rr := httptest.NewRecorder()
	h.Status(rr, httptest.NewRequest(http.MethodGet, "/status", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"total_countries": 250, "last_refreshed_at": "2025-10-22T18:00:00.123Z"}`, rr.Body.String())
}

func TestHandler_Status_NeverRefreshed(t *testing.T) {
	mockService := new(MockService)
	h := NewCountryHandler(mockService)
	mockService.On("Status", mock.Anything).Return(domain.Status{}, nil).Once()

	rr := httptest.NewRecorder()
	h.Status(rr, httptest.NewRequest(http.MethodGet, "/status", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"total_countries": 0, "last_refreshed_at": null}`, rr.Body.String())
}

// --- SummaryImage ---

func TestHandler_SummaryImage(t *testing.T) {
	mockService := new(MockService)
	h := NewCountryHandler(mockService)
	mockService.On("SummaryImage", mock.Anything).Return([]byte("\x89PNG"), nil).Once()

	rr := httptest.NewRecorder()
	h.SummaryImage(rr, httptest.NewRequest(http.MethodGet, "/countries/image", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	require.Equal(t, []byte("\x89PNG"), rr.Body.Bytes())
}

func TestHandler_SummaryImage_Error(t *testing.T) {
	mockService := new(MockService)
	h := NewCountryHandler(mockService)
	mockService.On("SummaryImage", mock.Anything).Return(nil, errors.New("render")).Once()

	rr := httptest.NewRecorder()
	h.SummaryImage(rr, httptest.NewRequest(http.MethodGet, "/countries/image", nil))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
}
