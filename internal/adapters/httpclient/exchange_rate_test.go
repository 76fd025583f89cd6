package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"countrycache/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestExchangeRateClient_Success(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
            "result": "success",
            "base_code": "USD",
            "rates": {"EUR": 0.92, "NGN": 1600.5}
        }`))
	}))
	t.Cleanup(srv.Close)

	c := NewExchangeRateClient(srv.Client(), srv.URL+"/v6/latest/USD")

	ratesMap, err := c.GetExchangeRates(context.Background())
	require.NoError(t, err)
	require.Equal(t, "/v6/latest/USD", gotPath)
	require.Len(t, ratesMap, 2)
	require.InDelta(t, 0.92, ratesMap["EUR"], 1e-9)
	require.InDelta(t, 1600.5, ratesMap["NGN"], 1e-9)
}

func TestExchangeRateClient_StatusCodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	c := NewExchangeRateClient(srv.Client(), srv.URL+"/latest")

	_, err := c.GetExchangeRates(context.Background())
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	require.Contains(t, err.Error(), "unexpected status code 503")
}

func TestExchangeRateClient_MissingRatesField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result": "error", "error-type": "unknown-code"}`))
	}))
	t.Cleanup(srv.Close)

	c := NewExchangeRateClient(srv.Client(), srv.URL+"/latest")

	_, err := c.GetExchangeRates(context.Background())
	require.ErrorIs(t, err, domain.ErrUpstreamInvalidShape)
	require.NotErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestExchangeRateClient_JSONDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("{")) // invalid JSON
	}))
	t.Cleanup(srv.Close)

	c := NewExchangeRateClient(srv.Client(), srv.URL+"/latest")

	_, err := c.GetExchangeRates(context.Background())
	require.ErrorIs(t, err, domain.ErrUpstreamInvalidShape)
	require.Contains(t, err.Error(), "failed to decode exchange rates response")
}

func TestExchangeRateClient_BadURL(t *testing.T) {
	c := NewExchangeRateClient(&http.Client{}, "http://::1]")
	_, err := c.GetExchangeRates(context.Background())
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	require.Contains(t, err.Error(), "failed to create request")
}

func TestExchangeRateClient_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"rates": {}}`))
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewExchangeRateClient(srv.Client(), srv.URL)
	_, err := c.GetExchangeRates(ctx)
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	require.ErrorIs(t, err, context.Canceled)
}
