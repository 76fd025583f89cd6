package httpclient

import (
	"context"
	"countrycache/internal/domain"
	"encoding/json"
	"fmt"
	"net/http"
)

type ExchangeRateClient struct {
	http *http.Client
	url  string
}

type ratesResponse struct {
	Result   string             `json:"result"`
	BaseCode string             `json:"base_code"`
	Rates    map[string]float64 `json:"rates"`
}

// GetExchangeRates returns the currency code -> rate mapping of the configured feed.
func (c *ExchangeRateClient) GetExchangeRates(ctx context.Context) (map[string]float64, error) {
	resp, err := get(ctx, c.http, c.url)
	if err != nil {
		return nil, fmt.Errorf("exchange rates: %w", err)
	}
	defer resp.Body.Close()

	var body ratesResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: failed to decode exchange rates response: %w", domain.ErrUpstreamInvalidShape, err)
	}
	if body.Rates == nil {
		return nil, fmt.Errorf("%w: exchange rates response has no rates field", domain.ErrUpstreamInvalidShape)
	}
	return body.Rates, nil
}

func NewExchangeRateClient(httpClient *http.Client, url string) *ExchangeRateClient {
	return &ExchangeRateClient{http: httpClient, url: url}
}
