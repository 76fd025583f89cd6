package httpclient

import (
	"context"
	"countrycache/internal/domain"
	"encoding/json"
	"fmt"
	"math"
	"net/http"

	"github.com/sirupsen/logrus"
)

type CountryClient struct {
	http *http.Client
	url  string
}

type countryItem struct {
	Name       string          `json:"name"`
	Capital    string          `json:"capital"`
	Region     string          `json:"region"`
	Population json.RawMessage `json:"population"`
	Flag       string          `json:"flag"`
	Currencies []currencyItem  `json:"currencies"`
}

type currencyItem struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// GetCountries returns the raw descriptors of the countries feed in feed order.
// A body that is not a JSON array is ErrUpstreamInvalidShape. Single entries that
// cannot be decoded are returned empty so that the caller drops them.
func (c *CountryClient) GetCountries(ctx context.Context) ([]domain.CountryDescriptor, error) {
	resp, err := get(ctx, c.http, c.url)
	if err != nil {
		return nil, fmt.Errorf("countries: %w", err)
	}
	defer resp.Body.Close()

	var items []json.RawMessage
	if err = json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: failed to decode countries response: %w", domain.ErrUpstreamInvalidShape, err)
	}
	if items == nil {
		return nil, fmt.Errorf("%w: countries response is not an array", domain.ErrUpstreamInvalidShape)
	}

	descriptors := make([]domain.CountryDescriptor, 0, len(items))
	for i, raw := range items {
		var item countryItem
		if err = json.Unmarshal(raw, &item); err != nil {
			logrus.Debugf("Countries entry %d is malformed: %v", i, err)
			descriptors = append(descriptors, domain.CountryDescriptor{})
			continue
		}
		descriptors = append(descriptors, item.toDescriptor())
	}
	return descriptors, nil
}

func (item countryItem) toDescriptor() domain.CountryDescriptor {
	d := domain.CountryDescriptor{
		Name:       item.Name,
		Capital:    item.Capital,
		Region:     item.Region,
		Population: parsePopulation(item.Population),
		Flag:       item.Flag,
		Currencies: make([]domain.CurrencyDescriptor, 0, len(item.Currencies)),
	}
	for _, cur := range item.Currencies {
		d.Currencies = append(d.Currencies, domain.CurrencyDescriptor{Code: cur.Code, Name: cur.Name})
	}
	return d
}

// parsePopulation accepts only finite, non-negative JSON numbers.
func parsePopulation(raw json.RawMessage) *int64 {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > math.MaxInt64 {
		return nil
	}
	p := int64(v)
	return &p
}

func NewCountryClient(httpClient *http.Client, url string) *CountryClient {
	return &CountryClient{http: httpClient, url: url}
}
