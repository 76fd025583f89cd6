package country

import (
	"countrycache/internal/domain"
	"time"
)

// mergeCountry joins one feed descriptor with its exchange rate. The second return
// value is false when the descriptor lacks a name or a numeric population.
func mergeCountry(d domain.CountryDescriptor, rates map[string]float64, refreshedAt time.Time, multiplier Multiplier) (domain.Country, bool) {
	c := domain.Country{
		Name:            d.Name,
		Capital:         optional(d.Capital),
		Region:          optional(d.Region),
		FlagURL:         optional(d.Flag),
		LastRefreshedAt: &refreshedAt,
	}

	code, hasCurrency := d.FirstCurrencyCode()
	if hasCurrency {
		c.CurrencyCode = &code
		if rate, ok := rates[code]; ok {
			c.ExchangeRate = &rate
		}
	}
	c.EstimatedGDP = EstimateGDP(d.Population, hasCurrency, c.ExchangeRate, multiplier)

	if d.Name == "" || d.Population == nil {
		return domain.Country{}, false
	}
	c.Population = *d.Population
	return c, true
}

// mergeCountries keeps feed order and drops invalid descriptors.
func mergeCountries(descriptors []domain.CountryDescriptor, rates map[string]float64, refreshedAt time.Time, multiplier Multiplier) ([]domain.Country, int) {
	countries := make([]domain.Country, 0, len(descriptors))
	skipped := 0
	for _, d := range descriptors {
		c, ok := mergeCountry(d, rates, refreshedAt, multiplier)
		if !ok {
			skipped++
			continue
		}
		countries = append(countries, c)
	}
	return countries, skipped
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
