package country

import "math/rand/v2"

const (
	minMultiplier = 1000
	maxMultiplier = 2000
)

// Multiplier yields the GDP multiplier for one country in one refresh cycle.
type Multiplier func() int

// RandomMultiplier draws uniformly from [1000, 2000]. The package level generator is
// randomly seeded and safe for concurrent use.
func RandomMultiplier() int {
	return minMultiplier + rand.IntN(maxMultiplier-minMultiplier+1)
}

// EstimateGDP returns population * multiplier / rate.
//
// A country without a currency gets exactly 0. A currency missing from the rate
// mapping, an unknown population or a zero rate yields nil (unknown).
func EstimateGDP(population *int64, currencyPresent bool, rate *float64, multiplier Multiplier) *float64 {
	if !currencyPresent {
		zero := 0.0
		return &zero
	}
	if rate == nil || population == nil || *rate == 0 {
		return nil
	}
	gdp := float64(*population) * float64(multiplier()) / *rate
	return &gdp
}
