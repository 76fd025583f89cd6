package domain

import "time"

// Country is a persisted country row. Nil pointers are NULL columns.
type Country struct {
	ID              int64
	Name            string
	Capital         *string
	Region          *string
	Population      int64
	CurrencyCode    *string
	ExchangeRate    *float64
	EstimatedGDP    *float64
	FlagURL         *string
	LastRefreshedAt *time.Time
}

// CountryDescriptor is a raw entry of the countries feed.
// Population is nil when the feed value is absent or not a number.
type CountryDescriptor struct {
	Name       string
	Capital    string
	Region     string
	Population *int64
	Flag       string
	Currencies []CurrencyDescriptor
}

type CurrencyDescriptor struct {
	Code string
	Name string
}

// FirstCurrencyCode returns the code of the first listed currency, if it has one.
func (d CountryDescriptor) FirstCurrencyCode() (string, bool) {
	if len(d.Currencies) == 0 || d.Currencies[0].Code == "" {
		return "", false
	}
	return d.Currencies[0].Code, true
}

type SortOrder string

const (
	SortNone    SortOrder = ""
	SortGDPDesc SortOrder = "gdp_desc"
)

type ListFilter struct {
	Region   string
	Currency string
	Sort     SortOrder
}

type Status struct {
	TotalCountries  int64
	LastRefreshedAt *string
}

// Summary is the content drawn on the summary image.
type Summary struct {
	Total       int64
	Top         []Country
	RefreshedAt time.Time
}

// timestampLayout matches JavaScript's Date.toISOString output.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// FormatTimestamp renders t as a millisecond precision UTC ISO-8601 string.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
