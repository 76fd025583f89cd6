package domain

import (
	"errors"
	"fmt"
)

var (
	ErrCountryNotFound      = errors.New("country not found")
	ErrUpstreamUnavailable  = errors.New("upstream unavailable")
	ErrUpstreamInvalidShape = errors.New("upstream returned invalid payload")
	ErrPersistence          = errors.New("persistence failure")
)

const (
	SourceCountries     = "countries"
	SourceExchangeRates = "exchange-rates"
)

// UpstreamError reports which external source failed during a refresh.
type UpstreamError struct {
	Source string
	Err    error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s source: %v", e.Source, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// InvalidShape reports whether the source answered with a structurally wrong body.
func (e *UpstreamError) InvalidShape() bool {
	return errors.Is(e.Err, ErrUpstreamInvalidShape)
}
