package adapters

import (
	"context"
	"countrycache/internal/domain"
	"image"
	"time"
)

type CountryClient interface {
	GetCountries(ctx context.Context) ([]domain.CountryDescriptor, error)
}

type RateClient interface {
	GetExchangeRates(ctx context.Context) (map[string]float64, error)
}

type FlagClient interface {
	GetFlag(ctx context.Context, flagURL string) (image.Image, error)
}

type FlagCache interface {
	Get(flagURL string) (image.Image, bool)
	Set(flagURL string, img image.Image)
}

type CountryRepository interface {
	// SaveRefresh upserts countries in order and stamps metadata inside one transaction.
	SaveRefresh(ctx context.Context, countries []domain.Country, refreshedAt time.Time) error
	List(ctx context.Context, filter domain.ListFilter) ([]domain.Country, error)
	GetByName(ctx context.Context, name string) (domain.Country, error)
	DeleteByName(ctx context.Context, name string) error
	TopByGDP(ctx context.Context, limit int) ([]domain.Country, error)
	Count(ctx context.Context) (int64, error)
	LastRefreshedAt(ctx context.Context) (*string, error)
}

type SummaryRenderer interface {
	// Publish draws the summary, writes it to the output location and returns the PNG bytes.
	Publish(ctx context.Context, summary domain.Summary) ([]byte, error)
}
