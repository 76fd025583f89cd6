package country

import (
	"context"
	"countrycache/internal/adapters"
	"countrycache/internal/domain"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	defaultFetchTimeout = 15 * time.Second
	defaultTopN         = 5
	summaryTimeout      = 2 * time.Minute
)

type Settings struct {
	FetchTimeout time.Duration
	TopN         int
}

type Service struct {
	countryClient adapters.CountryClient
	rateClient    adapters.RateClient
	repo          adapters.CountryRepository
	renderer      adapters.SummaryRenderer
	// -----
	fetchTimeout time.Duration
	topN         int
	multiplier   Multiplier
	now          func() time.Time
	summaries    sync.WaitGroup
}

// Refresh runs one refresh cycle and returns its timestamp.
//
// Both feeds are fetched concurrently and always awaited. A failure of either one is
// returned as *domain.UpstreamError before anything is written. Write failures are
// wrapped in domain.ErrPersistence. The summary image is produced in the background
// after commit and its outcome is only logged.
func (s *Service) Refresh(ctx context.Context) (time.Time, error) {
	execID := uuid.NewString()
	log := logrus.WithField("exec_id", execID)

	descriptors, rates, err := s.fetchSources(ctx)
	if err != nil {
		log.WithError(err).Error("Refresh aborted, external source failed")
		return time.Time{}, err
	}

	refreshedAt := s.now().UTC().Truncate(time.Millisecond)
	countries, skipped := mergeCountries(descriptors, rates, refreshedAt, s.multiplier)
	if skipped > 0 {
		log.Debugf("%d country entries skipped as invalid", skipped)
	}

	if err = s.repo.SaveRefresh(ctx, countries, refreshedAt); err != nil {
		log.WithError(err).Error("Refresh rolled back")
		return time.Time{}, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	log.Infof("%d countries refreshed at %s", len(countries), domain.FormatTimestamp(refreshedAt))

	s.publishSummaryInBackground(log, refreshedAt)
	return refreshedAt, nil
}

func (s *Service) fetchSources(ctx context.Context) ([]domain.CountryDescriptor, map[string]float64, error) {
	var (
		g            errgroup.Group
		descriptors  []domain.CountryDescriptor
		rates        map[string]float64
		countriesErr error
		ratesErr     error
	)

	// neither fetch cancels the other; both results are inspected after Wait
	g.Go(func() error {
		fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
		descriptors, countriesErr = s.countryClient.GetCountries(fetchCtx)
		return nil
	})
	g.Go(func() error {
		fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
		rates, ratesErr = s.rateClient.GetExchangeRates(fetchCtx)
		return nil
	})
	_ = g.Wait()

	if countriesErr != nil {
		return nil, nil, &domain.UpstreamError{Source: domain.SourceCountries, Err: countriesErr}
	}
	if ratesErr != nil {
		return nil, nil, &domain.UpstreamError{Source: domain.SourceExchangeRates, Err: ratesErr}
	}
	return descriptors, rates, nil
}

func (s *Service) publishSummaryInBackground(log *logrus.Entry, refreshedAt time.Time) {
	s.summaries.Add(1)
	go func() {
		defer s.summaries.Done()
		ctx, cancel := context.WithTimeout(context.Background(), summaryTimeout)
		defer cancel()

		if _, err := s.publishSummary(ctx, refreshedAt); err != nil {
			log.WithError(err).Error("Failed to generate summary image")
			return
		}
		log.Info("Summary image generated")
	}()
}

func (s *Service) publishSummary(ctx context.Context, refreshedAt time.Time) ([]byte, error) {
	top, err := s.repo.TopByGDP(ctx, s.topN)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return s.renderer.Publish(ctx, domain.Summary{Total: total, Top: top, RefreshedAt: refreshedAt})
}

// WaitSummaries blocks until background summary images are written.
func (s *Service) WaitSummaries() {
	s.summaries.Wait()
}

// SummaryImage regenerates the summary from the current table and returns the PNG.
// The last refresh time is used when known, the current time otherwise.
func (s *Service) SummaryImage(ctx context.Context) ([]byte, error) {
	refreshedAt := s.now().UTC()
	last, err := s.repo.LastRefreshedAt(ctx)
	if err != nil {
		return nil, err
	}
	if last != nil {
		if parsed, parseErr := time.Parse(time.RFC3339Nano, *last); parseErr == nil {
			refreshedAt = parsed
		}
	}
	return s.publishSummary(ctx, refreshedAt)
}

func (s *Service) List(ctx context.Context, filter domain.ListFilter) ([]domain.Country, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) GetByName(ctx context.Context, name string) (domain.Country, error) {
	return s.repo.GetByName(ctx, name)
}

func (s *Service) DeleteByName(ctx context.Context, name string) error {
	return s.repo.DeleteByName(ctx, name)
}

func (s *Service) Status(ctx context.Context) (domain.Status, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return domain.Status{}, err
	}
	last, err := s.repo.LastRefreshedAt(ctx)
	if err != nil {
		return domain.Status{}, err
	}
	return domain.Status{TotalCountries: total, LastRefreshedAt: last}, nil
}

func NewService(
	repo adapters.CountryRepository,
	countryClient adapters.CountryClient,
	rateClient adapters.RateClient,
	renderer adapters.SummaryRenderer,
	settings Settings,
) *Service {
	if settings.FetchTimeout <= 0 {
		settings.FetchTimeout = defaultFetchTimeout
	}
	if settings.TopN <= 0 {
		settings.TopN = defaultTopN
	}
	return &Service{
		countryClient: countryClient,
		rateClient:    rateClient,
		repo:          repo,
		renderer:      renderer,
		fetchTimeout:  settings.FetchTimeout,
		topN:          settings.TopN,
		multiplier:    RandomMultiplier,
		now:           time.Now,
	}
}
