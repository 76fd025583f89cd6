package postgres

import (
	"context"
	"countrycache/internal/domain"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const metadataLastRefreshedAt = "last_refreshed_at"

var countryColumns = []string{
	"id", "name", "capital", "region", "population", "currency_code",
	"exchange_rate", "estimated_gdp", "flag_url", "last_refreshed_at",
}

type CountryRepository struct {
	pool *pgxpool.Pool
}

// SaveRefresh writes one refresh cycle atomically: every country is upserted by name
// in input order, then the metadata timestamp is set. Any failure rolls everything back.
func (r *CountryRepository) SaveRefresh(ctx context.Context, countries []domain.Country, refreshedAt time.Time) error {
	const upsertQ = `
		insert into countries (name, capital, region, population, currency_code, exchange_rate, estimated_gdp, flag_url, last_refreshed_at)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		on conflict (name) do update
		  set capital = excluded.capital,
		      region = excluded.region,
		      population = excluded.population,
		      currency_code = excluded.currency_code,
		      exchange_rate = excluded.exchange_rate,
		      estimated_gdp = excluded.estimated_gdp,
		      flag_url = excluded.flag_url,
		      last_refreshed_at = excluded.last_refreshed_at,
		      updated_at = now();
	`
	const metadataQ = `
		insert into metadata (key, value) values ($1, $2)
		on conflict (key) do update set value = excluded.value;
	`

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, c := range countries {
		batch.Queue(upsertQ,
			c.Name, c.Capital, c.Region, c.Population, c.CurrencyCode,
			c.ExchangeRate, c.EstimatedGDP, c.FlagURL, refreshedAt,
		)
	}
	batch.Queue(metadataQ, metadataLastRefreshedAt, domain.FormatTimestamp(refreshedAt))

	results := tx.SendBatch(ctx, batch)
	for i := range countries {
		if _, err = results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("failed to upsert country %q: %w", countries[i].Name, err)
		}
	}
	if _, err = results.Exec(); err != nil {
		_ = results.Close()
		return fmt.Errorf("failed to update refresh metadata: %w", err)
	}
	if err = results.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *CountryRepository) List(ctx context.Context, filter domain.ListFilter) ([]domain.Country, error) {
	query := builder().Select(countryColumns...).From("countries")
	if filter.Region != "" {
		query = query.Where(sq.Eq{"region": filter.Region})
	}
	if filter.Currency != "" {
		query = query.Where(sq.Eq{"currency_code": filter.Currency})
	}
	if filter.Sort == domain.SortGDPDesc {
		query = query.OrderBy("estimated_gdp desc nulls last", "id")
	} else {
		query = query.OrderBy("id")
	}

	q, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}
	return r.queryCountries(ctx, q, args...)
}

func (r *CountryRepository) TopByGDP(ctx context.Context, limit int) ([]domain.Country, error) {
	q, args, err := builder().Select(countryColumns...).
		From("countries").
		OrderBy("estimated_gdp desc nulls last", "id").
		Limit(uint64(max(limit, 0))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build top query: %w", err)
	}
	return r.queryCountries(ctx, q, args...)
}

func (r *CountryRepository) GetByName(ctx context.Context, name string) (domain.Country, error) {
	q, args, err := builder().Select(countryColumns...).
		From("countries").
		Where("lower(name) = lower(?)", name).
		Limit(1).
		ToSql()
	if err != nil {
		return domain.Country{}, fmt.Errorf("failed to build get query: %w", err)
	}

	country, err := scanCountry(r.pool.QueryRow(ctx, q, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Country{}, domain.ErrCountryNotFound
		}
		return domain.Country{}, fmt.Errorf("failed to select country %q: %w", name, err)
	}
	return country, nil
}

func (r *CountryRepository) DeleteByName(ctx context.Context, name string) error {
	const q = `delete from countries where lower(name) = lower($1);`

	tag, err := r.pool.Exec(ctx, q, name)
	if err != nil {
		return fmt.Errorf("failed to delete country %q: %w", name, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCountryNotFound
	}
	return nil
}

func (r *CountryRepository) Count(ctx context.Context) (int64, error) {
	const q = `select count(*) from countries;`

	var total int64
	if err := r.pool.QueryRow(ctx, q).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count countries: %w", err)
	}
	return total, nil
}

// LastRefreshedAt returns nil while no refresh has completed yet.
func (r *CountryRepository) LastRefreshedAt(ctx context.Context) (*string, error) {
	const q = `select value from metadata where key = $1;`

	var value *string
	if err := r.pool.QueryRow(ctx, q, metadataLastRefreshedAt).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to select refresh metadata: %w", err)
	}
	if value == nil || *value == "" {
		return nil, nil
	}
	return value, nil
}

func (r *CountryRepository) queryCountries(ctx context.Context, q string, args ...any) ([]domain.Country, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query countries: %w", err)
	}
	defer rows.Close()

	countries := make([]domain.Country, 0, 64)
	for rows.Next() {
		c, scanErr := scanCountry(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan country: %w", scanErr)
		}
		countries = append(countries, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating countries: %w", err)
	}
	return countries, nil
}

func scanCountry(row pgx.Row) (domain.Country, error) {
	var c domain.Country
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Capital,
		&c.Region,
		&c.Population,
		&c.CurrencyCode,
		&c.ExchangeRate,
		&c.EstimatedGDP,
		&c.FlagURL,
		&c.LastRefreshedAt,
	)
	return c, err
}

// builder returns a squirrel statement builder using postgres placeholders.
func builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

func NewCountryRepository(pool *pgxpool.Pool) *CountryRepository {
	return &CountryRepository{pool: pool}
}
