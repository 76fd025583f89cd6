package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Port                 string `mapstructure:"port"`
	ReadHeaderTimeoutSec int    `mapstructure:"read_header_timeout_sec"`
	ShutdownTimeoutSec   int    `mapstructure:"shutdown_timeout_sec"`
}

func (s HTTPServer) ReadHeaderTimeout() time.Duration {
	return time.Duration(s.ReadHeaderTimeoutSec) * time.Second
}

func (s HTTPServer) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSec) * time.Second
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type Sources struct {
	CountriesURL        string `mapstructure:"countries_url"`
	ExchangeRatesURL    string `mapstructure:"exchange_rates_url"`
	FetchTimeoutSeconds int    `mapstructure:"fetch_timeout_seconds"`
	FlagTimeoutSeconds  int    `mapstructure:"flag_timeout_seconds"`
}

func (s Sources) FetchTimeout() time.Duration {
	return time.Duration(s.FetchTimeoutSeconds) * time.Second
}

func (s Sources) FlagTimeout() time.Duration {
	return time.Duration(s.FlagTimeoutSeconds) * time.Second
}

type Summary struct {
	OutputDir string `mapstructure:"output_dir"`
	TopN      int    `mapstructure:"top_n"`
}

type FlagCache struct {
	MaxItems int64 `mapstructure:"max_items"`
}

type Scheduler struct {
	Enabled            bool `mapstructure:"enabled"`
	RefreshIntervalSec int  `mapstructure:"refresh_interval_sec"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type AppConfig struct {
	HTTPServer HTTPServer `mapstructure:"http_server"`
	DbServer   DbServer   `mapstructure:"db_server"`
	HTTPClient HTTPClient `mapstructure:"http_client"`
	Sources    Sources    `mapstructure:"sources"`
	Summary    Summary    `mapstructure:"summary"`
	FlagCache  FlagCache  `mapstructure:"flag_cache"`
	Scheduler  Scheduler  `mapstructure:"scheduler"`
	Logging    Logging    `mapstructure:"logging"`
}

const (
	DefaultCountriesURL     = "https://restcountries.com/v2/all?fields=name,capital,region,population,flag,currencies"
	DefaultExchangeRatesURL = "https://open.er-api.com/v6/latest/USD"
)

// Init reads config.yaml from the working directory, an optional .env file and
// environment overrides.
func Init() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}
	return Load("config.yaml")
}

// Load reads the given yaml file; a missing file leaves defaults and env values in place.
func Load(path string) (*AppConfig, error) {
	var cfg AppConfig
	v := viper.New()

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.SetDefault("http_server.port", "3000")
	v.SetDefault("http_server.read_header_timeout_sec", 5)
	v.SetDefault("http_server.shutdown_timeout_sec", 10)
	v.SetDefault("db_server.host", "127.0.0.1")
	v.SetDefault("db_server.port", "5432")
	v.SetDefault("db_server.name", "country_cache")
	v.SetDefault("db_server.max_conns", 10)
	v.SetDefault("http_client.timeout_seconds", 30)
	v.SetDefault("sources.countries_url", DefaultCountriesURL)
	v.SetDefault("sources.exchange_rates_url", DefaultExchangeRatesURL)
	v.SetDefault("sources.fetch_timeout_seconds", 15)
	v.SetDefault("sources.flag_timeout_seconds", 10)
	v.SetDefault("summary.output_dir", "cache")
	v.SetDefault("summary.top_n", 5)
	v.SetDefault("flag_cache.max_items", 512)
	v.SetDefault("scheduler.enabled", false)
	v.SetDefault("scheduler.refresh_interval_sec", 3600)
	v.SetDefault("logging.level", "info")

	_ = v.BindEnv("http_server.port", "PORT")

	// db server env vars
	_ = v.BindEnv("db_server.host", "DB_HOST")
	_ = v.BindEnv("db_server.port", "DB_PORT")
	_ = v.BindEnv("db_server.user", "DB_USER")
	_ = v.BindEnv("db_server.pass", "DB_PASS")
	_ = v.BindEnv("db_server.name", "DB_NAME")
	_ = v.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	// upstream sources
	_ = v.BindEnv("sources.countries_url", "COUNTRIES_API_URL")
	_ = v.BindEnv("sources.exchange_rates_url", "EXCHANGE_RATES_API_URL")

	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")
	_ = v.BindEnv("scheduler.enabled", "SCHEDULER_ENABLED")
	_ = v.BindEnv("scheduler.refresh_interval_sec", "SCHEDULER_REFRESH_INTERVAL_SEC")
	_ = v.BindEnv("logging.level", "LOG_LEVEL")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	return &cfg, nil
}
