package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

type Config struct {
	Database  *dbConfig
	Service   *svcConfig
	Predictor *predictorConfig
	Cache     *cacheConfig
}

type dbConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"sqlite"`
	Hostname string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"profit-planner.db"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASS" default:"adminpass"`
}

type svcConfig struct {
	Address         string   `envconfig:"PROFIT_PLANNER_ADDRESS" default:":8080"`
	MetricsAddress  string   `envconfig:"PROFIT_PLANNER_METRICS_ADDRESS" default:":8081"`
	LogLevel        string   `envconfig:"PROFIT_PLANNER_LOG_LEVEL" default:"info"`
	LogFormat       string   `envconfig:"PROFIT_PLANNER_LOG_FORMAT" default:"console"`
	MigrationFolder string   `envconfig:"PROFIT_PLANNER_MIGRATIONS_FOLDER" default:""`
	DatasetPath     string   `envconfig:"PROFIT_PLANNER_DATASET_PATH" default:""`
	CorsOrigins     []string `envconfig:"PROFIT_PLANNER_CORS_ORIGINS" default:"*"`
	// EventsEnabled logs estimation and dataset events as CloudEvents.
	EventsEnabled bool   `envconfig:"PROFIT_PLANNER_EVENTS_ENABLED" default:"false"`
	EventsTopic   string `envconfig:"PROFIT_PLANNER_EVENTS_TOPIC" default:"profit.planner.events"`
}

type predictorConfig struct {
	ModelPath string        `envconfig:"PROFIT_PLANNER_MODEL_PATH" default:"model/profit_model.yaml"`
	URL       string        `envconfig:"PROFIT_PLANNER_PREDICTOR_URL" default:""`
	Timeout   time.Duration `envconfig:"PROFIT_PLANNER_PREDICTOR_TIMEOUT" default:"5s"`
}

type cacheConfig struct {
	RedisAddress  string        `envconfig:"PROFIT_PLANNER_REDIS_ADDRESS" default:""`
	RedisPassword string        `envconfig:"PROFIT_PLANNER_REDIS_PASSWORD" default:""`
	RedisDB       int           `envconfig:"PROFIT_PLANNER_REDIS_DB" default:"0"`
	TTL           time.Duration `envconfig:"PROFIT_PLANNER_REDIS_TTL" default:"1h"`
}

// IsPostgres reports whether the store is backed by PostgreSQL rather than sqlite.
func (d *dbConfig) IsPostgres() bool {
	switch strings.ToLower(d.Type) {
	case "pgsql", "postgres", "postgresql":
		return true
	}
	return false
}

// Dialect returns the goose dialect name matching the database type.
func (d *dbConfig) Dialect() string {
	if d.IsPostgres() {
		return "postgres"
	}
	return "sqlite3"
}

func New() (*Config, error) {
	if singleConfig == nil {
		singleConfig = new(Config)
		if err := envconfig.Process("", singleConfig); err != nil {
			return nil, err
		}
	}
	return singleConfig, nil
}

// NewDefault returns a config for tests: an in-memory sqlite store and no external collaborators.
func NewDefault() *Config {
	return &Config{
		Database: &dbConfig{
			Type: "sqlite",
			Name: "file::memory:?cache=shared",
		},
		Service: &svcConfig{
			Address:        ":8080",
			MetricsAddress: ":8081",
			LogLevel:       "debug",
			LogFormat:      "console",
			CorsOrigins:    []string{"*"},
		},
		Predictor: &predictorConfig{
			Timeout: 5 * time.Second,
		},
		Cache: &cacheConfig{
			TTL: time.Hour,
		},
	}
}
