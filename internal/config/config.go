package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrBusinessStartMonthRequired is returned when BUSINESS_START_MONTH
	// is unset. The engine never guesses a default business start.
	ErrBusinessStartMonthRequired = errors.New("BUSINESS_START_MONTH is required (YYYY-MM)")

	// ErrInitialBalanceRequired is returned when INITIAL_BALANCE is unset.
	ErrInitialBalanceRequired = errors.New("INITIAL_BALANCE is required")
)

type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	// BusinessStartMonth is the YYYY-MM cutover before which no
	// historical data may influence computed balances.
	BusinessStartMonth string

	// InitialBalance is the seeded business capital for the business
	// start month.
	InitialBalance decimal.Decimal

	// ProjectionCacheTTL bounds how long aggregation results are served
	// from cache. Zero means the cache default.
	ProjectionCacheTTL time.Duration
}

// ProcessInfrastructureVariables reads the postgres connection settings.
// Ops tooling that only touches the database (the migration runner)
// uses this directly, without the engine settings.
func ProcessInfrastructureVariables() *Config {
	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		PostgresAddress:  "localhost",
		PostgresPort:     "5433",
		PostgresDB:       "postgres",
		PostgresUsername: "postgres",
		PostgresPassword: "testpassword",
	}

	if v := os.Getenv("POSTGRES_ADDRESS"); len(v) != 0 {
		env.PostgresAddress = v
	}
	if v := os.Getenv("POSTGRES_PORT"); len(v) != 0 {
		env.PostgresPort = v
	}
	if v := os.Getenv("POSTGRES_DB"); len(v) != 0 {
		env.PostgresDB = v
	}
	if v := os.Getenv("POSTGRES_USERNAME"); len(v) != 0 {
		env.PostgresUsername = v
	}
	if v := os.Getenv("POSTGRES_PASSWORD"); len(v) != 0 {
		env.PostgresPassword = v
	}

	return &env
}

// ProcessEnvironmentVariables reads the full server configuration:
// infrastructure settings plus the required engine settings.
func ProcessEnvironmentVariables() (*Config, error) {
	env := ProcessInfrastructureVariables()

	businessStartMonth := os.Getenv("BUSINESS_START_MONTH")
	if len(businessStartMonth) == 0 {
		return nil, ErrBusinessStartMonthRequired
	}
	if _, err := time.Parse("2006-01", businessStartMonth); err != nil {
		return nil, fmt.Errorf("invalid BUSINESS_START_MONTH %q: %w", businessStartMonth, err)
	}
	env.BusinessStartMonth = businessStartMonth

	initialBalance := os.Getenv("INITIAL_BALANCE")
	if len(initialBalance) == 0 {
		return nil, ErrInitialBalanceRequired
	}
	parsedBalance, err := decimal.NewFromString(initialBalance)
	if err != nil {
		return nil, fmt.Errorf("invalid INITIAL_BALANCE %q: %w", initialBalance, err)
	}
	env.InitialBalance = parsedBalance

	if v := os.Getenv("PROJECTION_CACHE_TTL"); len(v) != 0 {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PROJECTION_CACHE_TTL %q: %w", v, err)
		}
		env.ProjectionCacheTTL = ttl
	}

	return env, nil
}
