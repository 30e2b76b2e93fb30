package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"

	advance "creator-advance-service/internal/domain/advance"

	"github.com/shopspring/decimal"
)

type Config struct {
	AppPort string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs int

	// Business terms; defaults come from the domain and may be
	// overridden through FEE_RATE / MIN_ADVANCE_AMOUNT.
	FeeRate          decimal.Decimal
	MinAdvanceAmount decimal.Decimal
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func Load() *Config {
	terms := advance.DefaultTerms()
	c := &Config{
		AppPort:   getenv("APP_PORT", "8080"),
		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "advances"),
		MySQLUser: getenv("MYSQL_USER", "advances"),
		MySQLPass: getenv("MYSQL_PASS", "advances"),

		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		IdempTTLSecs: 300,

		FeeRate:          terms.FeeRate,
		MinAdvanceAmount: terms.MinimumAmount,
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RedisDB = n
		}
	}
	if v := os.Getenv("IDEMPOTENCY_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.IdempTTLSecs = n
		}
	}
	if v := os.Getenv("FEE_RATE"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			c.FeeRate = d
		}
	}
	if v := os.Getenv("MIN_ADVANCE_AMOUNT"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			c.MinAdvanceAmount = d
		}
	}
	return c
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if !c.FeeRate.IsPositive() || c.FeeRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("FEE_RATE %s out of range (0, 1)", c.FeeRate)
	}
	if c.MinAdvanceAmount.IsNegative() {
		return fmt.Errorf("MIN_ADVANCE_AMOUNT %s must not be negative", c.MinAdvanceAmount)
	}
	return nil
}

// Terms is the single immutable value the fee calculation and entity
// construction run on.
func (c *Config) Terms() advance.Terms {
	return advance.Terms{FeeRate: c.FeeRate, MinimumAmount: c.MinAdvanceAmount}
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
