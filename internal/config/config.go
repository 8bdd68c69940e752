package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Environment represents the deployment environment.
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

func (e Environment) IsProduction() bool { return e == Production }

// ParseEnvironment falls back to Development for unknown values.
func ParseEnvironment(v string) Environment {
	switch Environment(v) {
	case Production:
		return Production
	case Testing:
		return Testing
	default:
		return Development
	}
}

type Redis struct {
	URL          string `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
}

type Pricing struct {
	TaxRate     string `envconfig:"PRICING_TAX_RATE" default:"0.12"`
	ShippingFee string `envconfig:"PRICING_SHIPPING_FEE" default:"100.00"`
}

type Currency struct {
	Symbol string `envconfig:"CURRENCY_SYMBOL" default:"₱"`
	Locale string `envconfig:"CURRENCY_LOCALE" default:"en-PH"`
}

type Config struct {
	Env          string `envconfig:"ENV" default:"development"`
	Port         string `envconfig:"PORT" default:"8080"`
	StoreBackend string `envconfig:"STORE_BACKEND" default:"sqlite"` // sqlite | redis | memory
	DBDSN        string `envconfig:"DB_DSN" default:"prestige.db"`
	LogFile      string `envconfig:"LOG_FILE" default:"./prestige.log"`

	Redis    Redis
	Pricing  Pricing
	Currency Currency
}

func (c Config) Environment() Environment { return ParseEnvironment(c.Env) }

// TaxRate and ShippingFee are validated by Load; they only fail on hand-built configs.
func (c Config) TaxRate() decimal.Decimal {
	d, err := decimal.NewFromString(c.Pricing.TaxRate)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func (c Config) ShippingFee() decimal.Decimal {
	d, err := decimal.NewFromString(c.Pricing.ShippingFee)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Load reads .env (when present) and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, errors.Wrap(err, "process env config")
	}
	if _, err := decimal.NewFromString(cfg.Pricing.TaxRate); err != nil {
		return Config{}, errors.Wrapf(err, "PRICING_TAX_RATE %q", cfg.Pricing.TaxRate)
	}
	if _, err := decimal.NewFromString(cfg.Pricing.ShippingFee); err != nil {
		return Config{}, errors.Wrapf(err, "PRICING_SHIPPING_FEE %q", cfg.Pricing.ShippingFee)
	}
	switch cfg.StoreBackend {
	case "sqlite", "redis", "memory":
	default:
		return Config{}, errors.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
	return cfg, nil
}
