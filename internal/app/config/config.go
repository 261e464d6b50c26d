package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const defaultTerms = `1. 50% advance payment required
2. Delivery within 2-3 weeks from order confirmation
3. Installation will be done by our technicians
4. Warranty as per manufacturer terms
5. Prices are valid for 30 days from the date of quotation`

type Config struct {
	HTTPAddr    string
	Environment string
	LogLevel    string
	LogFormat   string

	StorageDriver string
	StoragePath   string
	DatabaseURL   string

	InternalToken   string
	CORSAllowOrigin string
	ExportRate      int

	PercentPolicy             string
	DefaultTaxPercent         decimal.Decimal
	DefaultInstallationCharge decimal.Decimal
	QuoteNumberPrefix         string
	DefaultTerms              string
	PDFFontDir                string
	SeedDemoData              bool

	CompanyName    string
	CompanyAddress string
	CompanyPhone   string
	CompanyEmail   string
	CompanyWebsite string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_ADDR", "127.0.0.1:8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("STORAGE_DRIVER", "file")
	v.SetDefault("STORAGE_PATH", "data/quotedesk.json")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("INTERNAL_TOKEN", "")
	v.SetDefault("CORS_ALLOW_ORIGIN", "*")
	v.SetDefault("EXPORT_RATE_PER_MINUTE", 30)
	v.SetDefault("PERCENT_POLICY", "passthrough")
	v.SetDefault("DEFAULT_TAX_PERCENT", "18")
	v.SetDefault("DEFAULT_INSTALLATION_CHARGE", "5000")
	v.SetDefault("QUOTE_NUMBER_PREFIX", "Q")
	v.SetDefault("DEFAULT_TERMS", defaultTerms)
	v.SetDefault("PDF_FONT_DIR", "")
	v.SetDefault("SEED_DEMO_DATA", true)
	v.SetDefault("COMPANY_NAME", "MWD Interiors")
	v.SetDefault("COMPANY_ADDRESS", "123 Design Street, Hyderabad, Telangana 500001")
	v.SetDefault("COMPANY_PHONE", "+91 98765 43210")
	v.SetDefault("COMPANY_EMAIL", "info@mwdinteriors.com")
	v.SetDefault("COMPANY_WEBSITE", "www.mwdinteriors.com")
}

// Load reads an optional .env file, then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		HTTPAddr:          v.GetString("HTTP_ADDR"),
		Environment:       v.GetString("ENVIRONMENT"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		LogFormat:         v.GetString("LOG_FORMAT"),
		StorageDriver:     strings.ToLower(v.GetString("STORAGE_DRIVER")),
		StoragePath:       v.GetString("STORAGE_PATH"),
		DatabaseURL:       v.GetString("DATABASE_URL"),
		InternalToken:     v.GetString("INTERNAL_TOKEN"),
		CORSAllowOrigin:   v.GetString("CORS_ALLOW_ORIGIN"),
		ExportRate:        v.GetInt("EXPORT_RATE_PER_MINUTE"),
		PercentPolicy:     v.GetString("PERCENT_POLICY"),
		QuoteNumberPrefix: v.GetString("QUOTE_NUMBER_PREFIX"),
		DefaultTerms:      v.GetString("DEFAULT_TERMS"),
		PDFFontDir:        v.GetString("PDF_FONT_DIR"),
		SeedDemoData:      v.GetBool("SEED_DEMO_DATA"),
		CompanyName:       v.GetString("COMPANY_NAME"),
		CompanyAddress:    v.GetString("COMPANY_ADDRESS"),
		CompanyPhone:      v.GetString("COMPANY_PHONE"),
		CompanyEmail:      v.GetString("COMPANY_EMAIL"),
		CompanyWebsite:    v.GetString("COMPANY_WEBSITE"),
	}

	var err error
	if cfg.DefaultTaxPercent, err = decimal.NewFromString(v.GetString("DEFAULT_TAX_PERCENT")); err != nil {
		return cfg, fmt.Errorf("DEFAULT_TAX_PERCENT: %w", err)
	}
	if cfg.DefaultInstallationCharge, err = decimal.NewFromString(v.GetString("DEFAULT_INSTALLATION_CHARGE")); err != nil {
		return cfg, fmt.Errorf("DEFAULT_INSTALLATION_CHARGE: %w", err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.StorageDriver {
	case "memory", "file":
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres storage driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.StorageDriver == "file" && c.StoragePath == "" {
		return fmt.Errorf("STORAGE_PATH is required for the file storage driver")
	}
	if c.ExportRate < 0 {
		return fmt.Errorf("EXPORT_RATE_PER_MINUTE must not be negative")
	}
	return nil
}

func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}
