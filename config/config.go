package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"sportzone-booking/model"
)

const DEFAULT_LEDGER_PATH string = "bookings.csv"
const DEFAULT_HTTP_PORT string = "8080"
const DEFAULT_MONGO_DATABASE string = "booking-service"
const DEFAULT_MONGO_COLLECTION string = "bookings"
const DEFAULT_CURRENCY_SYMBOL string = "£"

const (
	LedgerBackendCSV   = "csv"
	LedgerBackendMongo = "mongo"
)

type LedgerConfig struct {
	Backend         string
	Path            string
	MongoConnString string
	MongoDatabase   string
	MongoCollection string
}

type HTTPConfig struct {
	Port       string
	SigningKey string
	TokenTTL   time.Duration
}

// Config is built once at startup and handed to every component by value.
// Nothing in the program mutates it afterwards.
type Config struct {
	Ledger         LedgerConfig
	Prices         model.PriceTable
	VATRate        decimal.Decimal
	CurrencySymbol string
	Matches        model.Matches
	Users          []model.UserData
	Admins         []model.UserData
	HTTP           HTTPConfig
	LogLevel       logrus.Level
}

// Default returns the built-in SportZone configuration.
func Default() Config {
	return Config{
		Ledger: LedgerConfig{
			Backend:         LedgerBackendCSV,
			Path:            DEFAULT_LEDGER_PATH,
			MongoDatabase:   DEFAULT_MONGO_DATABASE,
			MongoCollection: DEFAULT_MONGO_COLLECTION,
		},
		Prices: model.NewPriceTable([]model.TierPrices{
			{Tier: model.TierStandard, Prices: map[model.Category]decimal.Decimal{
				model.CategoryChild: decimal.RequireFromString("6.00"),
				model.CategoryTeen:  decimal.RequireFromString("8.00"),
				model.CategoryAdult: decimal.RequireFromString("12.00"),
				model.CategoryVIP:   decimal.RequireFromString("20.00"),
			}},
			{Tier: model.TierPremium, Prices: map[model.Category]decimal.Decimal{
				model.CategoryChild: decimal.RequireFromString("8.00"),
				model.CategoryTeen:  decimal.RequireFromString("10.00"),
				model.CategoryAdult: decimal.RequireFromString("15.00"),
				model.CategoryVIP:   decimal.RequireFromString("25.00"),
			}},
		}),
		VATRate:        decimal.RequireFromString("0.20"),
		CurrencySymbol: DEFAULT_CURRENCY_SYMBOL,
		Matches: model.Matches{
			"Thunderbolts vs Hurricanes",
			"Iron Titans vs Steel Crushers",
			"Blaze Warriors vs Storm Riders",
			"Shadow Hawks vs Flame Strikers",
			"Titan Clash Championship",
		},
		Users:  []model.UserData{{Login: "user", Password: "password123", Role: model.RoleUser}},
		Admins: []model.UserData{{Login: "admin", Password: "admin123", Role: model.RoleAdmin}},
		HTTP: HTTPConfig{
			Port:     DEFAULT_HTTP_PORT,
			TokenTTL: 8 * time.Hour,
		},
		LogLevel: logrus.WarnLevel,
	}
}

type tierFile struct {
	Name   string            `yaml:"name"`
	Prices map[string]string `yaml:"prices"`
}

type fileConfig struct {
	Ledger struct {
		Backend         string `yaml:"backend"`
		Path            string `yaml:"path"`
		MongoDatabase   string `yaml:"mongo_database"`
		MongoCollection string `yaml:"mongo_collection"`
	} `yaml:"ledger"`
	Pricing struct {
		VATRate        string     `yaml:"vat_rate"`
		CurrencySymbol string     `yaml:"currency_symbol"`
		Tiers          []tierFile `yaml:"tiers"`
	} `yaml:"pricing"`
	Matches  []string `yaml:"matches"`
	Accounts struct {
		Users  []model.UserData `yaml:"users"`
		Admins []model.UserData `yaml:"admins"`
	} `yaml:"accounts"`
	HTTP struct {
		Port     string `yaml:"port"`
		TokenTTL string `yaml:"token_ttl"`
	} `yaml:"http"`
	LogLevel string `yaml:"log_level"`
}

// Load builds the configuration from defaults, an optional YAML file and the environment,
// in that order of precedence (environment wins).
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		var fc fileConfig
		decoder := yaml.NewDecoder(file)
		decoder.KnownFields(true)
		if err := decoder.Decode(&fc); err != nil {
			return Config{}, fmt.Errorf("decode config %s: %w", path, err)
		}
		if err := applyFile(&cfg, fc); err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, fc fileConfig) error {
	if fc.Ledger.Backend != "" {
		cfg.Ledger.Backend = fc.Ledger.Backend
	}
	if fc.Ledger.Path != "" {
		cfg.Ledger.Path = fc.Ledger.Path
	}
	if fc.Ledger.MongoDatabase != "" {
		cfg.Ledger.MongoDatabase = fc.Ledger.MongoDatabase
	}
	if fc.Ledger.MongoCollection != "" {
		cfg.Ledger.MongoCollection = fc.Ledger.MongoCollection
	}

	if fc.Pricing.VATRate != "" {
		vat, err := decimal.NewFromString(fc.Pricing.VATRate)
		if err != nil {
			return fmt.Errorf("vat_rate %q: %w", fc.Pricing.VATRate, err)
		}
		cfg.VATRate = vat
	}
	if fc.Pricing.CurrencySymbol != "" {
		cfg.CurrencySymbol = fc.Pricing.CurrencySymbol
	}
	if len(fc.Pricing.Tiers) > 0 {
		tiers := make([]model.TierPrices, 0, len(fc.Pricing.Tiers))
		for _, tf := range fc.Pricing.Tiers {
			prices := make(map[model.Category]decimal.Decimal, len(tf.Prices))
			for category, raw := range tf.Prices {
				price, err := decimal.NewFromString(raw)
				if err != nil {
					return fmt.Errorf("price %s/%s %q: %w", tf.Name, category, raw, err)
				}
				prices[model.Category(category)] = price
			}
			tiers = append(tiers, model.TierPrices{Tier: model.Tier(tf.Name), Prices: prices})
		}
		cfg.Prices = model.NewPriceTable(tiers)
	}

	if len(fc.Matches) > 0 {
		cfg.Matches = append(model.Matches(nil), fc.Matches...)
	}
	if len(fc.Accounts.Users) > 0 {
		cfg.Users = withRole(fc.Accounts.Users, model.RoleUser)
	}
	if len(fc.Accounts.Admins) > 0 {
		cfg.Admins = withRole(fc.Accounts.Admins, model.RoleAdmin)
	}

	if fc.HTTP.Port != "" {
		cfg.HTTP.Port = fc.HTTP.Port
	}
	if fc.HTTP.TokenTTL != "" {
		ttl, err := time.ParseDuration(fc.HTTP.TokenTTL)
		if err != nil {
			return fmt.Errorf("token_ttl %q: %w", fc.HTTP.TokenTTL, err)
		}
		cfg.HTTP.TokenTTL = ttl
	}

	if fc.LogLevel != "" {
		level, err := logrus.ParseLevel(fc.LogLevel)
		if err != nil {
			return err
		}
		cfg.LogLevel = level
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if val, err := GetSecret("LEDGER_PATH"); err == nil {
		cfg.Ledger.Path = val
	}
	if val, err := GetSecret("LEDGER_BACKEND"); err == nil {
		cfg.Ledger.Backend = val
	}
	if val, err := GetSecret("MONGODB_CONNSTRING"); err == nil {
		cfg.Ledger.MongoConnString = val
	}
	if val, err := GetSecret("SIGN"); err == nil {
		cfg.HTTP.SigningKey = val
	}
	if val, err := GetSecret("HTTP_PORT"); err == nil {
		cfg.HTTP.Port = val
	}
	if val, err := GetSecret("LOG_LEVEL"); err == nil {
		level, err := logrus.ParseLevel(val)
		if err != nil {
			return fmt.Errorf("LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = level
	}
	return nil
}

func withRole(accounts []model.UserData, role model.Role) []model.UserData {
	out := make([]model.UserData, 0, len(accounts))
	for _, account := range accounts {
		account.Role = role
		out = append(out, account)
	}
	return out
}

// Validate checks the invariants the booking core relies on.
func (c Config) Validate() error {
	if len(c.Matches) == 0 {
		return fmt.Errorf("config: at least one match is required")
	}
	for i, match := range c.Matches {
		if strings.TrimSpace(match) == "" {
			return fmt.Errorf("config: match %d has an empty name", i+1)
		}
	}
	if c.VATRate.IsNegative() {
		return fmt.Errorf("config: vat rate cannot be negative")
	}
	tiers := c.Prices.Tiers()
	if len(tiers) == 0 {
		return fmt.Errorf("config: at least one match type is required")
	}
	for _, tier := range tiers {
		for _, category := range model.Categories() {
			price, err := c.Prices.UnitPrice(tier, category)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if price.IsNegative() {
				return fmt.Errorf("config: price %s/%s cannot be negative", tier, category)
			}
		}
	}
	switch c.Ledger.Backend {
	case LedgerBackendCSV:
		if c.Ledger.Path == "" {
			return fmt.Errorf("config: ledger path is required")
		}
	case LedgerBackendMongo:
	default:
		return fmt.Errorf("config: unknown ledger backend %q", c.Ledger.Backend)
	}
	return nil
}

func GetSecret(key string) (string, error) {
	val, exist := os.LookupEnv(key)
	if exist {
		return val, nil
	}
	return "", fmt.Errorf("no env variable with key %v", key)
}
