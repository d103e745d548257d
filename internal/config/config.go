package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	CatalogSourceEmbedded = "embedded"
	CatalogSourcePostgres = "postgres"
)

type Config struct {
	Port        string
	GinMode     string
	LogLevel    string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	AutoMigrate bool

	CatalogSource string
	// DefaultRegion overrides the catalog's default region when set.
	DefaultRegion string

	AuthSecret           string
	CardWebhookSecret    string
	GatewayWebhookSecret string
	GatewayRegions       []string
	CheckoutReturnURL    string
}

// Load reads a .env file when present and then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBUser:      getEnv("DB_USER", "aiclases"),
		DBPassword:  getEnv("DB_PASSWORD", "aiclases_secret"),
		DBName:      getEnv("DB_NAME", "aiclases_pricing"),
		DBSSLMode:   getEnv("DB_SSLMODE", "disable"),
		AutoMigrate: getEnv("AUTO_MIGRATE", "false") == "true",

		CatalogSource: strings.ToLower(getEnv("CATALOG_SOURCE", CatalogSourceEmbedded)),
		DefaultRegion: strings.ToUpper(getEnv("DEFAULT_REGION", "")),

		AuthSecret:           getEnv("AUTH_SECRET", "dev-secret-change-me"),
		CardWebhookSecret:    getEnv("CARD_WEBHOOK_SECRET", ""),
		GatewayWebhookSecret: getEnv("GATEWAY_WEBHOOK_SECRET", ""),
		GatewayRegions:       splitList(getEnv("GATEWAY_REGIONS", "AR,BR,MX,CO,CL,PE")),
		CheckoutReturnURL:    getEnv("CHECKOUT_RETURN_URL", "http://localhost:3000/dashboard"),
	}
}

func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

func (c *Config) Validate() error {
	switch c.CatalogSource {
	case CatalogSourceEmbedded, CatalogSourcePostgres:
	default:
		return fmt.Errorf("CATALOG_SOURCE must be %q or %q, got %q",
			CatalogSourceEmbedded, CatalogSourcePostgres, c.CatalogSource)
	}
	if c.DefaultRegion != "" && len(c.DefaultRegion) != 2 {
		return fmt.Errorf("DEFAULT_REGION must be a two-letter code, got %q", c.DefaultRegion)
	}
	if c.AuthSecret == "" {
		return errors.New("AUTH_SECRET must not be empty")
	}
	return nil
}

// UsesDatabase reports whether the server needs a Postgres connection.
func (c *Config) UsesDatabase() bool {
	return c.CatalogSource == CatalogSourcePostgres || c.AutoMigrate
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.ToUpper(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}
