package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	MongoDB MongoDBConfig
	Auth    AuthConfig
	CORS    CORSConfig
	Storage StorageConfig
	Sheets  SheetsConfig
	Jobs    JobsConfig
	Redis   RedisConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// AuthConfig carries JWT signing material and token lifetime.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// CORSConfig lists the origin the frontend is served from.
type CORSConfig struct {
	AllowedOrigin string
}

// StorageConfig contains credentials for the external object store
// that receives payment-slip and delivery-challan uploads.
type StorageConfig struct {
	BaseURL   string
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// SheetsConfig contains configuration required to export summaries to Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// JobsConfig holds scheduler-related settings.
type JobsConfig struct {
	ReconcileCron string
	SummaryCron   string
	Timezone      string
}

// RedisConfig is optional; when Addr is empty report caching is
// disabled and every report query hits the database.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	tokenTTL, err := time.ParseDuration(getenvWithDefault("JWT_TOKEN_TTL", "72h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TOKEN_TTL: %w", err)
	}

	redisDB, _ := strconv.Atoi(getenvWithDefault("REDIS_DB", "0"))

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "backoffice"),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
			TokenTTL:  tokenTTL,
		},
		CORS: CORSConfig{
			AllowedOrigin: getenvWithDefault("CORS_ORIGIN", "*"),
		},
		Storage: StorageConfig{
			BaseURL:   getenvWithDefault("STORAGE_BASE_URL", "https://api.cloudinary.com/v1_1"),
			CloudName: os.Getenv("STORAGE_CLOUD_NAME"),
			APIKey:    os.Getenv("STORAGE_API_KEY"),
			APISecret: os.Getenv("STORAGE_API_SECRET"),
			Folder:    getenvWithDefault("STORAGE_FOLDER", "payment-slips"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_SUMMARY_ID"),
		},
		Jobs: JobsConfig{
			ReconcileCron: getenvWithDefault("UPLOAD_RECONCILE_CRON", "30 2 * * *"),
			SummaryCron:   getenvWithDefault("SUMMARY_EXPORT_CRON", "0 20 * * 5"),
			Timezone:      getenvWithDefault("TIMEZONE", "Asia/Colombo"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.MongoDB.URI == "" {
		return errors.New("MONGODB_URI must be provided")
	}

	if c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET must be provided")
	}

	if c.Auth.TokenTTL <= 0 {
		return errors.New("JWT_TOKEN_TTL must be positive")
	}

	// Storage credentials come as a set: either all present or all absent.
	// Uploads are rejected at runtime when the store is not configured.
	provided := 0
	for _, v := range []string{c.Storage.CloudName, c.Storage.APIKey, c.Storage.APISecret} {
		if v != "" {
			provided++
		}
	}
	if provided != 0 && provided != 3 {
		return errors.New("STORAGE_CLOUD_NAME, STORAGE_API_KEY and STORAGE_API_SECRET must be provided together")
	}

	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_SUMMARY_ID must be provided together")
	}

	if c.Jobs.ReconcileCron == "" {
		return errors.New("UPLOAD_RECONCILE_CRON must be provided")
	}

	if c.Jobs.SummaryCron == "" {
		return errors.New("SUMMARY_EXPORT_CRON must be provided")
	}

	if c.Jobs.Timezone == "" {
		return errors.New("TIMEZONE must be provided")
	}

	return nil
}

// StorageEnabled reports whether object-storage credentials are configured.
func (c *Config) StorageEnabled() bool {
	return c.Storage.CloudName != "" && c.Storage.APIKey != "" && c.Storage.APISecret != ""
}

// SheetsEnabled reports whether summary export is configured.
func (c *Config) SheetsEnabled() bool {
	return c.Sheets.CredentialsPath != "" && c.Sheets.SpreadsheetID != ""
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
