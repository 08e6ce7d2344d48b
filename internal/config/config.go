package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	ListenAddr   string
	StoreBackend string `validate:"oneof=sqlite file redis memory"`
	DBPath       string
	DataDir      string
	RedisAddr    string
	RedisPrefix  string

	ConvexURL               string        `validate:"omitempty,url"`
	CatalogTTL              time.Duration `validate:"gt=0"`
	CatalogRefreshSchedule  string
	CatalogRefreshPerMinute int `validate:"gte=1"`

	TZName    string
	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=json text"`
	LogFile   string
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	ttl, err := getDuration("CATALOG_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	perMinute, err := getInt("CATALOG_REFRESH_PER_MINUTE", 6)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ListenAddr:              getEnv("LISTEN_ADDR", ":8080"),
		StoreBackend:            getEnv("STORE_BACKEND", "sqlite"),
		DBPath:                  getEnv("DB_PATH", "/data/drinklog.db"),
		DataDir:                 getEnv("DATA_DIR", "/data/store"),
		RedisAddr:               getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPrefix:             getEnv("REDIS_PREFIX", "drinklog:"),
		ConvexURL:               getEnv("CONVEX_URL", ""),
		CatalogTTL:              ttl,
		CatalogRefreshSchedule:  getEnv("CATALOG_REFRESH_SCHEDULE", "@every 1h"),
		CatalogRefreshPerMinute: perMinute,
		TZName:                  getEnv("TZ_NAME", "Local"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		LogFormat:               getEnv("LOG_FORMAT", "json"),
		LogFile:                 getEnv("LOG_FILE", ""),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Location resolves TZName. It defines where a calendar day starts.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TZName)
	if err != nil {
		return nil, fmt.Errorf("invalid TZ_NAME %q: %w", c.TZName, err)
	}
	return loc, nil
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, val, err)
	}
	return d, nil
}

func getInt(key string, defaultVal int) (int, error) {
	val, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, val, err)
	}
	return n, nil
}
