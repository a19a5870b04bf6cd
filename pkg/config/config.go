package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Analytics AnalyticsConfig
	OTEL      OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// AnalyticsConfig holds the tunable thresholds of the signal engine.
// Every value can be overridden per deployment; defaults match the
// calibration used by the municipal pilot.
type AnalyticsConfig struct {
	MinCaseVolume             float64
	SpikeMultiplier           float64
	RollingWindowPeriods      int
	AbsoluteOutbreakThreshold float64
	RecentWindowSize          int
	BedSafetyMargin           float64
	ICUSafetyMargin           float64
	BedCrisisHours            float64
	ICUCrisisHours            float64
	WardCaseCeiling           float64
	RiskCriticalCutoff        float64
	RiskHighCutoff            float64
	RiskMediumCutoff          float64
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "health_intelligence"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Analytics: AnalyticsConfig{
			MinCaseVolume:             getEnvAsFloat("MIN_CASE_VOLUME", 75),
			SpikeMultiplier:           getEnvAsFloat("SPIKE_MULTIPLIER", 1.75),
			RollingWindowPeriods:      getEnvAsInt("ROLLING_WINDOW_PERIODS", 3),
			AbsoluteOutbreakThreshold: getEnvAsFloat("ABSOLUTE_OUTBREAK_THRESHOLD", 200),
			RecentWindowSize:          getEnvAsInt("RECENT_WINDOW_SIZE", 50),
			BedSafetyMargin:           getEnvAsFloat("BED_SAFETY_MARGIN", 1.2),
			ICUSafetyMargin:           getEnvAsFloat("ICU_SAFETY_MARGIN", 1.5),
			BedCrisisHours:            getEnvAsFloat("BED_CRISIS_HOURS", 24),
			ICUCrisisHours:            getEnvAsFloat("ICU_CRISIS_HOURS", 12),
			WardCaseCeiling:           getEnvAsFloat("WARD_CASE_CEILING", 200),
			RiskCriticalCutoff:        getEnvAsFloat("RISK_CRITICAL_CUTOFF", 75),
			RiskHighCutoff:            getEnvAsFloat("RISK_HIGH_CUTOFF", 50),
			RiskMediumCutoff:          getEnvAsFloat("RISK_MEDIUM_CUTOFF", 25),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "health-intelligence"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}, nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
