package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"lendcheck/internal/core/engine"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Policy   PolicyConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	RefreshSecret    string
	AccessTokenMins  int
	RefreshTokenDays int
}

// RedisConfig holds the evaluation cache configuration
type RedisConfig struct {
	Enabled bool
	Addr    string
}

// PolicyConfig holds the lending-policy calibration. Every knob maps to a
// field on engine.Policy so risk tuning never needs a code change.
type PolicyConfig struct {
	MaxDTIRatio      float64
	BaseWeightFactor float64
	DTIWeight        float64
	ExposureWeight   float64
	LowThreshold     float64
	HighThreshold    float64
	ScanSchedule     string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "3000"),
		Database: loadDatabaseConfig(),
		JWT:      loadJWTConfig(),
		Redis:    loadRedisConfig(),
		Policy:   loadPolicyConfig(),
	}

	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		User:     getEnv("DB_USER", "root"),
		Password: getEnv("DB_PASS", ""),
		DBName:   getEnv("DB_NAME", "lendcheck"),
	}
}

func loadJWTConfig() JWTConfig {
	accessMins, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "15"))
	refreshDays, _ := strconv.Atoi(getEnv("REFRESH_TOKEN_DAYS", "7"))

	return JWTConfig{
		Secret:           getEnv("JWT_SECRET", "default_secret"),
		RefreshSecret:    getEnv("JWT_REFRESH_SECRET", "default_refresh_secret"),
		AccessTokenMins:  accessMins,
		RefreshTokenDays: refreshDays,
	}
}

func loadRedisConfig() RedisConfig {
	enabled, _ := strconv.ParseBool(getEnv("REDIS_ENABLED", "false"))
	return RedisConfig{
		Enabled: enabled,
		Addr:    getEnv("REDIS_ADDR", "localhost:6379"),
	}
}

func loadPolicyConfig() PolicyConfig {
	return PolicyConfig{
		MaxDTIRatio:      getEnvFloat("POLICY_MAX_DTI_RATIO", 0.50),
		BaseWeightFactor: getEnvFloat("POLICY_BASE_WEIGHT_FACTOR", 4),
		DTIWeight:        getEnvFloat("POLICY_DTI_WEIGHT", 0.4),
		ExposureWeight:   getEnvFloat("POLICY_EXPOSURE_WEIGHT", 0.3),
		LowThreshold:     getEnvFloat("POLICY_RISK_LOW_THRESHOLD", 35),
		HighThreshold:    getEnvFloat("POLICY_RISK_HIGH_THRESHOLD", 65),
		ScanSchedule:     getEnv("SCAN_CRON_SCHEDULE", "0 2 * * *"),
	}
}

// EnginePolicy converts the policy section into the engine's calibration
func (c *Config) EnginePolicy() engine.Policy {
	return engine.Policy{
		MaxDTIRatio:      decimal.NewFromFloat(c.Policy.MaxDTIRatio),
		BaseWeightFactor: decimal.NewFromFloat(c.Policy.BaseWeightFactor),
		DTIWeight:        decimal.NewFromFloat(c.Policy.DTIWeight),
		ExposureWeight:   decimal.NewFromFloat(c.Policy.ExposureWeight),
		LowThreshold:     decimal.NewFromFloat(c.Policy.LowThreshold),
		HighThreshold:    decimal.NewFromFloat(c.Policy.HighThreshold),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvFloat gets a float environment variable with default value
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Printf("⚠️ Invalid float for %s, using default %v", key, defaultValue)
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" && c.IsDev() {
		return "*"
	}
	return origins
}
