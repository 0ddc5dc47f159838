package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// AttendanceConfig holds the business-policy knobs: status thresholds, the
// reference offset for day bucketing, and the empty-filter behavior.
type AttendanceConfig struct {
	PresentMinHours   float64
	HalfDayMinHours   float64
	UTCOffsetMinutes  int
	StrictEmptyFilter bool
}

func Load() (*Config, error) {
	// .env is optional; environment variables take precedence either way
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Attendance policy configuration
	presentMin, err := strconv.ParseFloat(getEnv("PRESENT_MIN_HOURS", "8"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid PRESENT_MIN_HOURS: %w", err)
	}
	halfDayMin, err := strconv.ParseFloat(getEnv("HALF_DAY_MIN_HOURS", "4"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid HALF_DAY_MIN_HOURS: %w", err)
	}
	offsetMinutes, err := strconv.Atoi(getEnv("ATTENDANCE_UTC_OFFSET_MINUTES", "330"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_UTC_OFFSET_MINUTES: %w", err)
	}
	strictEmpty, err := strconv.ParseBool(getEnv("FILTER_STRICT_EMPTY", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid FILTER_STRICT_EMPTY: %w", err)
	}

	config.Attendance = AttendanceConfig{
		PresentMinHours:   presentMin,
		HalfDayMinHours:   halfDayMin,
		UTCOffsetMinutes:  offsetMinutes,
		StrictEmptyFilter: strictEmpty,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Attendance.HalfDayMinHours > c.Attendance.PresentMinHours {
		return fmt.Errorf("HALF_DAY_MIN_HOURS must not exceed PRESENT_MIN_HOURS")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
