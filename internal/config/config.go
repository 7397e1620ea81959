package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const minJWTSecretBytes = 32

// Config holds every runtime setting read from the environment.
type Config struct {
	Port    string
	GinMode string

	DatabaseURL         string
	DBMaxOpenConns      int
	DBMaxIdleConns      int
	DBConnMaxIdleTime   time.Duration
	DBConnMaxLifetime   time.Duration
	MigrationsEnabled   bool
	JWTSecret           string
	BcryptCost          int
	MonitoringAPIKey    string
	CORSOrigin          string
	ShutdownGracePeriod time.Duration
}

// Load reads the configuration and fails when a required value is missing.
func Load() (Config, error) {
	cfg := Config{
		Port:                getEnvOrDefault("PORT", "8080"),
		GinMode:             getEnvOrDefault("GIN_MODE", "release"),
		DatabaseURL:         databaseURL(),
		DBMaxOpenConns:      getIntEnvOrDefault("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:      getIntEnvOrDefault("DB_MAX_IDLE_CONNS", 25),
		DBConnMaxIdleTime:   time.Duration(getIntEnvOrDefault("DB_CONN_MAX_IDLE_MINUTES", 5)) * time.Minute,
		DBConnMaxLifetime:   time.Duration(getIntEnvOrDefault("DB_CONN_MAX_LIFETIME_MINUTES", 30)) * time.Minute,
		MigrationsEnabled:   getBoolEnvOrDefault("MIGRATIONS_ENABLED", true),
		JWTSecret:           strings.TrimSpace(os.Getenv("JWT_SECRET")),
		BcryptCost:          getIntEnvOrDefault("BCRYPT_COST", 10),
		MonitoringAPIKey:    strings.TrimSpace(os.Getenv("MONITORING_API_KEY")),
		CORSOrigin:          getEnvOrDefault("CORS_ORIGIN", "*"),
		ShutdownGracePeriod: time.Duration(getIntEnvOrDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
	}

	if cfg.JWTSecret == "" {
		return cfg, errors.New("JWT_SECRET is required")
	}
	if len(cfg.JWTSecret) < minJWTSecretBytes {
		return cfg, fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretBytes)
	}

	return cfg, nil
}

// databaseURL prefers DATABASE_URL and falls back to the individual DB_* variables.
func databaseURL() string {
	if raw := strings.TrimSpace(os.Getenv("DATABASE_URL")); raw != "" {
		return raw
	}

	host := getEnvOrDefault("DB_HOST", "localhost")
	port := getEnvOrDefault("DB_PORT", "5432")
	user := getEnvOrDefault("DB_USER", "postgres")
	password := getEnvOrDefault("DB_PASSWORD", "password")
	dbName := getEnvOrDefault("DB_NAME", "devnetwork")
	sslMode := getEnvOrDefault("DB_SSLMODE", "disable")

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		url.QueryEscape(user), url.QueryEscape(password), host, port, dbName, sslMode)
}

// getEnvOrDefault returns the value of an environment variable or a default value
func getEnvOrDefault(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value != "" {
		return value
	}
	return defaultValue
}

func getIntEnvOrDefault(key string, defaultValue int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		log.Printf("Invalid %s=%q, using default %d", key, raw, defaultValue)
		return defaultValue
	}

	return value
}

func getBoolEnvOrDefault(key string, defaultValue bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %t", key, raw, defaultValue)
		return defaultValue
	}

	return value
}
