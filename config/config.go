package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	CORS      CORSConfig
	Providers ProvidersConfig
	ML        MLConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins string
}

// ProvidersConfig holds credentials for the external weather and traffic APIs.
type ProvidersConfig struct {
	WeatherAPIKey string
	TomTomAPIKey  string
}

// MLConfig tunes the per-user risk classifier.
type MLConfig struct {
	MinTrainingRecords int
	ForestSize         int
	Seed               int
}

func (d DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

func LoadConfig() (*Config, error) {
	serverPort, err := getIntEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	dbPort, err := getIntEnv("DB_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	jwtExpiry, err := getIntEnv("JWT_EXPIRY_HOURS", 24)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY_HOURS: %w", err)
	}

	redisPort, err := getIntEnv("REDIS_PORT", 6379)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_PORT: %w", err)
	}

	redisDB, err := getIntEnv("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	minRecords, err := getIntEnv("ML_MIN_TRAINING_RECORDS", 30)
	if err != nil {
		return nil, fmt.Errorf("invalid ML_MIN_TRAINING_RECORDS: %w", err)
	}

	forestSize, err := getIntEnv("ML_FOREST_SIZE", 200)
	if err != nil {
		return nil, fmt.Errorf("invalid ML_FOREST_SIZE: %w", err)
	}

	seed, err := getIntEnv("ML_SEED", 42)
	if err != nil {
		return nil, fmt.Errorf("invalid ML_SEED: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: serverPort,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "saferoad"),
			Password: getEnv("DB_PASSWORD", "saferoad_dev_password"),
			Name:     getEnv("DB_NAME", "saferoad"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", "saferoad-dev-secret"),
			ExpiryHours: jwtExpiry,
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     redisPort,
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Providers: ProvidersConfig{
			WeatherAPIKey: getEnv("WEATHER_API_KEY", ""),
			TomTomAPIKey:  getEnv("TOMTOM_API_KEY", ""),
		},
		ML: MLConfig{
			MinTrainingRecords: minRecords,
			ForestSize:         forestSize,
			Seed:               seed,
		},
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getIntEnv(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}
