package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort       string
	AppMode       string
	DatabaseDSN   string
	JWTSecret     string
	TokenTTL      time.Duration
	BcryptCost    int
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	EthRPCURL     string
}

// LoadConfig reads configuration from the environment, loading a .env file
// first if one exists. The signing secret has no default: startup must fail
// when it is absent.
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	secret := getEnv("JWT_SECRET", "")
	if secret == "" {
		return nil, errors.New("JWT_SECRET not set")
	}

	return &Config{
		AppPort:       getEnv("APP_PORT", "8080"),
		AppMode:       getEnv("APP_MODE", "debug"),
		DatabaseDSN:   getEnv("DATABASE_DSN", ""),
		JWTSecret:     secret,
		TokenTTL:      time.Duration(getEnvAsInt("TOKEN_TTL_MIN", 30)) * time.Minute,
		BcryptCost:    getEnvAsInt("BCRYPT_COST", 0),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		EthRPCURL:     getEnv("ETH_RPC_URL", ""),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
