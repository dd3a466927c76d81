package config

import (
	"os"
	"time"
)

type Config struct {
	Port              string
	Env               string
	PostgresConnStr   string
	RedisAddr         string
	RedisPassword     string
	JWTSecret         string
	ReconcileInterval time.Duration
}

func Load() *Config {
	return &Config{
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("ENV", "development"),
		PostgresConnStr:   getEnv("POSTGRES_CONN_STR", ""),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		JWTSecret:         getEnv("JWT_SECRET", "supersecretjwtkey"),
		ReconcileInterval: getDurationEnv("RECONCILE_INTERVAL", 0),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
