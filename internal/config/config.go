package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the server's environment-driven settings.
type Config struct {
	MongoURI      string
	MongoDatabase string
	RedisAddr     string
	Port          string
	JWTSecret     string
	HostUsername  string
	HostPassword  string
	AnalyticsTTL  time.Duration
}

// Load reads configuration from the environment, falling back to local
// development defaults.
func Load() *Config {
	return &Config{
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "formnest"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Port:          getEnv("PORT", "8080"),
		JWTSecret:     getEnv("JWT_SECRET", "super-secret-key-change-in-production"),
		HostUsername:  getEnv("HOST_USERNAME", "admin"),
		HostPassword:  getEnv("HOST_PASSWORD", "password123"),
		AnalyticsTTL:  getEnvDuration("ANALYTICS_CACHE_TTL_SECONDS", 10*time.Minute),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	secs, err := strconv.Atoi(val)
	if err != nil || secs <= 0 {
		return defaultVal
	}
	return time.Duration(secs) * time.Second
}
