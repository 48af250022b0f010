package config

import (
	"os"
	"strconv"
	"time"
)

type ServerConfig struct {
	Port string
}

type JikanConfig struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

// Enabled reports whether a redis host was configured.
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

func Server() ServerConfig {
	return ServerConfig{Port: GetEnv("PORT", "8080")}
}

// Jikan returns upstream client settings. An empty base URL means the client default.
func Jikan() JikanConfig {
	return JikanConfig{
		BaseURL:   GetEnv("JIKAN_BASE_URL", ""),
		Timeout:   GetDuration("JIKAN_TIMEOUT", 30*time.Second),
		UserAgent: GetEnv("JIKAN_USER_AGENT", "animecat/1.0"),
	}
}

// RateLimit defaults stay under the public Jikan limit of 3 requests per second.
func RateLimit() RateLimitConfig {
	return RateLimitConfig{
		RPS:   GetFloat("JIKAN_RPS", 3),
		Burst: GetInt("JIKAN_BURST", 3),
	}
}

// Redis returns cache settings. The cache is off unless R_HOST is set.
func Redis() RedisConfig {
	return RedisConfig{
		Host:     GetEnv("R_HOST", ""),
		Port:     GetEnv("R_PORT", "6379"),
		Password: GetEnv("R_PASS", ""),
		TTL:      GetDuration("CACHE_TTL", 10*time.Minute),
	}
}

// GetEnv retrieves values from environment files based on the key it matches,
// returns a string (value) if not empty
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultValue
}

func GetFloat(key string, defaultValue float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return f
	}
	return defaultValue
}

func GetDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return defaultValue
}
