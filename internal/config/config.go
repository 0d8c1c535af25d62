package config

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort     string
	MySQLDSN       string
	DBMaxOpenConns int
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	JWTSecret      string
	WebRoot        string
	SwaggerHost    string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		MySQLDSN:       getEnv("MYSQL_DSN", "root:password@tcp(localhost:3306)/eldenbuilds?charset=utf8mb4&parseTime=True&loc=Local"),
		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		RedisPass:      os.Getenv("REDIS_PASSWORD"),
		JWTSecret:      loadJWTSecret(),
		WebRoot:        getEnv("WEB_ROOT", "web"),
		SwaggerHost:    os.Getenv("SWAGGER_HOST"),
	}
}

// loadJWTSecret reads JWT_SECRET from the environment. There is no
// baked-in fallback: when unset, a random per-process secret is
// generated so tokens stay unforgeable but do not survive a restart.
func loadJWTSecret() string {
	if v := os.Getenv("JWT_SECRET"); v != "" {
		return v
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatalf("generate jwt secret: %v", err)
	}
	log.Println("JWT_SECRET not set, using an ephemeral secret; sessions will not survive a restart")
	return hex.EncodeToString(buf)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
