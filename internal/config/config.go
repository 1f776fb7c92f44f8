package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port             string
	StorageDriver    string
	PostgresDSN      string
	RedisAddr        string
	RedisPassword    string
	MongoURI         string
	MongoDB          string
	MinioEndpoint    string
	MinioAccessKey   string
	MinioSecretKey   string
	MinioBucket      string
	MinioUseSSL      bool
	AllowedOrigins   []string
	CookieSecure     bool
	DefaultDailyGoal float64
}

// Load reads configuration from the environment, after applying a .env
// file when one is present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: .env not loaded: %v", err)
	}

	dsn := getenv("POSTGRES_DSN", "")
	driver := DriverPostgres
	if dsn == "" {
		driver = DriverMemory
	}

	return &Config{
		Port:             getenv("PORT", "8080"),
		StorageDriver:    getenv("STORAGE_DRIVER", driver),
		PostgresDSN:      dsn,
		RedisAddr:        getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getenv("REDIS_PASSWORD", ""),
		MongoURI:         getenv("MONGO_URI", ""),
		MongoDB:          getenv("MONGO_DB", "hydrate"),
		MinioEndpoint:    getenv("MINIO_ENDPOINT", ""),
		MinioAccessKey:   getenv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey:   getenv("MINIO_SECRET_KEY", ""),
		MinioBucket:      getenv("MINIO_BUCKET", "hydrate-exports"),
		MinioUseSSL:      getenv("MINIO_USE_SSL", "false") == "true",
		AllowedOrigins:   splitList(getenv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")),
		CookieSecure:     getenv("COOKIE_SECURE", "false") == "true",
		DefaultDailyGoal: getfloat("DAILY_GOAL_DEFAULT", 2.5),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getfloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(getenv(key, ""), 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
