package configs

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	devSecret = "dev-secret-change-me"
)

type Config struct {
	AppEnv  string
	AppPort string

	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int

	DBDriver   string
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBNameTest string
	SQLitePath string

	RedisEnabled  bool
	RedisHost     string
	RedisPort     int
	RedisPassword string
	UserCacheTTL  time.Duration

	AdminEmail    string
	AdminPassword string

	LogDir          string
	TranslationsDir string
	CORSOrigins     string
	RateLimitMax    int
}

func (c Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

func LoadConfig() Config {
	// Muat file .env
	if err := godotenv.Load(); err != nil {
		// Hanya log jika tidak dalam mode test
		if os.Getenv("GO_ENV") != "test" {
			log.Println("No .env file found, using default values")
		}
	}

	cfg := Config{
		AppEnv:  getEnv("APP_ENV", EnvDevelopment),
		AppPort: getEnv("APP_PORT", "5000"),

		JWTSecret:  getEnv("JWT_SECRET", ""),
		TokenTTL:   getDuration("TOKEN_TTL", time.Hour),
		BcryptCost: getInt("BCRYPT_COST", 10),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getInt("DB_PORT", 5432),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "team_collab"),
		DBNameTest: getEnv("DB_NAME_TEST", "team_collab_test"),
		SQLitePath: getEnv("SQLITE_PATH", "team_collab.db"),

		RedisEnabled:  getBool("REDIS_ENABLED", false),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getInt("REDIS_PORT", 6379),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		UserCacheTTL:  getDuration("USER_CACHE_TTL", 10*time.Minute),

		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		LogDir:          getEnv("LOG_DIR", "logs"),
		TranslationsDir: getEnv("TRANSLATIONS_DIR", ""),
		CORSOrigins:     getEnv("CORS_ORIGINS", "*"),
		RateLimitMax:    getInt("RATE_LIMIT_MAX", 100),
	}

	if cfg.JWTSecret == "" && !cfg.IsProduction() {
		cfg.JWTSecret = devSecret
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}

func getBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
