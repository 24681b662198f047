package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	TokenBackendFile  = "file"
	TokenBackendRedis = "redis"

	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	// Tracker client
	APIBaseURL        string
	HTTPTimeout       time.Duration
	TokenBackend      string
	TokenDir          string
	TokenSessionTTL   time.Duration
	TokenRedisKeyBase string
	HistoryFile       string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LogLevel  string
	LogFormat string

	// Reference API server
	APIPort string
	JWTKey  []byte
	JWTExp  time.Duration
	Storage string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBConnStr  string
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		APIBaseURL:        getEnv("TRACKER_API_URL", "http://localhost:8080"),
		HTTPTimeout:       time.Duration(getEnvAsInt("TRACKER_HTTP_TIMEOUT_SECONDS", 15)) * time.Second,
		TokenBackend:      getEnv("TOKEN_BACKEND", TokenBackendFile),
		TokenDir:          getEnv("TOKEN_DIR", defaultTokenDir()),
		TokenSessionTTL:   time.Duration(getEnvAsInt("TOKEN_SESSION_TTL_HOURS", 12)) * time.Hour,
		TokenRedisKeyBase: getEnv("TOKEN_REDIS_KEY", "leetcode_tracker:token"),
		HistoryFile:       getEnv("HISTORY_FILE", filepath.Join(os.TempDir(), "leetcode_tracker_history")),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		RedisDB:           getEnvAsInt("REDIS_DB", 0),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "text"),

		APIPort:    getEnv("API_PORT", "8080"),
		JWTKey:     []byte(getEnv("JWT_SECRET", "defaultsecret")),
		JWTExp:     time.Duration(getEnvAsInt("JWT_EXPIRATION_HOURS", 72)) * time.Hour,
		Storage:    getEnv("STORAGE", StorageMemory),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "user"),
		DBPassword: getEnv("DB_PASSWORD", "password"),
		DBName:     getEnv("DB_NAME", "leetcode_tracker_db"),
		DBSslMode:  getEnv("DB_SSLMODE", "disable"),
	}

	cfg.DBConnStr = "host=" + cfg.DBHost +
		" port=" + cfg.DBPort +
		" user=" + cfg.DBUser +
		" password=" + cfg.DBPassword +
		" dbname=" + cfg.DBName +
		" sslmode=" + cfg.DBSslMode

	return cfg
}

func defaultTokenDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "leetcode_tracker")
	}
	return filepath.Join(dir, "leetcode_tracker")
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
