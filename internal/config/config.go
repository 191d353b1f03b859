package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	// Generation provider (chat-completions compatible)
	GenAPIKey  string
	GenAPIURL  string
	GenModel   string
	GenTimeout time.Duration

	// Scheduled generation defaults (overridden by the persisted schedule row)
	ScheduleEnabled bool
	ScheduleCron    string

	// Batch generation
	BatchSize  int
	BatchDelay time.Duration

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "glowstories"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:  parseDuration(getEnv("JWT_ACCESS_EXPIRY", "168h"), 168*time.Hour),
		JWTRefreshExpiry: parseDuration(getEnv("JWT_REFRESH_EXPIRY", "720h"), 720*time.Hour),

		GenAPIKey:  getEnv("GEN_API_KEY", ""),
		GenAPIURL:  getEnv("GEN_API_URL", "https://api.deepseek.com/v1/chat/completions"),
		GenModel:   getEnv("GEN_MODEL", "deepseek-chat"),
		GenTimeout: parseDuration(getEnv("GEN_TIMEOUT", "60s"), 60*time.Second),

		ScheduleEnabled: getEnv("SCHEDULE_ENABLED", "false") == "true",
		ScheduleCron:    getEnv("SCHEDULE_CRON", "0 */6 * * *"),

		BatchSize:  parseInt(getEnv("GEN_BATCH_SIZE", "4"), 4),
		BatchDelay: parseDuration(getEnv("GEN_BATCH_DELAY", "2s"), 2*time.Second),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
