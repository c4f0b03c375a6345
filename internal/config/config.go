package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPPort    string
	LogLevel    string

	USSDAPIKey string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	Queue     QueueConfig
	Scheduler SchedulerConfig
	AutoDebit AutoDebitConfig
}

// QueueConfig controls the redis-backed job queue and its worker pool.
type QueueConfig struct {
	JobsKey         string
	FailedKey       string
	FailedRetention int64
	Concurrency     int
	PopTimeout      time.Duration
}

// SchedulerConfig carries the cron expressions for the premium sweeps.
type SchedulerConfig struct {
	AutoDebitCron string
	RetryCron     string
	LockTTL       time.Duration
}

// AutoDebitConfig bounds calls to the external debit gateway.
type AutoDebitConfig struct {
	GatewayTimeout time.Duration
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "belife"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),
		HTTPPort:    getenv("HTTP_PORT", "3500"),
		LogLevel:    getenv("LOG_LEVEL", "info"),

		USSDAPIKey: strings.TrimSpace(getenv("USSD_API_KEY", "")),

		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "belife"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 25),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 30),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getenvInt("REDIS_DB", 0),

		Queue: QueueConfig{
			JobsKey:         getenv("QUEUE_JOBS_KEY", "belife:jobs"),
			FailedKey:       getenv("QUEUE_FAILED_KEY", "belife:jobs:failed"),
			FailedRetention: int64(getenvInt("QUEUE_FAILED_RETENTION", 1000)),
			Concurrency:     getenvInt("QUEUE_CONCURRENCY", 60),
			PopTimeout:      getenvDuration("QUEUE_POP_TIMEOUT", 5*time.Second),
		},
		Scheduler: SchedulerConfig{
			AutoDebitCron: getenv("SCHEDULER_AUTODEBIT_CRON", "0 0 27 * *"),
			RetryCron:     getenv("SCHEDULER_RETRY_CRON", "0 0 1,5 * *"),
			LockTTL:       getenvDuration("SCHEDULER_LOCK_TTL", time.Hour),
		},
		AutoDebit: AutoDebitConfig{
			GatewayTimeout: getenvDuration("AUTODEBIT_GATEWAY_TIMEOUT", 30*time.Second),
		},
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvDuration(key string, def time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return parsed
}
