package database

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Host          string
	Port          string
	User          string
	Password      string
	DBName        string
	SSLMode       string
	MigrationsDir string

	RedisURL      string
	RedisPassword string
	RedisDB       int

	HTTPAddr   string
	GraphQLURL string

	HeartbeatSchedule      string
	LowStockSchedule       string
	OrderRemindersSchedule string

	HeartbeatLogFile      string
	LowStockLogFile       string
	OrderRemindersLogFile string
}

func LoadConfig() (*Config, error) {
	// .env is optional, real deployments configure the environment directly
	_ = godotenv.Load()

	return &Config{
		Host:          getEnv("DB_HOST", "localhost"),
		Port:          getEnv("DB_PORT", "5432"),
		User:          getEnv("DB_USER", "app_user"),
		Password:      getEnv("DB_PASSWORD", "postgres_password"),
		DBName:        getEnv("DB_NAME", "crm_db"),
		SSLMode:       getEnv("DB_SSLMODE", "disable"),
		MigrationsDir: getEnv("DB_MIGRATIONS_DIR", "./internal/database/migrations"),

		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		HTTPAddr:   getEnv("HTTP_ADDR", ":8000"),
		GraphQLURL: getEnv("GRAPHQL_URL", "http://localhost:8000/graphql"),

		HeartbeatSchedule:      getEnv("HEARTBEAT_SCHEDULE", "*/5 * * * *"),
		LowStockSchedule:       getEnv("LOW_STOCK_SCHEDULE", "0 23 * * *"),
		OrderRemindersSchedule: getEnv("ORDER_REMINDERS_SCHEDULE", "0 8 * * *"),

		HeartbeatLogFile:      getEnv("HEARTBEAT_LOG_FILE", "/tmp/crm_heartbeat_log.txt"),
		LowStockLogFile:       getEnv("LOW_STOCK_LOG_FILE", "/tmp/low_stock_updates_log.txt"),
		OrderRemindersLogFile: getEnv("ORDER_REMINDERS_LOG_FILE", "/tmp/order_reminders_log.txt"),
	}, nil
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
