package config

import (
	"fmt"
	"github.com/joho/godotenv"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App struct {
		Name string
		Env  string
	}

	API struct {
		Host string
		Port string
	}

	DB struct {
		Host     string
		Port     int
		User     string
		Password string
		Name     string
		SSLMode  string
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	FDI struct {
		APIKey      string
		APISecret   string
		Sandbox     bool
		SenderID    string
		DLRCallback string
	}

	Cache struct {
		BalanceTTL time.Duration
		StatsTTL   time.Duration
		SentRefTTL time.Duration
	}

	Scheduler struct {
		Interval     time.Duration
		BatchTimeout time.Duration
	}

	Worker struct {
		BatchSize         int
		MaxWorkers        int
		PerMessageTimeout time.Duration
	}
}

func New() *Config {
	_ = godotenv.Load()

	cfg := &Config{}

	// App
	cfg.App.Name = getEnv("APP_NAME", "gofdisms")
	cfg.App.Env = getEnv("APP_ENV", "development")

	// API
	cfg.API.Host = getEnv("API_HOST", "0.0.0.0")
	cfg.API.Port = getEnv("API_PORT", "8080")

	// DB
	cfg.DB.Host = getEnv("DB_HOST", "db")
	cfg.DB.Port = getInt("DB_PORT", 5432)
	cfg.DB.User = getEnv("DB_USER", "root")
	cfg.DB.Password = getEnv("DB_PASSWORD", "123456")
	cfg.DB.Name = getEnv("DB_NAME", "db_fdi_outbox")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	// Redis
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "redis:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getInt("REDIS_DB", 0)

	// FDI provider. Sandbox defaults to true so a misconfigured deploy
	// never spends production credits by accident.
	cfg.FDI.APIKey = getEnv("FDI_API_KEY", "")
	cfg.FDI.APISecret = getEnv("FDI_API_SECRET", "")
	cfg.FDI.Sandbox = isTruthy(getEnv("FDI_SANDBOX", "true"))
	cfg.FDI.SenderID = getEnv("FDI_SENDER_ID", "")
	cfg.FDI.DLRCallback = getEnv("FDI_DLR_CALLBACK", "")

	// Cache TTLs
	cfg.Cache.BalanceTTL = getDuration("CACHE_BALANCE_TTL", 30*time.Second)
	cfg.Cache.StatsTTL = getDuration("CACHE_STATS_TTL", 1*time.Minute)
	cfg.Cache.SentRefTTL = getDuration("CACHE_SENT_REF_TTL", 24*time.Hour)

	// Scheduler
	cfg.Scheduler.Interval = getDuration("SCHEDULER_INTERVAL", 5*time.Second)
	cfg.Scheduler.BatchTimeout = getDuration("SCHEDULER_BATCH_TIMEOUT", 30*time.Second)

	// Worker / message processing
	cfg.Worker.BatchSize = getInt("MESSAGE_BATCH_SIZE", 100)
	cfg.Worker.MaxWorkers = getInt("MESSAGE_MAX_WORKERS", 4)
	cfg.Worker.PerMessageTimeout = getDuration("MESSAGE_PER_MESSAGE_TIMEOUT", 5*time.Second)

	return cfg
}

func getEnv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

func getInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host,
		c.DB.Port,
		c.DB.User,
		c.DB.Password,
		c.DB.Name,
		c.DB.SSLMode,
	)
}
