package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	LogFormat        string
	OTELCollectorURL string

	SearchKeywords  []string
	SearchLocation  string
	MaxJobs         int
	Headless        bool
	PageLoadTimeout time.Duration
	SettleDelay     time.Duration
	ScrollDelay     time.Duration

	RawDir          string
	PollingInterval time.Duration

	PublishToNATS   bool
	NATSURL         string
	NATSConnTimeout time.Duration
	RawSubject      string
	PublishRate     float64
	PublishWorkers  int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration
}

// LoadConfig reads the environment, after loading a .env file when one is
// present in the working directory.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		LogFormat:        getEnvString("LOG_FORMAT", "console"),
		OTELCollectorURL: getEnvString("OTEL_COLLECTOR_URL", ""),

		SearchKeywords:  getEnvList("SEARCH_KEYWORDS", []string{"software engineer"}),
		SearchLocation:  getEnvString("SEARCH_LOCATION", "United States"),
		MaxJobs:         getEnvInt("MAX_JOBS", 30),
		Headless:        getEnvBool("HEADLESS", true),
		PageLoadTimeout: getEnvDuration("PAGE_LOAD_TIMEOUT", 20*time.Second),
		SettleDelay:     getEnvDuration("SETTLE_DELAY", 5*time.Second),
		ScrollDelay:     getEnvDuration("SCROLL_DELAY", 3*time.Second),

		RawDir:          getEnvString("RAW_DIR", "data/raw"),
		PollingInterval: getEnvDuration("POLLING_INTERVAL", 0),

		PublishToNATS:   getEnvBool("PUBLISH_TO_NATS", false),
		NATSURL:         getEnvString("NATS_URL", "nats://localhost:4222"),
		NATSConnTimeout: getEnvDuration("NATS_CONN_TIMEOUT", 10*time.Second),
		RawSubject:      getEnvString("RAW_SUBJECT", "jobs.raw"),
		PublishRate:     getEnvFloat("PUBLISH_RATE", 20),
		PublishWorkers:  getEnvInt("PUBLISH_WORKERS", 4),

		RedisAddr:     getEnvString("REDIS_ADDR", ""),
		RedisPassword: getEnvString("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		CacheTTL:      getEnvDuration("CACHE_TTL", time.Hour),
	}

	return config, nil
}

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
