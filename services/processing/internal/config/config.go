package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	LogFormat        string
	OTELCollectorURL string
	MetricsAddr      string

	// File pipeline
	RawInputFiles      []string
	CleanedDir         string
	AnnotatedDir       string
	KeywordsFile       string
	EducationFullTable bool

	NATSURL         string
	NATSConnTimeout time.Duration
	RawSubject      string
	QueueGroup      string

	ClickHouseDSN          string
	ClickHouseMaxOpenConns int
	ClickHouseMaxIdleConns int
	ClickHouseConnMaxLife  time.Duration
	ClickHouseUsername     string
	ClickHousePassword     string
	ClickHouseDatabase     string
	ClickHouseMigrate      bool

	ProcessingTimeout time.Duration
}

// LoadConfig reads the environment, after loading a .env file when one is
// present in the working directory.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		LogFormat:        getEnvString("LOG_FORMAT", "json"),
		OTELCollectorURL: getEnvString("OTEL_COLLECTOR_URL", ""),
		MetricsAddr:      getEnvString("METRICS_ADDR", ":9102"),

		RawInputFiles:      getEnvList("RAW_INPUT_FILES", []string{"data/raw/jobs_raw.json", "data/raw/test_jobs.json"}),
		CleanedDir:         getEnvString("CLEANED_DIR", "data/cleaned"),
		AnnotatedDir:       getEnvString("ANNOTATED_DIR", "data/annotated"),
		KeywordsFile:       getEnvString("KEYWORDS_FILE", ""),
		EducationFullTable: getEnvBool("EDUCATION_FULL_TABLE", false),

		NATSURL:         getEnvString("NATS_URL", "nats://localhost:4222"),
		NATSConnTimeout: getEnvDuration("NATS_CONN_TIMEOUT", 10*time.Second),
		RawSubject:      getEnvString("RAW_SUBJECT", "jobs.raw"),
		QueueGroup:      getEnvString("QUEUE_GROUP", "processing-service"),

		ClickHouseDSN:          getEnvString("CLICKHOUSE_DSN", "localhost:9000"),
		ClickHouseMaxOpenConns: getEnvInt("CLICKHOUSE_MAX_OPEN_CONNS", 10),
		ClickHouseMaxIdleConns: getEnvInt("CLICKHOUSE_MAX_IDLE_CONNS", 5),
		ClickHouseConnMaxLife:  getEnvDuration("CLICKHOUSE_CONN_MAX_LIFE", time.Hour),
		ClickHouseUsername:     getEnvString("CLICKHOUSE_USERNAME", "default"),
		ClickHousePassword:     getEnvString("CLICKHOUSE_PASSWORD", ""),
		ClickHouseDatabase:     getEnvString("CLICKHOUSE_DATABASE", "jobtagger"),
		ClickHouseMigrate:      getEnvBool("CLICKHOUSE_MIGRATE", true),

		ProcessingTimeout: getEnvDuration("PROCESSING_TIMEOUT", 30*time.Second),
	}

	return config, nil
}

// CleanedFile is the JSON the cleaner writes and the annotator reads.
func (c *Config) CleanedFile() string {
	return filepath.Join(c.CleanedDir, "jobs_cleaned.json")
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

// getEnvList splits a comma separated value, dropping blanks.
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
