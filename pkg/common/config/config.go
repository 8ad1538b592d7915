package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Server
	ServerPort     string        `yaml:"server_port"`
	ServerHost     string        `yaml:"server_host"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	MaxRequestBody int64         `yaml:"max_request_body"`

	// Model artifacts
	ArtifactDir    string `yaml:"artifact_dir"`
	RiskPolicyPath string `yaml:"risk_policy_path"`

	// Redis (prediction result cache)
	RedisHost          string        `yaml:"redis_host"`
	RedisPort          string        `yaml:"redis_port"`
	RedisPassword      string        `yaml:"redis_password"`
	RedisDB            int           `yaml:"redis_db"`
	CacheEnabled       bool          `yaml:"cache_enabled"`
	PredictionCacheTTL time.Duration `yaml:"prediction_cache_ttl"`

	// Kafka (prediction events)
	KafkaBrokers  []string `yaml:"kafka_brokers"`
	KafkaTopic    string   `yaml:"kafka_topic"`
	EventsEnabled bool     `yaml:"events_enabled"`

	// Rate limiting
	RateLimitRPS   int `yaml:"rate_limit_rps"`
	RateLimitBurst int `yaml:"rate_limit_burst"`
}

// Load builds the configuration from environment variables. When CONFIG_FILE
// points at a YAML file, values set there override the environment.
func Load() *Config {
	cfg := &Config{
		ServerPort:     getEnv("SERVER_PORT", "8000"),
		ServerHost:     getEnv("SERVER_HOST", "0.0.0.0"),
		ReadTimeout:    getDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout:   getDuration("WRITE_TIMEOUT", 30*time.Second),
		MaxRequestBody: int64(getIntEnv("MAX_REQUEST_BODY_BYTES", 1024*1024)),

		ArtifactDir:    getEnv("ARTIFACT_DIR", "linear-regression"),
		RiskPolicyPath: getEnv("RISK_POLICY_PATH", ""),

		RedisHost:          getEnv("REDIS_HOST", "localhost"),
		RedisPort:          getEnv("REDIS_PORT", "6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            getIntEnv("REDIS_DB", 0),
		CacheEnabled:       getBoolEnv("PREDICTION_CACHE_ENABLED", false),
		PredictionCacheTTL: getDuration("PREDICTION_CACHE_TTL", 5*time.Minute),

		KafkaBrokers:  getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
		KafkaTopic:    getEnv("KAFKA_TOPIC", "survival.predictions"),
		EventsEnabled: getBoolEnv("PREDICTION_EVENTS_ENABLED", false),

		RateLimitRPS:   getIntEnv("RATE_LIMIT_RPS", 50),
		RateLimitBurst: getIntEnv("RATE_LIMIT_BURST", 100),
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		cfg.applyFile(path)
	}

	return cfg
}

func (c *Config) applyFile(path string) {
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return
	}
	// Unmarshal over the env-derived values so the file only replaces
	// keys it actually sets.
	_ = yaml.Unmarshal(content, c)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getStringSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
