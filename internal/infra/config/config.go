package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config aggregates application settings loaded from environment
// variables. The admin allow-list and WhatsApp number live here rather
// than as package-level constants so deployments can differ.
type Config struct {
	Env      string
	HTTPAddr string

	StoreMode string // "mongo" or "memory"
	MongoURI  string
	MongoDB   string

	KafkaBrokers     []string
	KafkaTopicPrefix string

	AdminEmails       []string
	AdminPasswordHash string
	AdminContactEmail string
	WhatsAppNumber    string
	SessionTTL        time.Duration

	S3Endpoint       string
	S3PublicEndpoint string
	S3AccessKey      string
	S3SecretKey      string
	S3Bucket         string
	S3UseSSL         bool
}

const (
	StoreModeMongo  = "mongo"
	StoreModeMemory = "memory"
)

// Load parses configuration from the current environment.
func Load() (Config, error) {
	cfg := Config{
		Env:               getEnv("APP_ENV", "dev"),
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		StoreMode:         strings.ToLower(getEnv("STORE_MODE", StoreModeMongo)),
		MongoURI:          os.Getenv("MONGO_URI"),
		MongoDB:           getEnv("MONGO_DB", "villastay"),
		KafkaTopicPrefix:  getEnv("KAFKA_TOPIC_PREFIX", ""),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		AdminContactEmail: getEnv("ADMIN_CONTACT_EMAIL", "admin@villastay.local"),
		WhatsAppNumber:    os.Getenv("WHATSAPP_NUMBER"),
		S3Endpoint:        getEnv("S3_ENDPOINT", "http://localhost:9000"),
		S3PublicEndpoint:  getEnv("S3_PUBLIC_ENDPOINT", ""),
		S3AccessKey:       getEnv("S3_ACCESS_KEY", "minioadmin"),
		S3SecretKey:       getEnv("S3_SECRET_KEY", "minioadmin"),
		S3Bucket:          getEnv("S3_BUCKET", "villastay-photos"),
	}

	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = splitAndTrim(brokers)
	}
	cfg.AdminEmails = splitAndTrim(strings.ToLower(getEnv("ADMIN_EMAILS", "")))

	sessionTTL, err := parseDurationEnv("SESSION_TTL", 12*time.Hour)
	if err != nil {
		return Config{}, err
	}
	cfg.SessionTTL = sessionTTL

	useSSL, err := parseBoolEnv("S3_USE_SSL", false)
	if err != nil {
		return Config{}, err
	}
	cfg.S3UseSSL = useSSL
	if cfg.S3PublicEndpoint == "" {
		cfg.S3PublicEndpoint = cfg.S3Endpoint
	}

	switch cfg.StoreMode {
	case StoreModeMongo:
		if cfg.MongoURI == "" {
			return Config{}, fmt.Errorf("MONGO_URI is required when STORE_MODE=%s", StoreModeMongo)
		}
	case StoreModeMemory:
	default:
		return Config{}, fmt.Errorf("invalid STORE_MODE: %q", cfg.StoreMode)
	}

	return cfg, nil
}

// IsAdminEmail reports whether the email is on the back-office
// allow-list. Matching is case-insensitive.
func (c Config) IsAdminEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, allowed := range c.AdminEmails {
		if allowed == email {
			return true
		}
	}
	return false
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitAndTrim(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}

func parseBoolEnv(key string, def bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "t", "true", "yes", "y", "on":
		return true, nil
	case "0", "f", "false", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid %s boolean: %q", key, raw)
	}
}
