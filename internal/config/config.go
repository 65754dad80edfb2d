package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	DatabaseURL  string
	JWTSecret    string
	TokenTTL     time.Duration
	RequireAuth  bool
	AllowOrigins []string

	GoogleAudience string

	LogMode         string
	LogLevel        string
	LogstashTCPAddr string

	OTPTTL     time.Duration
	OTPLength  int
	OTPBackend string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MailProvider   string
	MailFrom       string
	MailFromName   string
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	SendGridAPIKey string

	MinIOEndpoint      string
	MinIOAccessKey     string
	MinIOSecretKey     string
	MinIOUseSSL        bool
	MinIOBucketProfile string
	MinIOPublicURL     string

	ProfileImageMaxBytes     int64
	ProfileImageMaxDimension int

	RateLimitPerMinute int
	OTLPEndpoint       string
	SeedDestinations   bool
}

// EnvFileLoaded reports whether Load found a .env file. Callers log the result
// once a logger exists.
var EnvFileLoaded bool

func Load() Config {
	EnvFileLoaded = godotenv.Load() == nil

	return Config{
		Port:         getenv("PORT", "3000"),
		DatabaseURL:  getenv("DATABASE_URL", ""),
		JWTSecret:    must("JWT_SECRET"),
		TokenTTL:     duration("TOKEN_TTL", 24*time.Hour),
		RequireAuth:  boolean("REQUIRE_AUTH", false),
		AllowOrigins: splitAndTrim(getenv("ALLOW_ORIGINS", "*")),

		GoogleAudience: getenv("GOOGLE_AUDIENCE", ""),

		LogMode:         getenv("LOG_MODE", "production"),
		LogLevel:        getenv("LOG_LEVEL", ""),
		LogstashTCPAddr: getenv("LOGSTASH_TCP_ADDR", ""),

		OTPTTL:     duration("OTP_TTL", 5*time.Minute),
		OTPLength:  positiveInt("OTP_LENGTH", 6),
		OTPBackend: strings.ToLower(getenv("OTP_BACKEND", "memory")),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       positiveInt("REDIS_DB", 0),

		MailProvider:   strings.ToLower(getenv("MAIL_PROVIDER", "log")),
		MailFrom:       getenv("MAIL_FROM", "no-reply@wanderly.app"),
		MailFromName:   getenv("MAIL_FROM_NAME", "Wanderly"),
		SMTPHost:       getenv("SMTP_HOST", ""),
		SMTPPort:       getenv("SMTP_PORT", "587"),
		SMTPUsername:   getenv("SMTP_USERNAME", ""),
		SMTPPassword:   getenv("SMTP_PASSWORD", ""),
		SendGridAPIKey: getenv("SENDGRID_API_KEY", ""),

		MinIOEndpoint:      getenv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:     getenv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:     getenv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:        boolean("MINIO_USE_SSL", false),
		MinIOBucketProfile: getenv("MINIO_BUCKET_PROFILE", "wanderly-profiles"),
		MinIOPublicURL:     getenv("MINIO_PUBLIC_URL", ""),

		ProfileImageMaxBytes:     int64(positiveInt("PROFILE_IMAGE_MAX_BYTES", 5*1024*1024)),
		ProfileImageMaxDimension: positiveInt("PROFILE_IMAGE_MAX_DIMENSION", 1024),

		RateLimitPerMinute: positiveInt("RATE_LIMIT_PER_MINUTE", 10),
		OTLPEndpoint:       getenv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		SeedDestinations:   boolean("SEED_DESTINATIONS", true),
	}
}

// MemoryMode reports whether repositories should run without Postgres.
func (c Config) MemoryMode() bool {
	return strings.TrimSpace(c.DatabaseURL) == ""
}

// StorageEnabled reports whether profile image uploads have somewhere to go.
func (c Config) StorageEnabled() bool {
	return c.MinIOEndpoint != "" && c.MinIOAccessKey != "" && c.MinIOSecretKey != ""
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}

func boolean(k string, d bool) bool {
	v, err := strconv.ParseBool(getenv(k, strconv.FormatBool(d)))
	if err != nil {
		return d
	}
	return v
}

func positiveInt(k string, d int) int {
	v, err := strconv.Atoi(getenv(k, strconv.Itoa(d)))
	if err != nil || v < 0 {
		return d
	}
	return v
}

func duration(k string, d time.Duration) time.Duration {
	v, err := time.ParseDuration(getenv(k, d.String()))
	if err != nil || v <= 0 {
		return d
	}
	return v
}
