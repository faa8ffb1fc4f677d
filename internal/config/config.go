package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Twilio   TwilioConfig
	SendGrid SendGridConfig
	Otp      OtpConfig
	Security SecurityConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// IsProduction reports whether the server runs in a production-like
// environment. OTP issuance rate limits only apply here.
func (c ServerConfig) IsProduction() bool {
	return c.Env != "development"
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// JWTConfig holds admin-session JWT configuration
type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// TwilioConfig holds SMS provider credentials. All three must be set for
// real SMS dispatch; otherwise the service falls back to the stored-code
// dev path (never in production).
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromPhone  string
}

// Configured reports whether real SMS dispatch is possible.
func (c TwilioConfig) Configured() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.FromPhone != ""
}

// SendGridConfig holds lead-notification email settings
type SendGridConfig struct {
	APIKey     string
	AdminEmail string
	FromEmail  string
}

// OtpConfig holds the OTP issuance/verification policy knobs.
type OtpConfig struct {
	CodeTTL        time.Duration
	ResendCooldown time.Duration
	RateWindow     time.Duration
	MaxPerWindow   int
	MaxAttempts    int
}

// SecurityConfig holds encryption keys. QuizSessionKey is the 32-byte hex
// AES key used to encrypt quiz session blobs in Redis.
type SecurityConfig struct {
	QuizSessionKey string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "franquicias"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "change-this-in-production"),
			AccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		},
		Twilio: TwilioConfig{
			AccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
			AuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
			FromPhone:  getEnv("TWILIO_FROM_PHONE", ""),
		},
		SendGrid: SendGridConfig{
			APIKey:     getEnv("SENDGRID_API_KEY", ""),
			AdminEmail: getEnv("ADMIN_EMAIL", "admin@franquiciaslatam.co"),
			FromEmail:  getEnv("NOTIFY_FROM_EMAIL", "noreply@franquiciaslatam.co"),
		},
		Otp: OtpConfig{
			CodeTTL:        getEnvAsDuration("OTP_CODE_TTL", 10*time.Minute),
			ResendCooldown: getEnvAsDuration("OTP_RESEND_COOLDOWN", 60*time.Second),
			RateWindow:     getEnvAsDuration("OTP_RATE_WINDOW", time.Hour),
			MaxPerWindow:   getEnvAsInt("OTP_MAX_PER_WINDOW", 3),
			MaxAttempts:    getEnvAsInt("OTP_MAX_ATTEMPTS", 5),
		},
		Security: SecurityConfig{
			QuizSessionKey: getEnv("QUIZ_SESSION_KEY", "0000000000000000000000000000000000000000000000000000000000000000"), // 32-bytes hex string
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
