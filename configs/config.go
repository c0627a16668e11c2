package config

import (
	"fmt"
	"os"
	"time"
)

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type RazorpayConfig struct {
	KeyID     string
	KeySecret string
	Timeout   time.Duration
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type AfricaTalkingConfig struct {
	Username string
	APIKey   string
	SMSURL   string
	SenderID string
}

type EmailConfig struct {
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSRegion          string
	SenderEmail        string
}

type Config struct {
	Port        string
	Postgres    PostgresConfig
	Auth        AuthConfig
	Razorpay    RazorpayConfig
	RedisAddr   string
	KafkaBroker string
	SMS         AfricaTalkingConfig
	Email       EmailConfig
}

func Load() Config {
	return Config{
		Port: getEnvOrDefault("PORT", "8080"),
		Postgres: PostgresConfig{
			Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			User:     getEnvOrDefault("POSTGRES_USER", "test"),
			Password: getEnvOrDefault("POSTGRES_PASSWORD", "test"),
			DBName:   getEnvOrDefault("POSTGRES_DB", "test"),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
			TokenTTL:  24 * time.Hour,
		},
		Razorpay: RazorpayConfig{
			KeyID:     os.Getenv("RAZORPAY_KEY_ID"),
			KeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
			Timeout:   10 * time.Second,
		},
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		KafkaBroker: os.Getenv("KAFKA_BROKER"),
		SMS: AfricaTalkingConfig{
			Username: os.Getenv("AT_USERNAME"),
			APIKey:   os.Getenv("AT_API_KEY"),
			SMSURL:   getEnvOrDefault("AT_SMS_URL", "https://api.sandbox.africastalking.com/version1/messaging"),
			SenderID: getEnvOrDefault("AT_SENDER_ID", "AFRICASTKNG"),
		},
		Email: EmailConfig{
			AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			AWSRegion:          getEnvOrDefault("AWS_REGION", "us-east-1"),
			SenderEmail:        os.Getenv("AWS_SENDER_ADDRESS"),
		},
	}
}

// Validate fails fast on configuration the service cannot run without.
// Missing gateway credentials must abort startup rather than turn into
// ambiguous per-request errors later.
func (c Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Razorpay.KeyID == "" || c.Razorpay.KeySecret == "" {
		return fmt.Errorf("RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET are required")
	}
	return nil
}

func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Africa/Nairobi",
		p.Host, p.User, p.Password, p.DBName, p.Port,
	)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
