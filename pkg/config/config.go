package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port     string `validate:"required,numeric"`
	Env      string `validate:"oneof=development staging production test"`
	LogLevel string

	PostgresConnStr string `validate:"required"`
	MongoURI        string
	RedisURL        string

	// AdminEmail is the only identity allowed to moderate content.
	AdminEmail string `validate:"omitempty,email"`

	// JWTSecret signs session tokens. There is no default.
	JWTSecret string `validate:"required"`
	JWTTTL    time.Duration

	FirebaseCredentialsPath string

	ResendAPIKey  string
	MailFrom      string
	AdminMailFrom string
	AppURL        string `validate:"required,url"`

	CloudinaryURL string

	RateLimitRPS   float64 `validate:"gte=0"`
	RateLimitBurst int     `validate:"gte=0"`

	// EnvFileMissing is set when no .env file was found.
	EnvFileMissing bool
}

// MinProductionSecretLength applies to JWT_SECRET outside development and
// test.
const MinProductionSecretLength = 32

// Load reads the optional .env file and then the process environment.
func Load() *Config {
	envErr := godotenv.Load()

	return &Config{
		EnvFileMissing:          envErr != nil,
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		RedisURL:                getEnv("REDIS_URL", ""),
		AdminEmail:              getEnv("ADMIN_EMAIL", ""),
		JWTSecret:               getEnv("JWT_SECRET", ""),
		JWTTTL:                  getDuration("JWT_TTL", 72*time.Hour),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", "./firebase_credentials.json"),
		ResendAPIKey:            getEnv("RESEND_API_KEY", ""),
		MailFrom:                getEnv("MAIL_FROM", "Guestbook A-1412 <noreply@xteonlyone1412.my.id>"),
		AdminMailFrom:           getEnv("ADMIN_MAIL_FROM", "Admin A-1412 <noreply@xteonlyone1412.my.id>"),
		AppURL:                  getEnv("APP_URL", "http://localhost:3000"),
		CloudinaryURL:           getEnv("CLOUDINARY_URL", ""),
		RateLimitRPS:            getFloat("RATE_LIMIT_RPS", 0.5),
		RateLimitBurst:          getInt("RATE_LIMIT_BURST", 5),
	}
}

// Validate checks the loaded values. The database connection string and
// the JWT secret are mandatory; every other collaborator degrades to a
// no-op when unset.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Env != "development" && c.Env != "test" && len(c.JWTSecret) < MinProductionSecretLength {
		return fmt.Errorf("invalid configuration: JWT_SECRET must be at least %d characters in %s", MinProductionSecretLength, c.Env)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}
