// Package config loads application configuration from environment variables.
// A .env file next to the binary is honored when present, the way the
// deployment scripts expect.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values. Strings for identifiers
// and secrets, ints for durations and costs.
type Config struct {
	Env           string        // application environment (dev/test/prod)
	Port          string        // HTTP port to listen on
	DBUser        string        // database username
	DBPass        string        // database password (optional)
	DBHost        string        // database host address
	DBPort        string        // database port number
	DBName        string        // database name
	DBMaxOpen     int           // connection pool: max open connections
	DBMaxIdle     int           // connection pool: max idle connections
	DBConnLife    time.Duration // connection pool: max connection lifetime
	JWTSecret     string        // secret used to sign JWTs
	TokenTTLHours int           // access token time-to-live in hours
	BcryptCost    int           // bcrypt cost for password hashing
	CurrentHost   string        // public base URL used in mailed links
	SMTPHost      string        // mail relay host (optional; mail disabled when empty)
	SMTPPort      string        // mail relay port
	SMTPLogin     string        // mail relay login
	SMTPPass      string        // mail relay password
	BlogMail      string        // From address for outgoing mail
}

// Load reads configuration from the environment. Required variables are
// enforced by must(); missing values exit with a fatal log message.
func Load() Config {
	// Missing .env is fine: production sets real environment variables.
	_ = godotenv.Load()

	return Config{
		Env:           must("APP_ENV"),
		Port:          must("APP_PORT"),
		DBUser:        must("DB_USER"),
		DBPass:        os.Getenv("DB_PASS"),
		DBHost:        must("DB_HOST"),
		DBPort:        must("DB_PORT"),
		DBName:        must("DB_NAME"),
		DBMaxOpen:     envInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdle:     envInt("DB_MAX_IDLE_CONNS", 25),
		DBConnLife:    envDur("DB_CONN_LIFETIME", 30*time.Minute),
		JWTSecret:     must("JWT_SECRET"),
		TokenTTLHours: mustInt("TOKEN_TTL_HOURS"),
		BcryptCost:    mustInt("BCRYPT_COST"),
		CurrentHost:   os.Getenv("CURRENT_URL"),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      os.Getenv("SMTP_PORT"),
		SMTPLogin:     os.Getenv("SMTP_LOGIN"),
		SMTPPass:      os.Getenv("SMTP_PASSWORD"),
		BlogMail:      os.Getenv("BLOG_MAIL"),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the value into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
