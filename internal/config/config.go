package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strings" // strings splits list-valued variables
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. Configuration is loaded once at startup and passed
// explicitly into constructors; nothing in this package keeps mutable state.
type Config struct {
	Env         string   // application environment (e.g. "dev", "prod")
	Port        string   // HTTP port to listen on
	LogLevel    string   // zap log level (debug, info, warn, error)
	DBUser      string   // database username
	DBPass      string   // database password (optional)
	DBHost      string   // database host address
	DBPort      string   // database port number
	DBName      string   // database name
	BaseURL     string   // public base URL used to build unsubscribe links
	CORSOrigins []string // allowed origins (browser extension + local dev)
	Theaters    string   // seed catalog, "Name|IANA timezone" entries separated by ";"

	SMTPHost     string // SMTP relay host
	SMTPPort     string // SMTP relay port
	SMTPUsername string // SMTP username; empty disables real delivery
	SMTPPassword string // SMTP password; empty disables real delivery
	SMTPFrom     string // From address on outgoing mail
	SMTPFromName string // display name on outgoing mail
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values cause
// the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:          must("APP_ENV"),
		Port:         must("APP_PORT"),
		LogLevel:     getenv("LOG_LEVEL", "info"),
		DBUser:       must("DB_USER"),
		DBPass:       os.Getenv("DB_PASS"), // empty allowed
		DBHost:       must("DB_HOST"),
		DBPort:       must("DB_PORT"),
		DBName:       must("DB_NAME"),
		BaseURL:      strings.TrimRight(must("BASE_URL"), "/"),
		CORSOrigins:  splitList(must("CORS_ORIGINS")),
		Theaters:     os.Getenv("THEATERS"), // empty means the catalog is managed out of band
		SMTPHost:     getenv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getenv("SMTP_PORT", "587"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     getenv("SMTP_FROM", "noreply@seatwatch.app"),
		SMTPFromName: getenv("SMTP_FROM_NAME", "SeatWatch"),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// getenv returns the value of key or def when unset/empty.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// splitList parses a comma-separated list, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
