package config // package config loads application configuration from environment variables

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations and costs.
type Config struct {
	Env           string   // application environment (e.g. "dev", "prod")
	Port          string   // HTTP port to listen on
	DBUser        string   // database username
	DBPass        string   // database password (optional)
	DBHost        string   // database host address
	DBPort        string   // database port number
	DBName        string   // database name
	JWTSecret     string   // secret used to sign access tokens
	AccessTTLDays int      // access token time-to-live in days
	BcryptCost    int      // bcrypt cost for password hashing
	SMTPHost      string   // SMTP relay host for verification emails
	SMTPPort      int      // SMTP relay port
	SMTPUsername  string   // SMTP auth username, also the From address
	SMTPPassword  string   // SMTP auth password
	FrontendURL   string   // base URL embedded in verification links
	CORSOrigins   []string // allowed CORS origins
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
//
// JWT_SECRET is deliberately optional: when unset an ephemeral secret is
// generated at startup.  Every token issued before a restart then stops
// validating, so production deployments should always set it.
func Load() Config {
	cfg := Config{
		Env:           must("APP_ENV"),      // environment (dev/test/prod)
		Port:          must("APP_PORT"),     // port to bind the HTTP server
		DBUser:        must("DB_USER"),      // database user
		DBPass:        os.Getenv("DB_PASS"), // database password (empty allowed)
		DBHost:        must("DB_HOST"),      // database host
		DBPort:        must("DB_PORT"),      // database port
		DBName:        must("DB_NAME"),      // database name
		JWTSecret:     os.Getenv("JWT_SECRET"),
		AccessTTLDays: optionalInt("ACCESS_TOKEN_TTL_DAYS", 7),
		BcryptCost:    optionalInt("BCRYPT_COST", bcrypt.DefaultCost),
		SMTPHost:      must("SMTP_HOST"),
		SMTPPort:      optionalInt("SMTP_PORT", 587),
		SMTPUsername:  must("SMTP_USERNAME"),
		SMTPPassword:  must("SMTP_PASSWORD"),
		FrontendURL:   optional("FRONTEND_URL", "http://localhost:3000"),
		CORSOrigins:   splitList(optional("CORS_ORIGINS", "*")),
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = randomSecret()
		log.Printf("JWT_SECRET not set; using an ephemeral secret, all issued tokens become invalid on restart")
	}
	return cfg
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// optional returns the value of an environment variable or a default when
// the variable is unset or empty.
func optional(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// optionalInt is like optional() but converts the value into an integer.
// An invalid value is a fatal configuration error.
func optionalInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// splitList splits a comma-separated env value into trimmed entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// randomSecret produces a hex-encoded 32-byte secret from the system CSPRNG.
func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatalf("generate jwt secret: %v", err)
	}
	return hex.EncodeToString(buf)
}
