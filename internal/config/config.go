package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strings" // strings splits the comma separated origin list
	"time"    // time expresses the session lifetime

	"github.com/joho/godotenv" // godotenv loads a local .env file when present
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints and durations
// for costs and lifetimes.
type Config struct {
	Env           string        // application environment (e.g. "dev", "prod")
	Port          string        // HTTP port to listen on
	DBUser        string        // database username
	DBPass        string        // database password (optional)
	DBHost        string        // database host address
	DBPort        string        // database port number
	DBName        string        // database name
	BcryptCost    int           // bcrypt cost for password hashing
	SessionTTL    time.Duration // session lifetime; refreshed on every authenticated request
	SessionCookie string        // name of the cookie carrying the session token
	CORSOrigins   []string      // origins allowed to send credentialed requests
}

// Load reads configuration values from environment variables and returns a
// Config.  A .env file in the working directory is honored when present;
// real environment variables win.  Required variables are enforced by
// must() and missing values cause the program to exit with a fatal log
// message.
func Load() Config {
	_ = godotenv.Load() // best effort; a missing .env file is fine

	return Config{
		Env:           must("APP_ENV"),                                             // environment (dev/test/prod)
		Port:          must("APP_PORT"),                                            // port to bind the HTTP server
		DBUser:        must("DB_USER"),                                             // database user
		DBPass:        os.Getenv("DB_PASS"),                                        // database password (empty allowed)
		DBHost:        must("DB_HOST"),                                             // database host
		DBPort:        must("DB_PORT"),                                             // database port
		DBName:        must("DB_NAME"),                                             // database name
		BcryptCost:    envInt("BCRYPT_COST", 10),                                   // bcrypt cost factor
		SessionTTL:    time.Duration(envInt("SESSION_TTL_HOURS", 24)) * time.Hour,  // sliding session lifetime
		SessionCookie: envStr("SESSION_COOKIE_NAME", "sessionid"),                  // session cookie name
		CORSOrigins:   splitOrigins(envStr("CORS_ORIGINS", defaultCORSOrigins)),    // allowed browser origins
	}
}

// defaultCORSOrigins covers the local frontend dev servers.
const defaultCORSOrigins = "http://localhost:3000,http://localhost:3001"

// SecureCookies reports whether session cookies should carry the Secure
// flag.  Only the production environment is assumed to run behind TLS.
func (c Config) SecureCookies() bool { return c.Env == "prod" }

// splitOrigins turns a comma separated origin list into a slice, dropping
// empty entries and surrounding whitespace.
func splitOrigins(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
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
