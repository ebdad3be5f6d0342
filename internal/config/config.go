package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
    "time"    // time parses duration and timezone settings
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, durations for
// timeouts, a *time.Location for the production calendar.
type Config struct {
    Env            string         // application environment (e.g. "dev", "prod")
    Port           string         // HTTP port to listen on
    DBUser         string         // database username
    DBPass         string         // database password (optional)
    DBHost         string         // database host address
    DBPort         string         // database port number
    DBName         string         // database name
    AgentJWTSecret string         // secret used to sign and verify capture-agent tokens
    Timezone       *time.Location // calendar used for classification and layout
    // AgentProvisionKeyHash is the bcrypt hash of the shared
    // provisioning key agents exchange for a signed token.  Empty
    // disables the exchange endpoint.
    AgentProvisionKeyHash string
    AgentTokenTTL         time.Duration // lifetime of issued agent tokens
    // StaleJobAfter closes out completed ingest jobs that reported a
    // zero file count and were last refreshed longer ago than this.
    // Zero keeps such jobs waiting for a corrected report forever.
    StaleJobAfter time.Duration
    // PixelsPerMinute and MinVisibleMinutes feed the day-grid layout.
    PixelsPerMinute   float64
    MinVisibleMinutes float64
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
    return Config{
        Env:               must("APP_ENV"),               // environment (dev/test/prod)
        Port:              must("APP_PORT"),              // port to bind the HTTP server
        DBUser:            must("DB_USER"),               // database user
        DBPass:            os.Getenv("DB_PASS"),          // database password (empty allowed)
        DBHost:            must("DB_HOST"),               // database host
        DBPort:            must("DB_PORT"),               // database port
        DBName:            must("DB_NAME"),               // database name
        AgentJWTSecret:    must("AGENT_JWT_SECRET"),      // secret for agent tokens
        Timezone:          location("TIMEZONE"),          // production calendar, defaults to local
        AgentProvisionKeyHash: os.Getenv("AGENT_PROVISION_KEY_HASH"),
        AgentTokenTTL:         parseDur(getenv("AGENT_TOKEN_TTL", "24h")),
        StaleJobAfter:     parseDur(getenv("INGEST_STALE_JOB_AFTER", "0s")),
        PixelsPerMinute:   parseFloat(getenv("SCHEDULE_PIXELS_PER_MINUTE", "1")),
        MinVisibleMinutes: parseFloat(getenv("SCHEDULE_MIN_VISIBLE_MINUTES", "15")),
    }
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

// location loads an IANA timezone from an optional environment variable.
// An empty variable means the host's local timezone; an invalid name is a
// configuration error and stops the program.
func location(key string) *time.Location {
    name := os.Getenv(key)
    if name == "" {
        return time.Local
    }
    loc, err := time.LoadLocation(name)
    if err != nil {
        log.Fatalf("invalid timezone for %s: %q", key, name)
    }
    return loc
}

// parseFloat converts a string to float64, treating garbage as zero the
// same way the other optional-setting parsers do.
func parseFloat(s string) float64 {
    f, _ := strconv.ParseFloat(s, 64)
    return f
}
