package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. Schedule knobs default to the clinic's
// standing rules so a bare environment still produces a working server.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // secret used to sign JWTs
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing

	LogLevel  string // zerolog level (debug, info, warn, ...)
	LogFormat string // "json" or "console"

	Timezone           string // IANA zone the clinic operates in
	OpenMinute         int    // first bookable minute of the day
	CloseMinute        int    // last bookable minute of the day
	StepMinutes        int    // slot granularity for alternative search
	ProximityMinutes   int    // minimum gap between one provider's bookings
	DefaultCapacity    int    // vaccinations per hour
	ReducedCapacity    int    // vaccinations per hour in the final stretch
	ReducedTailMinutes int    // length of the reduced-capacity stretch
}

// Load reads configuration values from environment variables and returns
// a Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "json"),

		Timezone:           getenv("CLINIC_TIMEZONE", "Africa/Cairo"),
		OpenMinute:         intenv("CLINIC_OPEN_MINUTE", 495),   // 08:15
		CloseMinute:        intenv("CLINIC_CLOSE_MINUTE", 870),  // 14:30
		StepMinutes:        intenv("CLINIC_SLOT_STEP_MIN", 15),
		ProximityMinutes:   intenv("CLINIC_PROXIMITY_MIN", 15),
		DefaultCapacity:    intenv("CLINIC_HOURLY_CAPACITY", 10),
		ReducedCapacity:    intenv("CLINIC_REDUCED_CAPACITY", 5),
		ReducedTailMinutes: intenv("CLINIC_REDUCED_TAIL_MIN", 30),
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

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// intenv reads an optional integer variable, falling back to def when
// unset or malformed.
func intenv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}
