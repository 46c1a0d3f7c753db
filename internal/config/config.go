package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

// Rate limit scopes used by the router
const (
	ScopeRegister          = "register"
	ScopeLogin             = "login"
	ScopeAppointmentCreate = "appointment_create"
	ScopeAppointmentList   = "appointment_list"
	ScopeContactCreate     = "contact_create"
	ScopeContactList       = "contact_list"
	ScopeDashboardStats    = "dashboard_stats"
)

type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Session  SessionConfig
	Security SecurityConfig
	CORS     CORSConfig
	Redis    RedisConfig
	Log      LogConfig
	Cleanup  CleanupConfig
}

type DatabaseConfig struct {
	Driver   string // mysql, postgres or sqlite
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
	Path     string // sqlite file path
}

type ServerConfig struct {
	Port           string
	GinMode        string
	Timezone       *time.Location
	// X-Forwarded-For is honoured only from these addresses or CIDRs
	TrustedProxies []string
}

type SessionConfig struct {
	CookieName           string
	Age                  time.Duration
	ExpireAtBrowserClose bool
	Secure               bool
}

type SecurityConfig struct {
	APIKeys              []string
	MaxLoginAttempts     int
	LockoutDuration      time.Duration
	RateLimits           map[string]RateRule
	RequestRateThreshold int64
	CSRFSecret           string
	CSRFTokenExpiry      time.Duration
}

type CORSConfig struct {
	AllowAllOrigins  bool
	AllowedOrigins   []string
	AllowCredentials bool
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type LogConfig struct {
	Level  string
	Format string // json or text
}

type CleanupConfig struct {
	Schedule string
}

// RateRule is a sliding window limit: at most Max requests per Window
type RateRule struct {
	Max    int
	Window time.Duration
}

func (r RateRule) String() string {
	return fmt.Sprintf("%d/%s", r.Max, r.Window)
}

var defaultRateLimits = map[string]string{
	ScopeRegister:          "5/m",
	ScopeLogin:             "10/m",
	ScopeAppointmentCreate: "5/m",
	ScopeAppointmentList:   "20/m",
	ScopeContactCreate:     "3/m",
	ScopeContactList:       "20/m",
	ScopeDashboardStats:    "10/m",
}

func LoadConfig() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	ginMode := getEnv("GIN_MODE", "debug")

	config := &Config{
		Database: DatabaseConfig{
			Driver:   strings.ToLower(getEnv("DB_DRIVER", "mysql")),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			User:     getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "hospital_website"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Path:     getEnv("DB_PATH", "hospital.db"),
		},
		Server: ServerConfig{
			Port:     getEnv("PORT", "8080"),
			GinMode:  ginMode,
			Timezone: parseLocation(getEnv("APP_TIMEZONE", "UTC")),

			TrustedProxies: parseList(getEnv("TRUSTED_PROXIES", "")),
		},
		Session: SessionConfig{
			CookieName:           getEnv("SESSION_COOKIE_NAME", "sessionid"),
			Age:                  parseDuration(getEnv("SESSION_COOKIE_AGE", "1h"), time.Hour),
			ExpireAtBrowserClose: parseBool(getEnv("SESSION_EXPIRE_AT_BROWSER_CLOSE", "true"), true),
			Secure:               parseBool(getEnv("SESSION_COOKIE_SECURE", strconv.FormatBool(ginMode == "release")), false),
		},
		Security: SecurityConfig{
			APIKeys:              parseList(getEnv("API_KEYS", "hospital-api-key-2024")),
			MaxLoginAttempts:     parseInt(getEnv("MAX_LOGIN_ATTEMPTS", "5"), 5),
			LockoutDuration:      parseDuration(getEnv("LOCKOUT_DURATION", "5m"), 5*time.Minute),
			RateLimits:           loadRateLimits(),
			RequestRateThreshold: int64(parseInt(getEnv("REQUEST_RATE_WARN_THRESHOLD", "100"), 100)),
			CSRFSecret:           getEnv("CSRF_SECRET", "change-me-csrf-secret"),
			CSRFTokenExpiry:      parseDuration(getEnv("CSRF_TOKEN_EXPIRY", "8760h"), 8760*time.Hour),
		},
		CORS: CORSConfig{
			AllowAllOrigins:  parseBool(getEnv("CORS_ALLOW_ALL_ORIGINS", "true"), true),
			AllowedOrigins:   parseList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
			AllowCredentials: parseBool(getEnv("CORS_ALLOW_CREDENTIALS", "true"), true),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       parseInt(getEnv("REDIS_DB", "0"), 0),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", defaultLogFormat(ginMode)),
		},
		Cleanup: CleanupConfig{
			Schedule: getEnv("SESSION_CLEANUP_SCHEDULE", "@hourly"),
		},
	}

	return config
}

// RateRule returns the configured limit for a scope
func (c *Config) RateRule(scope string) RateRule {
	if rule, ok := c.Security.RateLimits[scope]; ok {
		return rule
	}
	rule, _ := ParseRateRule(defaultRateLimits[scope])
	return rule
}

// ParseRateRule parses "N/s", "N/m", "N/h", "N/d" or "N/<go duration>"
func ParseRateRule(s string) (RateRule, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "/", 2)
	if len(parts) != 2 {
		return RateRule{}, fmt.Errorf("invalid rate %q: expected N/period", s)
	}

	max, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || max < 1 {
		return RateRule{}, fmt.Errorf("invalid rate %q: count must be a positive integer", s)
	}

	var window time.Duration
	switch period := strings.TrimSpace(parts[1]); period {
	case "s", "sec", "second":
		window = time.Second
	case "m", "min", "minute":
		window = time.Minute
	case "h", "hour":
		window = time.Hour
	case "d", "day":
		window = 24 * time.Hour
	default:
		window, err = time.ParseDuration(period)
		if err != nil || window <= 0 {
			return RateRule{}, fmt.Errorf("invalid rate %q: bad period", s)
		}
	}

	return RateRule{Max: max, Window: window}, nil
}

func loadRateLimits() map[string]RateRule {
	rules := make(map[string]RateRule, len(defaultRateLimits))
	for scope, def := range defaultRateLimits {
		envKey := "RATE_LIMIT_" + strings.ToUpper(scope)
		rule, err := ParseRateRule(getEnv(envKey, def))
		if err != nil {
			fmt.Printf("Warning: %v for %s, using default %s\n", err, envKey, def)
			rule, _ = ParseRateRule(def)
		}
		rules[scope] = rule
	}
	return rules
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	// Plain integers are seconds
	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second
	}
	duration, err := time.ParseDuration(s)
	if err != nil {
		fmt.Printf("Warning: Invalid duration format '%s', using default\n", s)
		return fallback
	}
	return duration
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		fmt.Printf("Warning: Invalid integer '%s', using default\n", s)
		return fallback
	}
	return n
}

func parseBool(s string, fallback bool) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return fallback
	}
	return b
}

func parseLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		fmt.Printf("Warning: Unknown timezone '%s', using UTC\n", name)
		return time.UTC
	}
	return loc
}

func parseList(s string) []string {
	items := []string{}
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func defaultLogFormat(ginMode string) string {
	if ginMode == "release" {
		return "json"
	}
	return "text"
}
