package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort          = "8080"
	defaultDBDriver      = "sqlite"
	defaultSQLiteDSN     = "foodcourt.db?_fk=1"
	defaultPostgresDSN   = "host=localhost user=postgres password=postgres dbname=foodcourt port=5432 sslmode=disable"
	defaultMySQLDSN      = "root:root@tcp(127.0.0.1:3306)/foodcourt?charset=utf8mb4&parseTime=True&loc=Local"
	defaultCookieName    = "foodcourt_session"
	defaultSessionTTL    = 14 * 24 * time.Hour
	defaultJWTSecret     = "change-me-in-production"
	defaultJWTTTL        = 24 * time.Hour
	defaultCORSOrigin    = "http://127.0.0.1:5500"
	defaultRatePerSecond = 50
)

type Config struct {
	Port    string
	GinMode string

	DBDriver string
	DBDSN    string

	// RedisAddr empty means sessions live in process memory.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SessionCookie string
	SessionTTL    time.Duration
	CookieSecure  bool

	JWTSecret string
	JWTTTL    time.Duration

	CORSOrigin         string
	MediaDir           string
	RateLimitPerSecond int

	LogLevel  string
	LogFormat string
}

// Load reads .env (when present) and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	cfg := &Config{
		Port:               get("PORT", defaultPort),
		GinMode:            get("GIN_MODE", "debug"),
		DBDriver:           strings.ToLower(get("DB_DRIVER", defaultDBDriver)),
		RedisAddr:          get("REDIS_ADDR", ""),
		RedisPassword:      get("REDIS_PASSWORD", ""),
		RedisDB:            getInt("REDIS_DB", 0),
		SessionCookie:      get("SESSION_COOKIE", defaultCookieName),
		SessionTTL:         getDuration("SESSION_TTL", defaultSessionTTL),
		CookieSecure:       getBool("COOKIE_SECURE", false),
		JWTSecret:          get("JWT_SECRET", defaultJWTSecret),
		JWTTTL:             getDuration("JWT_TTL", defaultJWTTTL),
		CORSOrigin:         get("CORS_ORIGIN", defaultCORSOrigin),
		MediaDir:           get("MEDIA_DIR", "media"),
		RateLimitPerSecond: getInt("RATE_LIMIT_PER_SECOND", defaultRatePerSecond),
		LogLevel:           get("LOG_LEVEL", "info"),
		LogFormat:          get("LOG_FORMAT", "text"),
	}
	if cfg.JWTSecret == defaultJWTSecret {
		log.Printf("Warning: JWT_SECRET not set, using the development secret")
	}
	cfg.DBDSN = get("DATABASE_DSN", defaultDSN(cfg.DBDriver))
	return cfg
}

func defaultDSN(driver string) string {
	switch driver {
	case "postgres":
		return defaultPostgresDSN
	case "mysql":
		return defaultMySQLDSN
	default:
		return defaultSQLiteDSN
	}
}

func get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(get(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(get(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

// getDuration accepts Go durations ("2h") or plain seconds ("7200").
func getDuration(key string, fallback time.Duration) time.Duration {
	raw := get(key, "")
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
