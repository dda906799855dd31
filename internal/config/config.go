package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	ServerPort string
	LogLevel   string

	JWTSecret      string
	JWTExpiryHours int

	// RedisURL empty disables the board cache.
	RedisURL      string
	BoardCacheTTL time.Duration

	CronSecret     string
	NotifyTimeout  time.Duration
	NotifyTimezone string
	TelegramAPIURL string

	RebalanceMinGap int64
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Warn("⚠️  No .env file found, using system environment variables")
	}

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "ticketboard"),
		DBPassword: getEnv("DB_PASSWORD", "ticketboard"),
		DBName:     getEnv("DB_NAME", "ticketboard"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		ServerPort: getEnv("SERVER_PORT", "8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		JWTSecret:      getEnv("JWT_SECRET", "supersecretkey"),
		JWTExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 72),

		RedisURL:      getEnv("REDIS_URL", ""),
		BoardCacheTTL: getEnvDuration("BOARD_CACHE_TTL", 5*time.Minute),

		CronSecret:     getEnv("CRON_SECRET", ""),
		NotifyTimeout:  getEnvDuration("NOTIFY_TIMEOUT", 10*time.Second),
		NotifyTimezone: getEnv("NOTIFY_TIMEZONE", "UTC"),
		TelegramAPIURL: getEnv("TELEGRAM_API_URL", "https://api.telegram.org"),

		RebalanceMinGap: int64(getEnvInt("REBALANCE_MIN_GAP", 2)),
	}
}

// PostgresDSN is the keyword/value connection string used by gorm.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// MigrateURL is the database URL understood by the golang-migrate pgx/v5 driver.
func (c *Config) MigrateURL() string {
	u := url.URL{
		Scheme:   "pgx5",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	return u.String()
}

// Location resolves NotifyTimezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.NotifyTimezone)
	if err != nil {
		log.WithError(err).Warnf("unknown NOTIFY_TIMEZONE %q, using UTC", c.NotifyTimezone)
		return time.UTC
	}
	return loc
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Warnf("invalid %s=%q, using %d", key, raw, defaultVal)
		return defaultVal
	}
	return n
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		log.Warnf("invalid %s=%q, using %s", key, raw, defaultVal)
		return defaultVal
	}
	return d
}
