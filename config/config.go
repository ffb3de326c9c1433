package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Storage  StorageConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Catalog  CatalogConfig
	Search   SearchConfig
	Payment  PaymentConfig
	Cart     CartConfig
	Auth     AuthConfig
	I18n     I18nConfig
}

type ServerConfig struct {
	AppEnv          string
	GRPCPort        string
	HTTPPort        string
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

// StorageConfig picks the durable medium for carts and users:
// memory, sqlite, postgres or redis.
type StorageConfig struct {
	Driver      string
	SQLitePath  string
	RedisPrefix string
}

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type CatalogConfig struct {
	// Path to a catalog yaml file; empty uses the built-in catalog.
	Path string
}

type SearchConfig struct {
	Debounce           time.Duration
	QuickLimit         int
	CheapThreshold     int
	ExpensiveThreshold int
}

type PaymentConfig struct {
	GatewayURL  string
	ProductCode string
	SuccessURL  string
	FailureURL  string
}

// CartConfig bounds how many session carts stay loaded in memory.
type CartConfig struct {
	SessionCacheSize int
}

type AuthConfig struct {
	SimulatedLatency time.Duration
}

type I18nConfig struct {
	DefaultLocale string
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:          getEnv("APP_ENV", "dev"),
			GRPCPort:        getEnv("GRPC_PORT", ":8082"),
			HTTPPort:        getEnv("HTTP_PORT", ":8080"),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Storage: StorageConfig{
			Driver:      strings.ToLower(getEnv("STORAGE_DRIVER", "sqlite")),
			SQLitePath:  getEnv("SQLITE_PATH", "storefront.db"),
			RedisPrefix: getEnv("REDIS_KEY_PREFIX", "kiwifarm:"),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "localhost"),
			Port:            getEnv("POSTGRES_PORT", "5432"),
			User:            getEnv("POSTGRES_USER", "kiwifarm"),
			Password:        getEnv("POSTGRES_PASSWORD", "kiwifarm"),
			DBName:          getEnv("POSTGRES_DB", "kiwifarm_storefront"),
			SSLMode:         getEnv("POSTGRES_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("POSTGRES_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvInt("POSTGRES_CONN_MAX_LIFETIME", 300),
			ConnMaxIdleTime: getEnvInt("POSTGRES_CONN_MAX_IDLE_TIME", 60),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Catalog: CatalogConfig{
			Path: getEnv("CATALOG_PATH", ""),
		},
		Search: SearchConfig{
			Debounce:           getEnvDuration("SEARCH_DEBOUNCE", 300*time.Millisecond),
			QuickLimit:         getEnvInt("SEARCH_QUICK_LIMIT", 5),
			CheapThreshold:     getEnvInt("SEARCH_CHEAP_THRESHOLD", 150),
			ExpensiveThreshold: getEnvInt("SEARCH_EXPENSIVE_THRESHOLD", 200),
		},
		Payment: PaymentConfig{
			GatewayURL:  getEnv("PAYMENT_GATEWAY_URL", "https://rc-epay.esewa.com.np/api/epay/main/v2/form"),
			ProductCode: getEnv("PAYMENT_PRODUCT_CODE", "EPAYTEST"),
			SuccessURL:  getEnv("PAYMENT_SUCCESS_URL", "http://localhost:8080/payment/success"),
			FailureURL:  getEnv("PAYMENT_FAILURE_URL", "http://localhost:8080/payment/failure"),
		},
		Cart: CartConfig{
			SessionCacheSize: getEnvInt("CART_SESSION_CACHE_SIZE", 10000),
		},
		Auth: AuthConfig{
			SimulatedLatency: getEnvDuration("AUTH_SIMULATED_LATENCY", 0),
		},
		I18n: I18nConfig{
			DefaultLocale: getEnv("DEFAULT_LOCALE", "en"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
