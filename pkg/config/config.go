package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Supported database drivers.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Env             string
	Port            int
	ShutdownTimeout time.Duration

	Database DatabaseConfig
	CORS     CORSConfig
	Log      LogConfig
}

// DatabaseConfig describes the target database and the bounded connection pool in front of it.
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	// Path is the database file used by the sqlite driver.
	Path string

	PoolLimit       int
	AcquireTimeout  time.Duration
	QueryTimeout    time.Duration
	ConnMaxLifetime time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.ShutdownTimeout = parseDuration(v.GetString("SHUTDOWN_TIMEOUT"), 10*time.Second)

	cfg.Database = DatabaseConfig{
		Driver:          strings.ToLower(v.GetString("DB_DRIVER")),
		Host:            v.GetString("DB_HOST"),
		Port:            v.GetInt("DB_PORT"),
		User:            v.GetString("DB_USER"),
		Password:        v.GetString("DB_PASSWORD"),
		Name:            v.GetString("DB_NAME"),
		SSLMode:         v.GetString("DB_SSL_MODE"),
		Path:            v.GetString("DB_PATH"),
		PoolLimit:       v.GetInt("DB_POOL_LIMIT"),
		AcquireTimeout:  parseDuration(v.GetString("DB_ACQUIRE_TIMEOUT"), 10*time.Second),
		QueryTimeout:    parseDuration(v.GetString("DB_QUERY_TIMEOUT"), 30*time.Second),
		ConnMaxLifetime: parseDuration(v.GetString("DB_CONN_MAX_LIFETIME"), time.Hour),
	}
	if cfg.Database.PoolLimit <= 0 {
		cfg.Database.PoolLimit = 15
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = defaultPort(cfg.Database.Driver)
	}

	if err := cfg.Database.Validate(); err != nil {
		return nil, err
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

// Validate rejects driver settings that cannot produce a connection.
func (c DatabaseConfig) Validate() error {
	switch c.Driver {
	case DriverMySQL, DriverPostgres:
		if c.Host == "" || c.Name == "" {
			return errors.New("config: DB_HOST and DB_NAME are required")
		}
	case DriverSQLite:
		if c.Path == "" {
			return errors.New("config: DB_PATH is required for the sqlite driver")
		}
	default:
		return errors.New("config: unsupported DB_DRIVER " + c.Driver)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 3000)
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	v.SetDefault("DB_DRIVER", DriverMySQL)
	v.SetDefault("DB_HOST", "127.0.0.1")
	v.SetDefault("DB_PORT", 0)
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_PASSWORD", "root")
	v.SetDefault("DB_NAME", "sample")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_PATH", "./sample.db")
	v.SetDefault("DB_POOL_LIMIT", 15)
	v.SetDefault("DB_ACQUIRE_TIMEOUT", "10s")
	v.SetDefault("DB_QUERY_TIMEOUT", "30s")
	v.SetDefault("DB_CONN_MAX_LIFETIME", "1h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func defaultPort(driver string) int {
	switch driver {
	case DriverPostgres:
		return 5432
	case DriverMySQL:
		return 3306
	}
	return 0
}

// parseDuration accepts Go duration strings; "0" disables the associated timeout.
func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
