package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"freight/internal/adapters/out/elastic"
	"freight/internal/adapters/out/postgres"
	"freight/internal/pkg/logging"
	"freight/internal/pkg/tracing"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Environment string
	HTTPPort    int
	Database    postgres.Config
	Redis       RedisConfig
	Elastic     elastic.Config
	ServiceBus  ServiceBusConfig
	Tracing     tracing.Config
	Logging     logging.Config
	Sequence    SequenceConfig
	Outbox      OutboxConfig
}

// RedisConfig enables the branch cache when Addr is set.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// ServiceBusConfig enables the Azure publisher when ConnectionString is
// set; otherwise events are only logged.
type ServiceBusConfig struct {
	ConnectionString string
	Entity           string
	Source           string
}

type SequenceConfig struct {
	// Timezone decides where months and days start for LR and OGPL
	// numbers.
	Timezone   string
	MaxRetries int
}

type OutboxConfig struct {
	Schedule  string
	BatchSize int
}

func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Location resolves the sequence timezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Sequence.Timezone)
	if err != nil {
		return nil, fmt.Errorf("sequence.timezone: %w", err)
	}
	return loc, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "production")
	v.SetDefault("http.port", 8082)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "freight")
	v.SetDefault("database.password", "freight")
	v.SetDefault("database.name", "freight")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.log_sql", false)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", "10m")

	v.SetDefault("elastic.url", "")
	v.SetDefault("elastic.username", "")
	v.SetDefault("elastic.password", "")
	v.SetDefault("elastic.index", "freight-bookings")

	v.SetDefault("servicebus.connection_string", "")
	v.SetDefault("servicebus.entity", "freight-events")
	v.SetDefault("servicebus.source", "freight")

	v.SetDefault("tracing.app_name", "freight")
	v.SetDefault("tracing.license_key", "")
	v.SetDefault("tracing.distributed", true)
	v.SetDefault("tracing.log_forwarding", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.directory", "")
	v.SetDefault("logging.max_size_mb", 100)
	v.SetDefault("logging.max_backups", 7)
	v.SetDefault("logging.max_age_days", 30)

	v.SetDefault("sequence.timezone", "Asia/Kolkata")
	v.SetDefault("sequence.max_retries", 5)

	v.SetDefault("outbox.schedule", "*/5 * * * * *")
	v.SetDefault("outbox.batch_size", 100)
}

// LoadConfig reads an optional .env file, then cfgFile (or config.yaml in
// the working directory or /etc/freight), then FREIGHT_ environment
// variables, e.g. FREIGHT_DATABASE_HOST for database.host.
func LoadConfig(cfgFile string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/freight")
	}

	v.SetEnvPrefix("FREIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) Config {
	env := v.GetString("environment")
	return Config{
		Environment: env,
		HTTPPort:    v.GetInt("http.port"),
		Database: postgres.Config{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			Name:            v.GetString("database.name"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("database.conn_max_lifetime"),
			LogSQL:          v.GetBool("database.log_sql"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			TTL:      v.GetDuration("redis.ttl"),
		},
		Elastic: elastic.Config{
			URL:      v.GetString("elastic.url"),
			Username: v.GetString("elastic.username"),
			Password: v.GetString("elastic.password"),
			Index:    v.GetString("elastic.index"),
		},
		ServiceBus: ServiceBusConfig{
			ConnectionString: v.GetString("servicebus.connection_string"),
			Entity:           v.GetString("servicebus.entity"),
			Source:           v.GetString("servicebus.source"),
		},
		Tracing: tracing.Config{
			AppName:        v.GetString("tracing.app_name"),
			LicenseKey:     v.GetString("tracing.license_key"),
			DistribTracing: v.GetBool("tracing.distributed"),
			LogForwarding:  v.GetBool("tracing.log_forwarding"),
		},
		Logging: logging.Config{
			Level:       v.GetString("logging.level"),
			Development: env == "development",
			Directory:   v.GetString("logging.directory"),
			MaxSizeMB:   v.GetInt("logging.max_size_mb"),
			MaxBackups:  v.GetInt("logging.max_backups"),
			MaxAgeDays:  v.GetInt("logging.max_age_days"),
		},
		Sequence: SequenceConfig{
			Timezone:   v.GetString("sequence.timezone"),
			MaxRetries: v.GetInt("sequence.max_retries"),
		},
		Outbox: OutboxConfig{
			Schedule:  v.GetString("outbox.schedule"),
			BatchSize: v.GetInt("outbox.batch_size"),
		},
	}
}
