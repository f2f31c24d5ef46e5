package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	HTTP         HTTPConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	RateLimit    RateLimitConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(cfg.FeatureFlags.UseSQLite); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"KEYHOLD_APP_ENV" required:"true"`
	Port         string `envconfig:"KEYHOLD_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"KEYHOLD_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"KEYHOLD_LOG_WARN_STACK" default:"false"`
	LogFormat    string `envconfig:"KEYHOLD_LOG_FORMAT" default:"json"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type HTTPConfig struct {
	ReadTimeout     time.Duration `envconfig:"KEYHOLD_HTTP_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"KEYHOLD_HTTP_WRITE_TIMEOUT" default:"15s"`
	ShutdownTimeout time.Duration `envconfig:"KEYHOLD_HTTP_SHUTDOWN_TIMEOUT" default:"20s"`
	CORSOrigins     []string      `envconfig:"KEYHOLD_CORS_ORIGINS" default:"http://localhost:3000"`
}

type DBConfig struct {
	DSN    string `envconfig:"KEYHOLD_DB_DSN"`
	Driver string `envconfig:"KEYHOLD_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"KEYHOLD_DB_HOST"`
	Port     int    `envconfig:"KEYHOLD_DB_PORT" default:"5432"`
	User     string `envconfig:"KEYHOLD_DB_USER"`
	Password string `envconfig:"KEYHOLD_DB_PASSWORD"`
	Name     string `envconfig:"KEYHOLD_DB_NAME"`
	SSLMode  string `envconfig:"KEYHOLD_DB_SSLMODE" default:"disable"`

	SQLitePath string `envconfig:"KEYHOLD_SQLITE_PATH" default:"keyhold.db"`

	MaxOpenConns    int           `envconfig:"KEYHOLD_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"KEYHOLD_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"KEYHOLD_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"KEYHOLD_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// RedisConfig is optional; an empty URL and address disables caching, rate
// limiting and idempotency.
type RedisConfig struct {
	URL            string        `envconfig:"KEYHOLD_REDIS_URL"`
	Address        string        `envconfig:"KEYHOLD_REDIS_ADDR"`
	Password       string        `envconfig:"KEYHOLD_REDIS_PASSWORD"`
	DB             int           `envconfig:"KEYHOLD_REDIS_DB" default:"0"`
	PoolSize       int           `envconfig:"KEYHOLD_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns   int           `envconfig:"KEYHOLD_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout    time.Duration `envconfig:"KEYHOLD_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout    time.Duration `envconfig:"KEYHOLD_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout   time.Duration `envconfig:"KEYHOLD_REDIS_WRITE_TIMEOUT" default:"5s"`
	ConfigCacheTTL time.Duration `envconfig:"KEYHOLD_PRICING_CONFIG_CACHE_TTL" default:"10m"`
	IdempotencyTTL time.Duration `envconfig:"KEYHOLD_IDEMPOTENCY_TTL" default:"24h"`
}

// Enabled reports whether a Redis endpoint is configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"KEYHOLD_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"KEYHOLD_AUTO_MIGRATE" default:"false"`
}

type RateLimitConfig struct {
	Window        time.Duration `envconfig:"KEYHOLD_PRICING_RATE_LIMIT_WINDOW" default:"1m"`
	IPLimit       int           `envconfig:"KEYHOLD_PRICING_RATE_LIMIT_IP_LIMIT" default:"120"`
	PropertyLimit int           `envconfig:"KEYHOLD_PRICING_RATE_LIMIT_PROPERTY_LIMIT" default:"30"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"KEYHOLD_GCP_PROJECT_ID"`
}

// PubSubConfig is optional; an empty topic disables event publication.
type PubSubConfig struct {
	PricingTopic string `envconfig:"KEYHOLD_PUBSUB_PRICING_TOPIC"`
}

// Enabled reports whether pricing events should be published.
func (p PubSubConfig) Enabled() bool {
	return strings.TrimSpace(p.PricingTopic) != ""
}

func (db *DBConfig) ensureDSN(useSQLite bool) error {
	if useSQLite || strings.EqualFold(db.Driver, DriverSQLite) {
		db.Driver = DriverSQLite
		if db.DSN == "" {
			db.DSN = db.SQLitePath
		}
		return nil
	}
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range splitDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
