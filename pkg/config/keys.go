package config

const EnvPrefix = "KEYHOLD"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	EnvAppEnv                 = "KEYHOLD_APP_ENV"
	EnvPort                   = "KEYHOLD_APP_PORT"
	EnvLogLevel               = "KEYHOLD_LOG_LEVEL"
	EnvDBDSN                  = "KEYHOLD_DB_DSN"
	EnvDBDriver               = "KEYHOLD_DB_DRIVER"
	EnvDBHost                 = "KEYHOLD_DB_HOST"
	EnvDBPort                 = "KEYHOLD_DB_PORT"
	EnvDBUser                 = "KEYHOLD_DB_USER"
	EnvDBPassword             = "KEYHOLD_DB_PASSWORD"
	EnvDBName                 = "KEYHOLD_DB_NAME"
	EnvUseSQLite              = "KEYHOLD_USE_SQLITE"
	EnvRedisURL               = "KEYHOLD_REDIS_URL"
	EnvGCPProjectID           = "KEYHOLD_GCP_PROJECT_ID"
	EnvPubSubPricingTopic     = "KEYHOLD_PUBSUB_PRICING_TOPIC"
	EnvRateLimitPropertyLimit = "KEYHOLD_PRICING_RATE_LIMIT_PROPERTY_LIMIT"
)

var splitDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
