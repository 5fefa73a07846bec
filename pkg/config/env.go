package config

// EnvPrefix namespaces every variable read by Load.
const EnvPrefix = "GOCART"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv    = "GOCART_APP_ENV"
	EnvPort      = "GOCART_APP_PORT"
	EnvLogLevel  = "GOCART_LOG_LEVEL"
	EnvLogFormat = "GOCART_LOG_FORMAT"

	EnvDBDSN  = "GOCART_DB_DSN"
	EnvDBHost = "GOCART_DB_HOST"
	EnvDBUser = "GOCART_DB_USER"
	EnvDBName = "GOCART_DB_NAME"

	EnvRedisURL = "GOCART_REDIS_URL"

	EnvIdentitySecret = "GOCART_IDENTITY_JWT_SECRET"
	EnvIdentityIssuer = "GOCART_IDENTITY_JWT_ISSUER"

	EnvAdminJWTSecret = "GOCART_ADMIN_JWT_SECRET"
	EnvAdminJWTIssuer = "GOCART_ADMIN_JWT_ISSUER"
	EnvAdminJWTTTL    = "GOCART_ADMIN_JWT_TTL"

	EnvSeedAdminEmail    = "ADMIN_EMAIL"
	EnvSeedAdminPassword = "ADMIN_PASSWORD"
	EnvSeedAdminName     = "ADMIN_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
