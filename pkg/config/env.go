package config

// EnvPrefix is the envconfig prefix shared by every service binary.
const EnvPrefix = "AGROSTORE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv     = "AGROSTORE_APP_ENV"
	EnvPort       = "AGROSTORE_APP_PORT"
	EnvDBDSN      = "AGROSTORE_DB_DSN"
	EnvDBHost     = "AGROSTORE_DB_HOST"
	EnvDBUser     = "AGROSTORE_DB_USER"
	EnvDBName     = "AGROSTORE_DB_NAME"
	EnvRedisURL   = "AGROSTORE_REDIS_URL"
	EnvJWTSecret  = "AGROSTORE_JWT_SECRET"
	EnvJWTIssuer  = "AGROSTORE_JWT_ISSUER"
	EnvJWTExpMins = "AGROSTORE_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
