package config

const (
	EnvPrefix = "GESTION"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"

	EnvAppEnv      = "GESTION_APP_ENV"
	EnvPort        = "GESTION_APP_PORT"
	EnvDBDSN       = "GESTION_DB_DSN"
	EnvDBDriver    = "GESTION_DB_DRIVER"
	EnvDBHost      = "GESTION_DB_HOST"
	EnvDBUser      = "GESTION_DB_USER"
	EnvDBName      = "GESTION_DB_NAME"
	EnvRedisURL    = "GESTION_REDIS_URL"
	EnvJWTSecret   = "GESTION_JWT_SECRET"
	EnvJWTIssuer   = "GESTION_JWT_ISSUER"
	EnvJWTExpMins  = "GESTION_JWT_EXPIRATION_MINUTES"
	EnvSalesZoneID = "GESTION_SALES_ZONE_ID"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
