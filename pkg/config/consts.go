package config

const (
	EnvPrefix = "NEOKART"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv = "NEOKART_APP_ENV"

	EnvDBDSN  = "NEOKART_DB_DSN"
	EnvDBHost = "NEOKART_DB_HOST"
	EnvDBUser = "NEOKART_DB_USER"
	EnvDBName = "NEOKART_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
