package config

// EnvPrefix is the envconfig prefix for all service variables.
const EnvPrefix = "licensing"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "LICENSING_DB_DSN"
	EnvDBHost = "LICENSING_DB_HOST"
	EnvDBUser = "LICENSING_DB_USER"
	EnvDBName = "LICENSING_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
