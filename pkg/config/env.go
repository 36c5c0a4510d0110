package config

// EnvPrefix is the envconfig prefix shared by every setting.
const EnvPrefix = "bodega"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv                 = "BODEGA_APP_ENV"
	EnvPort                   = "BODEGA_APP_PORT"
	EnvDBDSN                  = "BODEGA_DB_DSN"
	EnvDBDriver               = "BODEGA_DB_DRIVER"
	EnvDBHost                 = "BODEGA_DB_HOST"
	EnvDBUser                 = "BODEGA_DB_USER"
	EnvDBName                 = "BODEGA_DB_NAME"
	EnvRedisURL               = "BODEGA_REDIS_URL"
	EnvJWTSecret              = "BODEGA_JWT_SECRET"
	EnvJWTIssuer              = "BODEGA_JWT_ISSUER"
	EnvJWTExpMins             = "BODEGA_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "BODEGA_REFRESH_TOKEN_TTL_MINUTES"
	EnvDeliveryFee            = "BODEGA_DELIVERY_FEE"
	EnvWhatsAppNumber         = "BODEGA_WHATSAPP_NUMBER"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
