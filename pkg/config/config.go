package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Checkout      CheckoutConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if _, err := cfg.Checkout.Fee(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BODEGA_APP_ENV" required:"true"`
	Port         string `envconfig:"BODEGA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"BODEGA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BODEGA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"BODEGA_DB_DSN"`
	Driver string `envconfig:"BODEGA_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"BODEGA_DB_HOST"`
	Port     int    `envconfig:"BODEGA_DB_PORT" default:"5432"`
	User     string `envconfig:"BODEGA_DB_USER"`
	Password string `envconfig:"BODEGA_DB_PASSWORD"`
	Name     string `envconfig:"BODEGA_DB_NAME"`
	SSLMode  string `envconfig:"BODEGA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BODEGA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BODEGA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BODEGA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BODEGA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BODEGA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"BODEGA_REDIS_ADDR"`
	Password     string        `envconfig:"BODEGA_REDIS_PASSWORD"`
	DB           int           `envconfig:"BODEGA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BODEGA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BODEGA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BODEGA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BODEGA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BODEGA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"BODEGA_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"BODEGA_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"BODEGA_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"BODEGA_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"BODEGA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"BODEGA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"BODEGA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"BODEGA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"BODEGA_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"BODEGA_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"BODEGA_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"BODEGA_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"BODEGA_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"BODEGA_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"BODEGA_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

// CheckoutConfig carries the order-composer settings: the flat delivery fee
// and the WhatsApp number that receives composed orders.
type CheckoutConfig struct {
	DeliveryFee    string `envconfig:"BODEGA_DELIVERY_FEE" default:"5.00"`
	WhatsAppNumber string `envconfig:"BODEGA_WHATSAPP_NUMBER" default:"5581995016183"`
}

// Fee parses the configured delivery fee as a decimal.
func (c CheckoutConfig) Fee() (decimal.Decimal, error) {
	fee, err := decimal.NewFromString(strings.TrimSpace(c.DeliveryFee))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing delivery fee %q: %w", c.DeliveryFee, err)
	}
	if fee.IsNegative() {
		return decimal.Zero, fmt.Errorf("delivery fee must be non-negative, got %s", fee)
	}
	return fee, nil
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"BODEGA_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if strings.EqualFold(db.Driver, "sqlite") {
		return fmt.Errorf("%s is required when %s is sqlite", EnvDBDSN, EnvDBDriver)
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, name := range requiredDBEnvVars {
		if values[name] == "" {
			missing = append(missing, name)
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
