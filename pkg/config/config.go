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
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Session      SessionConfig
	RateLimit    RateLimitConfig
	Admin        AdminConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"NEOKART_APP_ENV" required:"true"`
	Port         string `envconfig:"NEOKART_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"NEOKART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"NEOKART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"NEOKART_DB_DSN"`
	Driver string `envconfig:"NEOKART_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"NEOKART_DB_HOST"`
	LegacyPort     int    `envconfig:"NEOKART_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"NEOKART_DB_USER"`
	LegacyPassword string `envconfig:"NEOKART_DB_PASSWORD"`
	LegacyName     string `envconfig:"NEOKART_DB_NAME"`
	LegacySSLMode  string `envconfig:"NEOKART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"NEOKART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"NEOKART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"NEOKART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"NEOKART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"NEOKART_REDIS_URL" required:"true"`
	Address      string        `envconfig:"NEOKART_REDIS_ADDR"`
	Password     string        `envconfig:"NEOKART_REDIS_PASSWORD"`
	DB           int           `envconfig:"NEOKART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"NEOKART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"NEOKART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"NEOKART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"NEOKART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"NEOKART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"NEOKART_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"NEOKART_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"NEOKART_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"NEOKART_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"NEOKART_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"NEOKART_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"NEOKART_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"NEOKART_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"NEOKART_ARGON_KEY_LEN" default:"32"`
}

// SessionConfig tunes the visitor session bag (theme, coupon, browse lists).
type SessionConfig struct {
	CookieName string        `envconfig:"NEOKART_SESSION_COOKIE" default:"nk_session"`
	TTL        time.Duration `envconfig:"NEOKART_SESSION_TTL" default:"720h"`
}

// RateLimitConfig throttles the credential-guessing surfaces. A zero
// limit or window disables the check.
type RateLimitConfig struct {
	AuthWindow time.Duration `envconfig:"NEOKART_AUTH_RATE_WINDOW" default:"1m"`
	AuthLimit  int           `envconfig:"NEOKART_AUTH_RATE_LIMIT" default:"10"`
}

// AdminConfig feeds the explicit provisioning command; it is never read
// during request handling.
type AdminConfig struct {
	Email    string `envconfig:"NEOKART_ADMIN_EMAIL"`
	Password string `envconfig:"NEOKART_ADMIN_PASSWORD"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"NEOKART_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"NEOKART_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
