package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/multierr"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	Identity      IdentityConfig
	AdminJWT      AdminJWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Idempotency   IdempotencyConfig
	CORS          CORSConfig
	Feed          FeedConfig
	FeatureFlags  FeatureFlagsConfig
	Seed          SeedConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if !cfg.FeatureFlags.UseSQLite {
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every semantic problem at once instead of failing on the first.
func (c *Config) Validate() error {
	var err error
	if c.AdminJWT.TTL <= 0 {
		err = multierr.Append(err, fmt.Errorf("%s must be positive", EnvAdminJWTTTL))
	}
	if c.AdminJWT.Secret == c.Identity.Secret {
		err = multierr.Append(err, fmt.Errorf("%s must differ from %s", EnvAdminJWTSecret, EnvIdentitySecret))
	}
	if c.App.IsProd() && c.FeatureFlags.UseSQLite {
		err = multierr.Append(err, fmt.Errorf("sqlite is not allowed in %s", AppEnvProd))
	}
	if c.Idempotency.TTL < 0 {
		err = multierr.Append(err, fmt.Errorf("idempotency ttl cannot be negative"))
	}
	return err
}

type AppConfig struct {
	Env          string `envconfig:"GOCART_APP_ENV" required:"true"`
	Port         string `envconfig:"GOCART_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"GOCART_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"GOCART_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"GOCART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN        string `envconfig:"GOCART_DB_DSN"`
	SQLitePath string `envconfig:"GOCART_DB_SQLITE_PATH" default:"gocart.db"`

	LegacyHost     string `envconfig:"GOCART_DB_HOST"`
	LegacyPort     int    `envconfig:"GOCART_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"GOCART_DB_USER"`
	LegacyPassword string `envconfig:"GOCART_DB_PASSWORD"`
	LegacyName     string `envconfig:"GOCART_DB_NAME"`
	LegacySSLMode  string `envconfig:"GOCART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"GOCART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"GOCART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"GOCART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GOCART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"GOCART_REDIS_URL"`
	Address      string        `envconfig:"GOCART_REDIS_ADDR"`
	Password     string        `envconfig:"GOCART_REDIS_PASSWORD"`
	DB           int           `envconfig:"GOCART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GOCART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GOCART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GOCART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GOCART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GOCART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// IdentityConfig verifies bearer tokens minted by the external identity provider.
type IdentityConfig struct {
	Secret string `envconfig:"GOCART_IDENTITY_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"GOCART_IDENTITY_JWT_ISSUER" required:"true"`
}

// AdminJWTConfig drives the admin_token cookie.
type AdminJWTConfig struct {
	Secret     string        `envconfig:"GOCART_ADMIN_JWT_SECRET" required:"true"`
	Issuer     string        `envconfig:"GOCART_ADMIN_JWT_ISSUER" default:"gocart-admin"`
	TTL        time.Duration `envconfig:"GOCART_ADMIN_JWT_TTL" default:"24h"`
	CookieName string        `envconfig:"GOCART_ADMIN_COOKIE_NAME" default:"admin_token"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"GOCART_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"GOCART_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"GOCART_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"GOCART_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"GOCART_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"GOCART_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"GOCART_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"GOCART_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type IdempotencyConfig struct {
	TTL time.Duration `envconfig:"GOCART_IDEMPOTENCY_TTL" default:"24h"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"GOCART_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type FeedConfig struct {
	SendBuffer int `envconfig:"GOCART_FEED_SEND_BUFFER" default:"256"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"GOCART_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"GOCART_AUTO_MIGRATE" default:"false"`
}

// SeedConfig mirrors the variables understood by cmd/seed.
type SeedConfig struct {
	AdminEmail    string `envconfig:"ADMIN_EMAIL" default:"admin@gocart.com"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD" default:"admin123"`
	AdminName     string `envconfig:"ADMIN_NAME" default:"Admin User"`
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
