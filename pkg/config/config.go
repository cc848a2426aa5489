package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Dashboard     DashboardConfig
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
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"AGROSTORE_APP_ENV" required:"true"`
	Port         string `envconfig:"AGROSTORE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"AGROSTORE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"AGROSTORE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"AGROSTORE_DB_DSN"`
	Driver string `envconfig:"AGROSTORE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"AGROSTORE_DB_HOST"`
	LegacyPort     int    `envconfig:"AGROSTORE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"AGROSTORE_DB_USER"`
	LegacyPassword string `envconfig:"AGROSTORE_DB_PASSWORD"`
	LegacyName     string `envconfig:"AGROSTORE_DB_NAME"`
	LegacySSLMode  string `envconfig:"AGROSTORE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"AGROSTORE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"AGROSTORE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"AGROSTORE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"AGROSTORE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"AGROSTORE_REDIS_URL" required:"true"`
	PoolSize     int           `envconfig:"AGROSTORE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"AGROSTORE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"AGROSTORE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"AGROSTORE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"AGROSTORE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"AGROSTORE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"AGROSTORE_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"AGROSTORE_JWT_EXPIRATION_MINUTES" required:"true"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"AGROSTORE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"AGROSTORE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"AGROSTORE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"AGROSTORE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"AGROSTORE_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow    time.Duration `envconfig:"AGROSTORE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUserLimit int           `envconfig:"AGROSTORE_AUTH_RATE_LIMIT_LOGIN_USER_LIMIT" default:"5"`
	LoginIPLimit   int           `envconfig:"AGROSTORE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

// DashboardConfig holds the rollup windows. These are deployment constants,
// never user input.
type DashboardConfig struct {
	ProfitWindow time.Duration `envconfig:"AGROSTORE_DASHBOARD_PROFIT_WINDOW" default:"720h"`
	SoldWindow   time.Duration `envconfig:"AGROSTORE_DASHBOARD_SOLD_WINDOW" default:"720h"`
	RentedWindow time.Duration `envconfig:"AGROSTORE_DASHBOARD_RENTED_WINDOW" default:"720h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"AGROSTORE_AUTO_MIGRATE" default:"false"`
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
