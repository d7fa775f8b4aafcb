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
	Sales        SalesConfig
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

// LoadJWT reads only the token settings, for tools that never touch the database.
func LoadJWT() (JWTConfig, error) {
	var cfg JWTConfig
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return JWTConfig{}, fmt.Errorf("parsing jwt config: %w", err)
	}
	return cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"GESTION_APP_ENV" required:"true"`
	Port         string   `envconfig:"GESTION_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"GESTION_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"GESTION_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"GESTION_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"GESTION_DB_DSN"`
	Driver string `envconfig:"GESTION_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"GESTION_DB_HOST"`
	LegacyPort     int    `envconfig:"GESTION_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"GESTION_DB_USER"`
	LegacyPassword string `envconfig:"GESTION_DB_PASSWORD"`
	LegacyName     string `envconfig:"GESTION_DB_NAME"`
	LegacySSLMode  string `envconfig:"GESTION_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"GESTION_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"GESTION_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"GESTION_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GESTION_DB_CONN_MAX_IDLE_TIME" default:"10m"`
	// SlowQuery is the latency above which statements are logged at warn.
	SlowQuery time.Duration `envconfig:"GESTION_DB_SLOW_QUERY" default:"500ms"`
}

// IsSQLite reports whether the configured driver is the embedded SQLite one.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DBDriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"GESTION_REDIS_URL" required:"true"`
	Address      string        `envconfig:"GESTION_REDIS_ADDR"`
	Password     string        `envconfig:"GESTION_REDIS_PASSWORD"`
	DB           int           `envconfig:"GESTION_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GESTION_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GESTION_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GESTION_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GESTION_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GESTION_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"GESTION_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"GESTION_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"GESTION_JWT_EXPIRATION_MINUTES" required:"true"`
}

// SalesConfig controls the point-of-sale workflow.
type SalesConfig struct {
	// ZoneID pins the zone checkout draws stock from. Zero enables the name heuristic.
	ZoneID      int64 `envconfig:"GESTION_SALES_ZONE_ID" default:"0"`
	SearchLimit int   `envconfig:"GESTION_SALES_SEARCH_LIMIT" default:"10"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"GESTION_AUTO_MIGRATE" default:"false"`
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
