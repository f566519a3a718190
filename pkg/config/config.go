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
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Entitlement  EntitlementConfig
	Audit        AuditConfig
	Cron         CronConfig
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
	Env          string `envconfig:"LICENSING_APP_ENV" required:"true"`
	Port         string `envconfig:"LICENSING_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"LICENSING_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LICENSING_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"LICENSING_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"LICENSING_DB_DSN"`
	Driver string `envconfig:"LICENSING_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"LICENSING_DB_HOST"`
	LegacyPort     int    `envconfig:"LICENSING_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"LICENSING_DB_USER"`
	LegacyPassword string `envconfig:"LICENSING_DB_PASSWORD"`
	LegacyName     string `envconfig:"LICENSING_DB_NAME"`
	LegacySSLMode  string `envconfig:"LICENSING_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LICENSING_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LICENSING_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LICENSING_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LICENSING_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"LICENSING_REDIS_URL" required:"true"`
	Address      string        `envconfig:"LICENSING_REDIS_ADDR"`
	Password     string        `envconfig:"LICENSING_REDIS_PASSWORD"`
	DB           int           `envconfig:"LICENSING_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LICENSING_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LICENSING_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LICENSING_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LICENSING_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LICENSING_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"LICENSING_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"LICENSING_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"LICENSING_JWT_EXPIRATION_MINUTES" default:"60"`
}

// EntitlementConfig tunes the license resolution pipeline.
type EntitlementConfig struct {
	// LookupTimeout bounds each external store read. Hitting it degrades the
	// request to the most restrictive validation instead of hanging.
	LookupTimeout  time.Duration `envconfig:"LICENSING_ENTITLEMENT_LOOKUP_TIMEOUT" default:"3s"`
	UpgradeBaseURL string        `envconfig:"LICENSING_UPGRADE_BASE_URL"`
	DemoTrialDays  int           `envconfig:"LICENSING_DEMO_TRIAL_DAYS" default:"14"`
}

// UpgradeURLFor builds the upgrade link advertised in denial responses.
// Returns "" when no base URL is configured.
func (e EntitlementConfig) UpgradeURLFor(userID string) string {
	base := strings.TrimSpace(e.UpgradeBaseURL)
	if base == "" {
		return ""
	}
	u, err := url.Parse(base)
	if err != nil {
		return ""
	}
	q := u.Query()
	q.Set("source", "license_validation")
	q.Set("userId", userID)
	u.RawQuery = q.Encode()
	return u.String()
}

type AuditConfig struct {
	QueueSize     int           `envconfig:"LICENSING_AUDIT_QUEUE_SIZE" default:"1024"`
	WriteTimeout  time.Duration `envconfig:"LICENSING_AUDIT_WRITE_TIMEOUT" default:"5s"`
	RetentionDays int           `envconfig:"LICENSING_AUDIT_RETENTION_DAYS" default:"90"`
}

type CronConfig struct {
	Interval time.Duration `envconfig:"LICENSING_CRON_INTERVAL" default:"1h"`
	LockTTL  time.Duration `envconfig:"LICENSING_CRON_LOCK_TTL" default:"55m"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"LICENSING_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"LICENSING_AUTO_MIGRATE" default:"false"`
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
