package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timeout, queue names, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	SMTP     SMTPConfig
	Storage  StorageConfig
	Analyzer AnalyzerConfig
	CORS     CORSConfig
	Log      LogConfig
	JWT      JWTConfig
	Cookie   CookieConfig
	MFA      MFAConfig
	Edit     EditConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type RabbitMQConfig struct {
	DSN            string        `envconfig:"RABBITMQ_DSN" required:"true"`
	Queue          string        `envconfig:"RABBITMQ_CODE_QUEUE" default:"verification_codes"`
	PublishTimeout time.Duration `envconfig:"RABBITMQ_PUBLISH_TIMEOUT" default:"10s"`
}

type SMTPConfig struct {
	Host        string        `envconfig:"SMTP_HOST" required:"true"`
	Port        int           `envconfig:"SMTP_PORT" default:"465"`
	Username    string        `envconfig:"SMTP_USERNAME" required:"true"`
	Password    string        `envconfig:"SMTP_PASSWORD" required:"true"`
	From        string        `envconfig:"SMTP_FROM" required:"true"`
	DialTimeout time.Duration `envconfig:"SMTP_DIAL_TIMEOUT" default:"10s"`
}

type StorageConfig struct {
	Endpoint  string `envconfig:"STORAGE_ENDPOINT" required:"true"`
	AccessKey string `envconfig:"STORAGE_ACCESS_KEY" required:"true"`
	SecretKey string `envconfig:"STORAGE_SECRET_KEY" required:"true"`
	Bucket    string `envconfig:"STORAGE_BUCKET" default:"happy-hour-menus"`
	UseSSL    bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
}

// AnalyzerConfig points at the external PDF analysis service.
// BaseURL is required: a missing value is a configuration error and
// must fail before any upload is attempted.
type AnalyzerConfig struct {
	BaseURL    string        `envconfig:"ANALYZER_BASE_URL" required:"true"`
	Timeout    time.Duration `envconfig:"ANALYZER_TIMEOUT" default:"60s"`
	RetryCount int           `envconfig:"ANALYZER_RETRY_COUNT" default:"0"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

type JWTConfig struct {
	Secret               string `envconfig:"JWT_SECRET" required:"true"`
	AccessTokenDuration  string `envconfig:"JWT_ACCESS_TOKEN_DURATION" default:"15m"`
	RefreshTokenDuration string `envconfig:"JWT_REFRESH_TOKEN_DURATION" default:"168h"`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN" default:""`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"false"`
	SameSite string `envconfig:"COOKIE_SAME_SITE" default:"Lax"`
}

type MFAConfig struct {
	CodeTTL      time.Duration `envconfig:"MFA_CODE_TTL" default:"5m"`
	ChallengeTTL time.Duration `envconfig:"MFA_CHALLENGE_TTL" default:"10m"`
}

// EditConfig bounds server-held edit sessions. An abandoned draft
// expires instead of pinning redis memory forever.
type EditConfig struct {
	SessionTTL time.Duration `envconfig:"EDIT_SESSION_TTL" default:"24h"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		Analyzer: AnalyzerConfig{
			BaseURL: "http://localhost:18080",
			Timeout: 5 * time.Second,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeFormat: "2006-01-02 15:04:05.000",
		},
	}
}
