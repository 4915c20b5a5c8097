// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Transports and storage drivers understood by the process.
const (
	TransportWhatsApp = "whatsapp"
	TransportTelegram = "telegram"

	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"` // debug|info|warn|error
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`

	Transport             string `envconfig:"TRANSPORT" default:"whatsapp"` // whatsapp|telegram
	WhatsAppVerifyToken   string `envconfig:"WHATSAPP_VERIFY_TOKEN"`
	WhatsAppAccessToken   string `envconfig:"WHATSAPP_ACCESS_TOKEN"`
	WhatsAppPhoneNumberID string `envconfig:"WHATSAPP_PHONE_NUMBER_ID"`
	WhatsAppAppSecret     string `envconfig:"WHATSAPP_APP_SECRET"`
	WhatsAppAPIBase       string `envconfig:"WHATSAPP_API_BASE" default:"https://graph.facebook.com/v21.0"`
	TelegramBotToken      string `envconfig:"TELEGRAM_BOT_TOKEN"`

	OpenAIKey    string `envconfig:"OPENAI_API_KEY"`
	OpenAIModel  string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	OpenAIAPIURL string `envconfig:"OPENAI_API_URL" default:"https://api.openai.com/v1/chat/completions"`

	DBDriver          string        `envconfig:"DB_DRIVER" default:"sqlite3"` // sqlite3|postgres|mongo|memory
	DBDSN             string        `envconfig:"DB_DSN" default:"data/remindbot.db"`
	MongoDatabase     string        `envconfig:"MONGO_DATABASE" default:"remindbot"`
	DBConnectAttempts int           `envconfig:"DB_CONNECT_ATTEMPTS" default:"5"`
	DBConnectBackoff  time.Duration `envconfig:"DB_CONNECT_BACKOFF" default:"2s"`

	DispatchInterval time.Duration `envconfig:"DISPATCH_INTERVAL" default:"1m"`
	OracleTimeout    time.Duration `envconfig:"ORACLE_TIMEOUT" default:"10s"`
	TransportTimeout time.Duration `envconfig:"TRANSPORT_TIMEOUT" default:"10s"`
	StoreTimeout     time.Duration `envconfig:"STORE_TIMEOUT" default:"5s"`
}

// Load reads a .env file if one exists, then the environment, and validates the result.
func Load() (Config, error) {
	cfg, err := Read()
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Read is Load without validation, for tools that only need storage settings.
func Read() (Config, error) {
	_ = godotenv.Load() // Load .env file if present

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Production reports whether the process runs in the production environment.
func (c Config) Production() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// Validate checks that the selected transport and driver are known and configured.
func (c Config) Validate() error {
	var errs []error

	switch c.Transport {
	case TransportWhatsApp:
		if c.WhatsAppVerifyToken == "" {
			errs = append(errs, errors.New("WHATSAPP_VERIFY_TOKEN is required"))
		}
		if c.WhatsAppAccessToken == "" {
			errs = append(errs, errors.New("WHATSAPP_ACCESS_TOKEN is required"))
		}
		if c.WhatsAppPhoneNumberID == "" {
			errs = append(errs, errors.New("WHATSAPP_PHONE_NUMBER_ID is required"))
		}
	case TransportTelegram:
		if c.TelegramBotToken == "" {
			errs = append(errs, errors.New("TELEGRAM_BOT_TOKEN is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown TRANSPORT %q", c.Transport))
	}

	switch c.DBDriver {
	case DriverSQLite, DriverPostgres, DriverMongo, DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver))
	}

	if c.DBConnectAttempts < 1 {
		errs = append(errs, errors.New("DB_CONNECT_ATTEMPTS must be at least 1"))
	}
	if c.DispatchInterval <= 0 {
		errs = append(errs, errors.New("DISPATCH_INTERVAL must be positive"))
	}
	return errors.Join(errs...)
}
