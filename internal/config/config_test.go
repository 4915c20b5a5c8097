package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TRANSPORT", "telegram")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.False(t, cfg.Production())
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "data/remindbot.db", cfg.DBDSN)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, time.Minute, cfg.DispatchInterval)
	assert.Equal(t, 10*time.Second, cfg.OracleTimeout)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	assert.Equal(t, 5, cfg.DBConnectAttempts)
	assert.Equal(t, 2*time.Second, cfg.DBConnectBackoff)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "Production")
	t.Setenv("TRANSPORT", "whatsapp")
	t.Setenv("WHATSAPP_VERIFY_TOKEN", "v")
	t.Setenv("WHATSAPP_ACCESS_TOKEN", "a")
	t.Setenv("WHATSAPP_PHONE_NUMBER_ID", "p")
	t.Setenv("DB_DRIVER", "mongo")
	t.Setenv("DISPATCH_INTERVAL", "30s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Production())
	assert.Equal(t, DriverMongo, cfg.DBDriver)
	assert.Equal(t, 30*time.Second, cfg.DispatchInterval)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Transport:         TransportTelegram,
		TelegramBotToken:  "t",
		DBDriver:          DriverMemory,
		DBConnectAttempts: 1,
		DispatchInterval:  time.Minute,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"unknown transport", func(c *Config) { c.Transport = "sms" }, `unknown TRANSPORT "sms"`},
		{"telegram token", func(c *Config) { c.TelegramBotToken = "" }, "TELEGRAM_BOT_TOKEN"},
		{"whatsapp creds", func(c *Config) { c.Transport = TransportWhatsApp }, "WHATSAPP_ACCESS_TOKEN"},
		{"driver", func(c *Config) { c.DBDriver = "oracle" }, `unknown DB_DRIVER "oracle"`},
		{"attempts", func(c *Config) { c.DBConnectAttempts = 0 }, "DB_CONNECT_ATTEMPTS"},
		{"interval", func(c *Config) { c.DispatchInterval = 0 }, "DISPATCH_INTERVAL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRead_SkipsValidation(t *testing.T) {
	t.Setenv("TRANSPORT", "carrier-pigeon")

	cfg, err := Read()
	require.NoError(t, err)
	assert.Equal(t, "carrier-pigeon", cfg.Transport)

	_, err = Load()
	assert.Error(t, err)
}
