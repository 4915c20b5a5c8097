package bot

import (
	"time"
)

// BotConfig represents the configuration for the bot
type BotConfig struct {
	// Bound for every user store call made while handling a message
	StoreTimeout time.Duration
	// Bound for every outbound reply
	SendTimeout time.Duration
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() *BotConfig {
	return &BotConfig{
		StoreTimeout: 5 * time.Second,
		SendTimeout:  10 * time.Second,
	}
}
