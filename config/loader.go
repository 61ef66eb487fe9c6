package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envBindings maps config keys to their canonical environment variables.
// This is the single configuration surface: one name per value, no fallbacks.
var envBindings = map[string]string{
	"host":              "HOST",
	"port":              "PORT",
	"allowed_origin":    "ALLOWED_ORIGIN",
	"bot_token":         "BOT_TOKEN",
	"chat_id":           "CHAT_ID",
	"api_base_url":      "API_BASE_URL",
	"identity_issuer":   "IDENTITY_ISSUER",
	"identity_audience": "IDENTITY_AUDIENCE",
	"max_upload_size":   "MAX_UPLOAD_SIZE",
	"forward_timeout":   "FORWARD_TIMEOUT",
	"otel_endpoint":     "OTEL_ENDPOINT",
	"logging.level":     "LOG_LEVEL",
	"logging.format":    "LOG_FORMAT",
	"logging.output":    "LOG_OUTPUT",
}

// Load reads configuration from the environment. If envFile is non-empty (or
// a .env file exists in the working directory) it is loaded first without
// overriding variables already present in the environment.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("config: bind %s: %w", env, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
