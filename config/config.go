// Package config loads the relay's configuration from the environment,
// with optional .env file support for local development.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/skillsenselab/uploadrelay/logger"
	"github.com/skillsenselab/uploadrelay/util"
)

// Config is the complete service configuration. All values are
// environment-sourced; secrets are never read from files.
type Config struct {
	// Host and Port form the listen address.
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port" validate:"gte=0,lte=65535"`

	// AllowedOrigin is the CORS origin allowed to call the relay ("*" for any).
	AllowedOrigin string `mapstructure:"allowed_origin"`

	// BotToken authenticates the relay against the remote document API.
	BotToken string `mapstructure:"bot_token" validate:"required"`
	// ChatID is the destination channel for forwarded documents.
	ChatID string `mapstructure:"chat_id" validate:"required"`
	// APIBaseURL is the remote document API base URL.
	APIBaseURL string `mapstructure:"api_base_url" validate:"url"`

	// IdentityIssuer is the OIDC issuer URL used to verify bearer tokens.
	IdentityIssuer string `mapstructure:"identity_issuer" validate:"required,url"`
	// IdentityAudience is the expected "aud" claim of verified tokens.
	IdentityAudience string `mapstructure:"identity_audience" validate:"required"`

	// MaxUploadSize bounds inbound bodies, e.g. "50MB".
	MaxUploadSize string `mapstructure:"max_upload_size"`
	// ForwardTimeout bounds the outbound call to the document API.
	ForwardTimeout time.Duration `mapstructure:"forward_timeout"`

	// OTELEndpoint enables OTLP trace/metric export when set (host:port).
	OTELEndpoint string `mapstructure:"otel_endpoint"`

	Logging logger.Config `mapstructure:"logging"`
}

// ApplyDefaults sets sensible default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.AllowedOrigin == "" {
		c.AllowedOrigin = "*"
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = "https://api.telegram.org"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "50MB"
	}
	if c.ForwardTimeout == 0 {
		c.ForwardTimeout = 2 * time.Minute
	}
	c.Logging.ApplyDefaults()
}

// Validate checks the configuration. Missing required secrets fail here so
// the process refuses to start instead of failing on the first request.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			return fmt.Errorf("config: %s is %s", fieldEnvName(verrs[0].Field()), verrs[0].Tag())
		}
		return fmt.Errorf("config: %w", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Summary returns a log-safe view of the configuration with secrets masked.
func (c *Config) Summary() map[string]interface{} {
	return map[string]interface{}{
		"addr":              c.Addr(),
		"allowed_origin":    c.AllowedOrigin,
		"api_base_url":      c.APIBaseURL,
		"bot_token":         util.MaskSecret(c.BotToken, 6),
		"chat_id":           util.MaskSecret(c.ChatID, 4),
		"identity_issuer":   c.IdentityIssuer,
		"identity_audience": c.IdentityAudience,
		"max_upload_size":   c.MaxUploadSize,
		"forward_timeout":   c.ForwardTimeout.String(),
	}
}

var validate = validator.New()

// fieldEnvName maps a struct field name back to its environment variable.
func fieldEnvName(field string) string {
	switch field {
	case "BotToken":
		return "BOT_TOKEN"
	case "ChatID":
		return "CHAT_ID"
	case "APIBaseURL":
		return "API_BASE_URL"
	case "IdentityIssuer":
		return "IDENTITY_ISSUER"
	case "IdentityAudience":
		return "IDENTITY_AUDIENCE"
	case "Port":
		return "PORT"
	default:
		return field
	}
}
