// Package config manages environment variables.
//
// It reads variables (optionally from a `.env` file), loads them into
// structured Go types and validates that required values are present so
// they can be injected across the application runtime.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads `.env` into the process env before we read it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from every variable before it is mapped to a key.
const EnvPrefix = "MASSILIA_"

/*
	Env vars are read using the MASSILIA_ prefix. The first underscore after
	the prefix separates the section from the field, so:

	  MASSILIA_SERVER_PORT            -> server.port
	  MASSILIA_MAIL_OPERATOR_ADDRESS  -> mail.operator_address
	  MASSILIA_OBSERVABILITY_LOGGING__LEVEL -> observability.logging.level

	Deeper nesting uses a double underscore.

	Anything not set keeps the value from Default().
*/

// Config is the root configuration object for the application.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Mail          MailConfig           `koanf:"mail" validate:"required"`
	Contact       ContactConfig        `koanf:"contact"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are expressed in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// Mail providers.
const (
	ProviderSMTP   = "smtp"
	ProviderResend = "resend"
)

// SMTP security modes.
const (
	SecurityStartTLS = "starttls"
	SecurityTLS      = "tls"
	SecurityNone     = "none"
)

// MailConfig describes the mail relay and the addresses used by the
// contact pipeline.
type MailConfig struct {
	Provider string `koanf:"provider" validate:"required,oneof=smtp resend"`

	Host     string `koanf:"host" validate:"required_if=Provider smtp"`
	Port     int    `koanf:"port" validate:"required_if=Provider smtp"`
	Security string `koanf:"security" validate:"omitempty,oneof=starttls tls none"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`

	// TLSSkipVerify accepts self-signed relay certificates.
	TLSSkipVerify bool `koanf:"tls_skip_verify"`

	// DialTimeout bounds the TCP/TLS dial, in seconds.
	DialTimeout int `koanf:"dial_timeout" validate:"min=0"`

	// IOTimeout bounds each session phase once connected (greeting and
	// handshake, envelope, DATA), in seconds.
	IOTimeout int `koanf:"io_timeout" validate:"min=0"`

	ResendAPIKey string `koanf:"resend_api_key" validate:"required_if=Provider resend"`

	// ResendBaseURL overrides the Resend API endpoint.
	ResendBaseURL string `koanf:"resend_base_url" validate:"omitempty,url"`

	// FromAddress defaults to Username when empty.
	FromAddress     string `koanf:"from_address"`
	FromName        string `koanf:"from_name" validate:"required"`
	OperatorAddress string `koanf:"operator_address" validate:"required"`
}

// Sender returns the envelope sender address.
func (m MailConfig) Sender() string {
	if m.FromAddress != "" {
		return m.FromAddress
	}
	return m.Username
}

// ContactConfig holds the contact form rules that are not hard-wired.
type ContactConfig struct {
	// PhonePrefix is prepended to the submitted phone number in emails.
	PhonePrefix string `koanf:"phone_prefix"`

	// MaxMessageLength caps the message in runes. Zero disables the check.
	MaxMessageLength int `koanf:"max_message_length" validate:"min=0"`
}

// Default returns the configuration used for every key the environment
// does not override.
func Default() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:               "8080",
			ReadTimeout:        30,
			WriteTimeout:       90,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
		},
		Mail: MailConfig{
			Provider:        ProviderSMTP,
			Host:            "plesk1.tn.oxa.host",
			Port:            587,
			Security:        SecurityStartTLS,
			Username:        "contact@waaw.tn",
			DialTimeout:     30,
			IOTimeout:       60,
			FromName:        "MassiliaDrive",
			OperatorAddress: "ranizouaouicontact@gmail.com",
		},
		Contact: ContactConfig{
			PhonePrefix:      "+33",
			MaxMessageLength: 500,
		},
	}
}

// LoadConfig loads configuration from environment variables on top of
// Default(), validates it and applies observability defaults.
func LoadConfig() (*Config, error) {
	return load(env.Provider(EnvPrefix, ".", envKey))
}

// envKey maps MASSILIA_MAIL_OPERATOR_ADDRESS to mail.operator_address.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	key = strings.Replace(key, "_", ".", 1)
	return strings.ReplaceAll(key, "__", ".")
}

func load(provider koanf.Provider) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(provider, nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	cfg := Default()
	cfg.Observability = DefaultObservabilityConfig()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	// Comma separated list in env.
	if origins := k.String("server.cors_allowed_origins"); origins != "" {
		cfg.Server.CORSAllowedOrigins = splitList(origins)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.Mail.Provider == ProviderSMTP && cfg.Mail.Sender() == "" {
		return nil, fmt.Errorf("mail.from_address or mail.username is required for smtp")
	}

	if cfg.Observability == nil {
		cfg.Observability = DefaultObservabilityConfig()
	}

	cfg.Observability.ServiceName = "massiliadrive"
	cfg.Observability.Environment = cfg.Primary.Env

	if err := cfg.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
