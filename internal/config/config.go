package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Pipeline PipelineConfig `mapstructure:"pipeline" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error fatal"`
	// Environment switches error detail in responses; only "development"
	// exposes it.
	Environment string `mapstructure:"environment" validate:"required,oneof=development production test"`
}

// IsDevelopment reports whether the server runs in development mode.
func (c ServerConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0,lt=44640"`
}

// PipelineConfig tunes the request pipeline.
type PipelineConfig struct {
	// SlowRequestThresholdMS is the handler time above which a request is
	// logged as long running.
	SlowRequestThresholdMS int `mapstructure:"slow_request_threshold_ms" validate:"required,gt=0"`
	// CaseInsensitiveDiscriminator lets the discriminator property of
	// polymorphic payloads match regardless of case.
	CaseInsensitiveDiscriminator bool `mapstructure:"case_insensitive_discriminator"`
}
