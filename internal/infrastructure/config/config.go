// Package config provides configuration management for the application.
// It follows the 12-Factor App methodology by loading configuration
// from environment variables and supporting external configuration files.
//
// 12-Factor App Compliance:
//   - III. Config: Store config in the environment
//   - Configuration is loaded from environment variables
//   - Sensitive data (database DSN) only via environment
//   - No config files checked into version control
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/hapkiduki/loadplan-go/internal/application/service"
	"github.com/hapkiduki/loadplan-go/internal/domain/loadplan"
)

// History storage drivers.
const (
	HistoryDriverMemory   = "memory"
	HistoryDriverSQLite   = "sqlite"
	HistoryDriverPostgres = "postgres"
)

// Configuration validation errors.
var (
	ErrInvalidPort          = errors.New("server port must be between 1 and 65535")
	ErrInvalidGravity       = errors.New("engine gravity must be positive")
	ErrInvalidHistoryDriver = errors.New("unknown history driver")
	ErrInvalidRateLimit     = errors.New("rate limit must be positive when enabled")
	ErrMissingDSN           = errors.New("postgres history requires a dsn")
)

// Config holds all application configuration.
// All fields are populated from environment variables or config files.
type Config struct {
	// App contains application-level configuration
	App AppConfig `mapstructure:"app"`

	// Server contains HTTP server configuration
	Server ServerConfig `mapstructure:"server"`

	// Log contains logger configuration
	Log LogConfig `mapstructure:"log"`

	// RateLimit contains per-client request throttling
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// Engine contains the physical defaults applied to calculations
	Engine EngineConfig `mapstructure:"engine"`

	// History contains calculation history storage settings
	History HistoryConfig `mapstructure:"history"`

	// Telemetry contains metrics and tracing settings
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// AppConfig contains application-level configuration.
type AppConfig struct {
	// Name of the application
	Name string `mapstructure:"name"`

	// Environment the application is running in (e.g., development, staging, production)
	Environment string `mapstructure:"environment"`

	// Version of the application
	Version string `mapstructure:"version"`

	// Debug mode flag
	Debug bool `mapstructure:"debug"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	// Host is the server bind address
	Host string `mapstructure:"host"`

	// Port is the server port
	Port int `mapstructure:"port"`

	// ReadTimeout is the maximum duration for reading the entire request, including the body
	ReadTimeout time.Duration `mapstructure:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the response
	WriteTimeout time.Duration `mapstructure:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`

	// ShutdownTimeout is the maximum duration for graceful server shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// MaxRequestSize is the maximum allowed request body size
	MaxRequestSize int64 `mapstructure:"max_request_size"`

	// CORSAllowedOrigins is a list of allowed origins for CORS
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// Address returns host:port for net/http.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LogConfig contains logger configuration.
type LogConfig struct {
	// Level is the minimum log level (debug, info, warn, error)
	Level string `mapstructure:"level"`

	// Format is json or console
	Format string `mapstructure:"format"`
}

// RateLimitConfig configures the token bucket applied per client IP.
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// EngineConfig holds defaults used when a request omits a value.
type EngineConfig struct {
	// Gravity in m/s²
	Gravity float64 `mapstructure:"gravity"`

	// Accelerations in g, keyed by direction
	ForwardAccelerationG  float64 `mapstructure:"forward_acceleration_g"`
	RearwardAccelerationG float64 `mapstructure:"rearward_acceleration_g"`
	LateralAccelerationG  float64 `mapstructure:"lateral_acceleration_g"`

	// SafetyFactor multiplies the required force in every direction
	SafetyFactor float64 `mapstructure:"safety_factor"`
}

// ServiceDefaults converts the engine section for the calculator service.
func (e EngineConfig) ServiceDefaults() service.Defaults {
	return service.Defaults{
		Gravity: e.Gravity,
		Accelerations: map[loadplan.Direction]float64{
			loadplan.DirectionForward:  e.ForwardAccelerationG,
			loadplan.DirectionRearward: e.RearwardAccelerationG,
			loadplan.DirectionLateral:  e.LateralAccelerationG,
		},
		SafetyFactor: e.SafetyFactor,
	}
}

// HistoryConfig selects where calculation records are kept.
type HistoryConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Driver is memory, sqlite or postgres
	Driver string `mapstructure:"driver"`

	// DSN is the sqlite file path or postgres connection string
	DSN string `mapstructure:"dsn"`

	// MaxEntries bounds the in-memory history
	MaxEntries int `mapstructure:"max_entries"`

	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	MetricsEnabled bool   `mapstructure:"metrics_enabled"`
	TracingEnabled bool   `mapstructure:"tracing_enabled"`
	ServiceName    string `mapstructure:"service_name"`
}

// Load loads the configuration from environment variables and config files.
// It follows this precedence (highest to lowest):
//  1. Environment variables
//  2. Config file (if provided)
//  3. Default values
//
// Returns:
//   - *Config: The loaded configuration
//   - error: Any error encountered during loading or validation
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom behaves like Load but reads the given config file instead of
// searching the default locations. An empty path searches.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/loadplan")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK, we'll use env vars and defaults
	}

	v.SetEnvPrefix("LPS") // Load Planning Service
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail late at runtime.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Server.Port)
	}
	if c.Engine.Gravity <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidGravity, c.Engine.Gravity)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return ErrInvalidRateLimit
	}

	switch c.History.Driver {
	case HistoryDriverMemory, HistoryDriverSQLite:
	case HistoryDriverPostgres:
		if c.History.Enabled && c.History.DSN == "" {
			return ErrMissingDSN
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidHistoryDriver, c.History.Driver)
	}
	return nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "loadplan")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.debug", false)

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.max_request_size", 1<<20) // 1MB
	v.SetDefault("server.cors_allowed_origins", []string{"*"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 20)
	v.SetDefault("rate_limit.burst", 40)

	v.SetDefault("engine.gravity", 9.81)
	v.SetDefault("engine.forward_acceleration_g", 0.8)
	v.SetDefault("engine.rearward_acceleration_g", 0.5)
	v.SetDefault("engine.lateral_acceleration_g", 0.5)
	v.SetDefault("engine.safety_factor", 1.0)

	v.SetDefault("history.enabled", true)
	v.SetDefault("history.driver", HistoryDriverMemory)
	v.SetDefault("history.dsn", "")
	v.SetDefault("history.max_entries", 1000)
	v.SetDefault("history.max_open_conns", 10)
	v.SetDefault("history.conn_max_lifetime", 30*time.Minute)

	v.SetDefault("telemetry.metrics_enabled", true)
	v.SetDefault("telemetry.tracing_enabled", false)
	v.SetDefault("telemetry.service_name", "loadplan")
}

// bindEnvVars binds specific environment variables to configuration keys.
func bindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("app.environment", "LPS_ENVIRONMENT")
	_ = v.BindEnv("server.port", "LPS_SERVER_PORT", "PORT")
	_ = v.BindEnv("history.dsn", "LPS_HISTORY_DSN", "DATABASE_URL")
}

// MustLoad loads the configuration and panics on error.
// Use this in application entry points where configuration is required.
//
// Returns:
//   - *Config: The loaded configuration
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}
