package config

import (
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Log             LogConfig       `yaml:"log"`
	Database        DatabaseConfig  `yaml:"database"`
	HTTP            HTTPConfig      `yaml:"http"`
	Clock           ClockConfig     `yaml:"clock"`
	Ticker          TickerConfig    `yaml:"ticker"`
	Telemetry       TelemetryConfig `yaml:"telemetry"`
	ShutdownTimeout Duration        `yaml:"shutdown_timeout"` // General shutdown timeout for graceful stops
}

// LogConfig contains logging settings
type LogConfig struct {
	Level   string `yaml:"level"`
	UseJSON bool   `yaml:"json"`
	Colors  bool   `yaml:"colors"`
}

// GetLevel returns the log level with default
func (c *LogConfig) GetLevel() string {
	if c.Level == "" {
		return "info"
	}
	return c.Level
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// HTTPConfig contains the configuration web server settings
type HTTPConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

// ClockConfig contains external clock bus settings
type ClockConfig struct {
	// I2CDevice is the i2c-dev node the DS3231 sits on. Empty disables the
	// external clock entirely.
	I2CDevice      string   `yaml:"i2c_device"`
	Address        int      `yaml:"address"`         // chip address, default 0x68
	BusTimeout     Duration `yaml:"bus_timeout"`     // per-transfer timeout
	ResyncInterval Duration `yaml:"resync_interval"` // internal clock refresh cadence
}

// TickerConfig contains the scheduling loop cadence
type TickerConfig struct {
	Poll     Duration `yaml:"poll"`     // loop sleep between iterations
	Evaluate Duration `yaml:"evaluate"` // interval between schedule evaluations
}

// TelemetryConfig contains MQTT telemetry settings
type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Broker      string `yaml:"broker"`
	ClientID    string `yaml:"client_id"`
	TopicPrefix string `yaml:"topic_prefix"`
}

// Duration is a wrapper around time.Duration for YAML unmarshalling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// GetShutdownTimeout returns the shutdown timeout with default
func (c *Config) GetShutdownTimeout() time.Duration {
	if c.ShutdownTimeout == 0 {
		return 5 * time.Second
	}
	return c.ShutdownTimeout.Duration()
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables
	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "./duskringd.sqlite"
	}

	// HTTP defaults
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 8080
	}

	// Clock defaults
	if cfg.Clock.Address == 0 {
		cfg.Clock.Address = 0x68
	}
	if cfg.Clock.BusTimeout == 0 {
		cfg.Clock.BusTimeout = Duration(1 * time.Second)
	}
	if cfg.Clock.ResyncInterval == 0 {
		cfg.Clock.ResyncInterval = Duration(1 * time.Hour)
	}

	// Ticker defaults
	if cfg.Ticker.Poll == 0 {
		cfg.Ticker.Poll = Duration(100 * time.Millisecond)
	}
	if cfg.Ticker.Evaluate == 0 {
		cfg.Ticker.Evaluate = Duration(10 * time.Second)
	}

	// Telemetry defaults
	if cfg.Telemetry.ClientID == "" {
		cfg.Telemetry.ClientID = "duskringd"
	}
	if cfg.Telemetry.TopicPrefix == "" {
		cfg.Telemetry.TopicPrefix = "home/duskring"
	}

	// General shutdown timeout
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = Duration(5 * time.Second)
	}

	return &cfg, nil
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}
func expandEnvVars(input string) string {
	// Match ${VAR} or ${VAR:default}
	re := regexp.MustCompile(`\$\{([^}:]+)(?::([^}]*))?\}`)

	return re.ReplaceAllStringFunc(input, func(match string) string {
		parts := re.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		varName := parts[1]
		defaultVal := ""
		if len(parts) >= 3 {
			defaultVal = parts[2]
		}

		if val := os.Getenv(varName); val != "" {
			return val
		}
		return defaultVal
	})
}
