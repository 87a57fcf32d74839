package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Extraction strategy names accepted by ExtractConfig.Strategy.
const (
	StrategySequence = "sequence"
	StrategyScan     = "scan"
	StrategyRPC      = "rpc"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Fetch     FetchConfig     `yaml:"fetch"`
	Extract   ExtractConfig   `yaml:"extract"`
	InnerTube InnerTubeConfig `yaml:"innertube"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host           string        `yaml:"host" envconfig:"SERVER_HOST"`
	Port           int           `yaml:"port" envconfig:"SERVER_PORT"`
	ReadTimeout    time.Duration `yaml:"read_timeout" envconfig:"SERVER_READ_TIMEOUT"`
	WriteTimeout   time.Duration `yaml:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT"`
	RequestTimeout time.Duration `yaml:"request_timeout" envconfig:"SERVER_REQUEST_TIMEOUT"`
	CORS           bool          `yaml:"cors" envconfig:"SERVER_CORS"`
}

// FetchConfig holds outbound page fetch configuration.
type FetchConfig struct {
	Timeout        time.Duration `yaml:"timeout" envconfig:"FETCH_TIMEOUT"`
	UserAgent      string        `yaml:"user_agent" envconfig:"FETCH_USER_AGENT"`
	AcceptLanguage string        `yaml:"accept_language" envconfig:"FETCH_ACCEPT_LANGUAGE"`
	Cookies        string        `yaml:"cookies" envconfig:"FETCH_COOKIES"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes" envconfig:"FETCH_MAX_BODY_BYTES"`
}

// ExtractConfig selects and tunes the extraction strategy.
type ExtractConfig struct {
	Strategy      string `yaml:"strategy" envconfig:"EXTRACT_STRATEGY"`
	ConsentCheck  bool   `yaml:"consent_check" envconfig:"EXTRACT_CONSENT_CHECK"`
	ScanBoundary  bool   `yaml:"scan_boundary" envconfig:"EXTRACT_SCAN_BOUNDARY"`
	AllowOverride bool   `yaml:"allow_override" envconfig:"EXTRACT_ALLOW_OVERRIDE"`
}

// InnerTubeConfig holds settings for the reel watch sequence replay.
type InnerTubeConfig struct {
	Endpoint        string `yaml:"endpoint" envconfig:"INNERTUBE_ENDPOINT"`
	ClientName      string `yaml:"client_name" envconfig:"INNERTUBE_CLIENT_NAME"`
	FallbackVersion string `yaml:"fallback_client_version" envconfig:"INNERTUBE_FALLBACK_CLIENT_VERSION"`
	HL              string `yaml:"hl" envconfig:"INNERTUBE_HL"`
	GL              string `yaml:"gl" envconfig:"INNERTUBE_GL"`
}

// Default returns the configuration used when neither file nor environment
// sets a value.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   60 * time.Second,
			RequestTimeout: 45 * time.Second,
			CORS:           true,
		},
		Fetch: FetchConfig{
			Timeout:        20 * time.Second,
			UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			AcceptLanguage: "en-US,en;q=0.9",
			Cookies:        "CONSENT=YES+cb.20210328-17-p0.en+FX+999; SOCS=CAI",
			MaxBodyBytes:   10 << 20,
		},
		Extract: ExtractConfig{
			Strategy:      StrategySequence,
			ConsentCheck:  true,
			ScanBoundary:  true,
			AllowOverride: true,
		},
		InnerTube: InnerTubeConfig{
			Endpoint:        "https://www.youtube.com/youtubei/v1/reel/reel_watch_sequence",
			ClientName:      "WEB",
			FallbackVersion: "2.20250222.10.00",
			HL:              "en",
			GL:              "US",
		},
	}
}

// Load reads configuration from file and environment variables.
// Precedence is defaults < file < environment. Fields carry no envconfig
// default tags so that unset variables leave file values alone.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	// Load from YAML file if provided
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	// Override with environment variables
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535")
	}
	if !ValidStrategy(c.Extract.Strategy) {
		return fmt.Errorf("EXTRACT_STRATEGY must be one of %q, %q, %q", StrategySequence, StrategyScan, StrategyRPC)
	}
	if c.Fetch.UserAgent == "" {
		return fmt.Errorf("FETCH_USER_AGENT is required")
	}
	if c.Fetch.MaxBodyBytes <= 0 {
		return fmt.Errorf("FETCH_MAX_BODY_BYTES must be positive")
	}
	if c.InnerTube.Endpoint == "" {
		return fmt.Errorf("INNERTUBE_ENDPOINT is required")
	}
	return nil
}

// ValidStrategy reports whether name is a known extraction strategy.
func ValidStrategy(name string) bool {
	switch name {
	case StrategySequence, StrategyScan, StrategyRPC:
		return true
	}
	return false
}

// Address returns the server address in host:port format.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
