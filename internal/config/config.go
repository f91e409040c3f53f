package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Login   LoginConfig   `yaml:"login"`
	Harness HarnessConfig `yaml:"harness"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string         `yaml:"host"`
	Port            int            `yaml:"port"`
	BaseURL         string         `yaml:"base_url"` // Optional override (e.g. https://your-domain.com)
	ReadTimeout     time.Duration  `yaml:"read_timeout"`
	WriteTimeout    time.Duration  `yaml:"write_timeout"`
	IdleTimeout     time.Duration  `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration  `yaml:"shutdown_timeout"`
	Security        SecurityConfig `yaml:"security"`
}

// SecurityConfig contains security-related settings
type SecurityConfig struct {
	CSRFEnabled     bool                  `yaml:"csrf_enabled"`
	CSRFSecret      string                `yaml:"csrf_secret"`
	MaxRequestBytes int64                 `yaml:"max_request_bytes"`
	Headers         SecurityHeadersConfig `yaml:"headers"`
}

// SecurityHeadersConfig contains HTTP security header settings
type SecurityHeadersConfig struct {
	XFrameOptions         string `yaml:"x_frame_options"`
	XContentTypeOptions   string `yaml:"x_content_type_options"`
	ReferrerPolicy        string `yaml:"referrer_policy"`
	ContentSecurityPolicy string `yaml:"content_security_policy"`
}

// LoginConfig holds the valid credential pair the fixture accepts. It is
// explicit configuration rather than a compiled-in constant so tests and
// harness runs can use different credential sets.
type LoginConfig struct {
	ValidUsername string `yaml:"valid_username"`
	ValidPassword string `yaml:"valid_password"`
}

// HarnessConfig contains frontend-tester harness settings
type HarnessConfig struct {
	Model             string        `yaml:"model"`
	APIKeyEnv         string        `yaml:"api_key_env"`
	Headless          bool          `yaml:"headless"`
	NavigationTimeout time.Duration `yaml:"navigation_timeout"`
	MaxScenarios      int           `yaml:"max_scenarios"`
	HistoryDBPath     string        `yaml:"history_db_path"`
}

// Default returns a configuration suitable for running the fixture
// locally without a config file.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "127.0.0.1",
			Port:            3000,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			Security: SecurityConfig{
				MaxRequestBytes: 1 << 20,
				Headers: SecurityHeadersConfig{
					XFrameOptions:       "DENY",
					XContentTypeOptions: "nosniff",
					ReferrerPolicy:      "strict-origin-when-cross-origin",
				},
			},
		},
		Login: LoginConfig{
			ValidUsername: "user",
			ValidPassword: "user",
		},
		Harness: HarnessConfig{
			Model:             "gemini-2.5-flash",
			APIKeyEnv:         "GEMINI_API_KEY",
			Headless:          true,
			NavigationTimeout: 30 * time.Second,
			MaxScenarios:      5,
			HistoryDBPath:     "./data/loginbench.db",
		},
	}
}

// Load reads configuration from the specified file path. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the config
	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables if set
	if baseURL := os.Getenv("BASE_URL"); baseURL != "" {
		cfg.Server.BaseURL = baseURL
	}
	if u := os.Getenv("LOGIN_VALID_USERNAME"); u != "" {
		cfg.Login.ValidUsername = u
	}
	if p := os.Getenv("LOGIN_VALID_PASSWORD"); p != "" {
		cfg.Login.ValidPassword = p
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.Server.Security.MaxRequestBytes < 1 {
		return fmt.Errorf("server.security.max_request_bytes must be at least 1")
	}
	if c.Server.Security.CSRFEnabled {
		secret := c.Server.Security.CSRFSecret
		if secret == "" || strings.Contains(secret, "${") {
			return fmt.Errorf("server.security.csrf_secret is required when CSRF is enabled (set CSRF_SECRET environment variable)")
		}
		if len(secret) < 32 {
			return fmt.Errorf("server.security.csrf_secret must be at least 32 characters")
		}
	}

	// Login validation: the valid pair must survive the trimming the
	// validator applies to submitted input, or it could never match.
	if strings.TrimSpace(c.Login.ValidUsername) == "" {
		return fmt.Errorf("login.valid_username is required")
	}
	if strings.TrimSpace(c.Login.ValidPassword) == "" {
		return fmt.Errorf("login.valid_password is required")
	}
	if c.Login.ValidUsername != strings.TrimSpace(c.Login.ValidUsername) {
		return fmt.Errorf("login.valid_username must not have leading or trailing whitespace")
	}
	if c.Login.ValidPassword != strings.TrimSpace(c.Login.ValidPassword) {
		return fmt.Errorf("login.valid_password must not have leading or trailing whitespace")
	}

	// Harness validation
	if c.Harness.MaxScenarios < 1 {
		return fmt.Errorf("harness.max_scenarios must be at least 1")
	}
	if c.Harness.NavigationTimeout <= 0 {
		return fmt.Errorf("harness.navigation_timeout must be positive")
	}
	if c.Harness.HistoryDBPath == "" {
		return fmt.Errorf("harness.history_db_path is required")
	}

	return nil
}

// GetAddr returns the full server address (host:port)
func (c *Config) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetBaseURL returns the externally reachable base URL.
// Uses base_url if set, otherwise constructs from host:port
func (c *Config) GetBaseURL() string {
	if c.Server.BaseURL != "" {
		return c.Server.BaseURL
	}
	return fmt.Sprintf("http://%s", c.GetAddr())
}

// IsHTTPS returns true if the base URL uses HTTPS
func (c *Config) IsHTTPS() bool {
	return strings.HasPrefix(strings.ToLower(c.GetBaseURL()), "https://")
}

// HarnessAPIKey reads the scenario-enumeration API key from the configured
// environment variable. Empty means enumeration is unavailable.
func (c *Config) HarnessAPIKey() string {
	if c.Harness.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.Harness.APIKeyEnv)
}
