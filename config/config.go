package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type BrowserConfig struct {
	Headless    bool     `mapstructure:"headless"`
	Incognito   bool     `mapstructure:"incognito"`
	UserAgents  []string `mapstructure:"user_agents"`
	MinViewport int      `mapstructure:"min_viewport"`
	MaxViewport int      `mapstructure:"max_viewport"`
	Bin         string   `mapstructure:"bin"`
}

type ProxyConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// Enabled reports whether a proxy endpoint was configured at all.
func (p ProxyConfig) Enabled() bool {
	return p.Host != ""
}

// Addr returns the host:port form consumed by the browser launcher.
func (p ProxyConfig) Addr() string {
	return fmt.Sprintf("%s:%d", p.Host, p.Port)
}

type TimingConfig struct {
	MinDelayMs int `mapstructure:"min_delay_ms"`
	// MaxDelayMs controls the upper bound for human-like pacing between actions.
	MaxDelayMs int `mapstructure:"max_delay_ms"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type Config struct {
	Browser BrowserConfig `mapstructure:"browser"`
	Proxy   ProxyConfig   `mapstructure:"proxy"`
	Timing  TimingConfig  `mapstructure:"timing"`
	Logging LoggingConfig `mapstructure:"logging"`
}

func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Default returns the built-in configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Browser: BrowserConfig{
			Headless: true,
			UserAgents: []string{
				"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
				"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15",
			},
			MinViewport: 1280,
			MaxViewport: 1600,
		},
		Timing: TimingConfig{
			MinDelayMs: 750,
			MaxDelayMs: 2250,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

func setDefaults(v *viper.Viper) {
	def := Default()

	v.SetDefault("browser.headless", def.Browser.Headless)
	v.SetDefault("browser.incognito", false)
	v.SetDefault("browser.user_agents", def.Browser.UserAgents)
	v.SetDefault("browser.min_viewport", def.Browser.MinViewport)
	v.SetDefault("browser.max_viewport", def.Browser.MaxViewport)
	v.SetDefault("browser.bin", "")

	v.SetDefault("proxy.host", "")
	v.SetDefault("proxy.port", 0)
	v.SetDefault("proxy.username", "")
	v.SetDefault("proxy.password", "")

	v.SetDefault("timing.min_delay_ms", def.Timing.MinDelayMs)
	v.SetDefault("timing.max_delay_ms", def.Timing.MaxDelayMs)

	v.SetDefault("logging.level", def.Logging.Level)
}

func (c *Config) Validate() error {
	if len(c.Browser.UserAgents) == 0 {
		return fmt.Errorf("browser.user_agents must include at least one value")
	}
	if c.Browser.MinViewport <= 0 {
		return fmt.Errorf("browser.min_viewport must be greater than zero")
	}
	if c.Browser.MaxViewport <= c.Browser.MinViewport {
		return fmt.Errorf("browser.max_viewport must be greater than min_viewport")
	}
	if c.Timing.MinDelayMs <= 0 || c.Timing.MaxDelayMs <= 0 {
		return fmt.Errorf("timing delays must be positive")
	}
	if c.Timing.MaxDelayMs < c.Timing.MinDelayMs {
		return fmt.Errorf("timing.max_delay_ms must be >= min_delay_ms")
	}
	if c.Proxy.Enabled() {
		if c.Proxy.Port <= 0 || c.Proxy.Port > 65535 {
			return fmt.Errorf("proxy.port must be within 1-65535 when proxy.host is set")
		}
	} else if c.Proxy.Username != "" || c.Proxy.Password != "" {
		return fmt.Errorf("proxy credentials require proxy.host to be set")
	}

	c.Logging.Level = strings.ToLower(c.Logging.Level)

	return nil
}
