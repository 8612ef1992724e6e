package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Telegram Telegram `mapstructure:"telegram"`
	DeepSeek DeepSeek `mapstructure:"deepseek"`
	Database Database `mapstructure:"database"`
}

type Telegram struct {
	Token string `mapstructure:"token"`
}

type DeepSeek struct {
	APIKey    string `mapstructure:"api_key"`
	BaseURL   string `mapstructure:"base_url"`
	Model     string `mapstructure:"model"`
	MaxTokens int    `mapstructure:"max_tokens"`
}

type Database struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

// Enabled reports whether a database was configured at all. The bot runs
// without one; persistence is simply skipped.
func (d Database) Enabled() bool {
	return d.Host != ""
}

// Load builds the configuration from the environment, with an optional
// config.yaml overriding nothing that the environment sets. TELEGRAM_TOKEN
// and DEEPSEEK_API_KEY are required; everything else has a default.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("telegram.token", "")
	v.SetDefault("deepseek.api_key", "")
	v.SetDefault("deepseek.base_url", "https://api.deepseek.com/v1")
	v.SetDefault("deepseek.model", "deepseek-chat")
	v.SetDefault("deepseek.max_tokens", 600)
	v.SetDefault("database.host", "")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config read error: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal error: %w", err)
	}

	if cfg.Telegram.Token == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN not set")
	}
	if cfg.DeepSeek.APIKey == "" {
		return nil, fmt.Errorf("DEEPSEEK_API_KEY not set")
	}

	return &cfg, nil
}
