package config

import (
	"fmt"
	"strings"

	"github.com/iafluence/chatwidget/internal/domain"
	"github.com/spf13/viper"
)

// Config holds all configuration for the widget host service
type Config struct {
	Server    ServerConfig        `mapstructure:"server"`
	Admin     AdminConfig         `mapstructure:"admin"`
	Database  DatabaseConfig      `mapstructure:"database"`
	Storage   StorageConfig       `mapstructure:"storage"`
	Assistant AssistantConfig     `mapstructure:"assistant"`
	Widget    domain.WidgetConfig `mapstructure:"widget"`
	CORS      CORSConfig          `mapstructure:"cors"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	BaseURL string `mapstructure:"base_url"`
}

// AdminConfig holds admin authentication configuration
type AdminConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// StorageConfig holds the location of built widget assets (the .wasm bundle)
type StorageConfig struct {
	Assets string `mapstructure:"assets"`
}

// AssistantConfig points widgets at the assistant service
type AssistantConfig struct {
	ServerURL string `mapstructure:"server_url"`
}

// CORSConfig lists the origins allowed to call the public widget API
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// Load loads configuration from file and environment
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file if specified
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables, e.g. CHATWIDGET_SERVER_PORT
	v.SetEnvPrefix("CHATWIDGET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if !cfg.Widget.Position.Valid() {
		return nil, fmt.Errorf("invalid widget.position %q", cfg.Widget.Position)
	}
	if cfg.Widget.DelayAutoOpen < 0 {
		return nil, fmt.Errorf("widget.delay_auto_open must not be negative")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")

	v.SetDefault("admin.api_key", "")

	v.SetDefault("database.path", "./data/chatwidget.db")
	v.SetDefault("storage.assets", "./data/assets")

	v.SetDefault("assistant.server_url", "http://localhost:8000")

	defaults := domain.DefaultWidgetConfig()
	v.SetDefault("widget.position", string(defaults.Position))
	v.SetDefault("widget.primary_color", defaults.PrimaryColor)
	v.SetDefault("widget.secondary_color", defaults.SecondaryColor)
	v.SetDefault("widget.chatbot_name", defaults.ChatbotName)
	v.SetDefault("widget.welcome_message", defaults.WelcomeMessage)
	v.SetDefault("widget.logo_url", defaults.LogoURL)
	v.SetDefault("widget.show_branding", defaults.ShowBranding)
	v.SetDefault("widget.auto_open", defaults.AutoOpen)
	v.SetDefault("widget.delay_auto_open", defaults.DelayAutoOpen)
	v.SetDefault("widget.custom_css", defaults.CustomCSS)

	v.SetDefault("cors.allow_origins", []string{"*"})
}

// Address returns the server address
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
