package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "TASKFLOW"

type Config struct {
	DBPath          string        `mapstructure:"db_path"`
	ThemeName       string        `mapstructure:"theme_name"`
	LogFile         string        `mapstructure:"log_file"`
	LogLevel        string        `mapstructure:"log_level"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	WatchDB         bool          `mapstructure:"watch_db"`
}

var (
	configDir  string
	configFile string
)

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(fmt.Sprintf("failed to get home directory: %v", err))
	}

	configDir = filepath.Join(homeDir, ".taskflow")
	configFile = filepath.Join(configDir, "config.yaml")
}

func GetConfigDir() string {
	return configDir
}

func GetConfigFile() string {
	return configFile
}

func ConfigExists() bool {
	_, err := os.Stat(configFile)
	return err == nil
}

func EnsureConfigDir() error {
	return os.MkdirAll(configDir, 0755)
}

// newViper returns an instance with defaults and TASKFLOW_* env overrides.
func newViper() *viper.Viper {
	v := viper.New()
	def := GetDefaultConfig()
	v.SetDefault("db_path", def.DBPath)
	v.SetDefault("theme_name", def.ThemeName)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("refresh_interval", def.RefreshInterval)
	v.SetDefault("watch_db", def.WatchDB)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig reads the config file if there is one. Missing keys and a
// missing file fall back to defaults; environment variables win over both.
func LoadConfig() (*Config, error) {
	if err := EnsureConfigDir(); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	v := newViper()
	if ConfigExists() {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(configDir, "tasks.db")
	}
	if cfg.RefreshInterval < 0 {
		return nil, fmt.Errorf("refresh_interval must not be negative, got %s", cfg.RefreshInterval)
	}

	return &cfg, nil
}

// saves config to file
func SaveConfig(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("db_path", cfg.DBPath)
	v.Set("theme_name", cfg.ThemeName)
	v.Set("log_file", cfg.LogFile)
	v.Set("log_level", cfg.LogLevel)
	v.Set("refresh_interval", cfg.RefreshInterval.String())
	v.Set("watch_db", cfg.WatchDB)

	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// returns default config
func GetDefaultConfig() *Config {
	return &Config{
		DBPath:          filepath.Join(configDir, "tasks.db"),
		ThemeName:       "",
		LogFile:         filepath.Join(configDir, "taskflow.log"),
		LogLevel:        "info",
		RefreshInterval: time.Minute,
		WatchDB:         true,
	}
}

// updates theme in config file
func UpdateTheme(themeName string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg.ThemeName = themeName
	return SaveConfig(cfg)
}
