package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Data    DataConfig    `mapstructure:"data"`
	Backup  BackupConfig  `mapstructure:"backup"`
	Export  ExportConfig  `mapstructure:"export"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// DataConfig locates the catalog database file
type DataConfig struct {
	Dir  string `mapstructure:"dir"`  // Directory holding the database
	File string `mapstructure:"file"` // Database filename
}

// BackupConfig controls snapshots of the catalog file
type BackupConfig struct {
	Dir     string `mapstructure:"dir"`      // Snapshot directory
	MaxKeep int    `mapstructure:"max_keep"` // Newest snapshots retained
}

// ExportConfig locates CSV export/import files
type ExportConfig struct {
	Dir string `mapstructure:"dir"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DatabasePath returns the full path of the catalog database file.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Data.Dir, c.Data.File)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Dir:  "data",
			File: "livraria.db",
		},
		Backup: BackupConfig{
			Dir:     "backups",
			MaxKeep: 5,
		},
		Export: ExportConfig{
			Dir: "exports",
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "livraria", "livraria.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "livraria", "livraria.log")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "livraria")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "livraria")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("LIVRARIA")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the current configuration to file
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()

	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	viper.Set("data.dir", cfg.Data.Dir)
	viper.Set("data.file", cfg.Data.File)
	viper.Set("backup.dir", cfg.Backup.Dir)
	viper.Set("backup.max_keep", cfg.Backup.MaxKeep)
	viper.Set("export.dir", cfg.Export.Dir)
	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
