package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mattsolo1/grove-drupal-sync/pkg/models"
	"github.com/mattsolo1/grove-drupal-sync/pkg/sync"
)

// EnvPrefix prefixes environment overrides, e.g. DRUPAL_SYNC_PASSWORD.
const EnvPrefix = "DRUPAL_SYNC"

// SettingKeys are the keys accepted in the config file, in display order.
var SettingKeys = []string{"site_url", "username", "password", "node_type", "body_format", "timeout"}

// SkipSettingsAnnotation marks commands that run without decoded settings,
// so a bad value in the config file does not block them.
const SkipSettingsAnnotation = "drupal-sync/skip-settings"

// SkipSettings reports whether cmd is marked with SkipSettingsAnnotation.
func SkipSettings(cmd *cobra.Command) bool {
	return cmd.Annotations[SkipSettingsAnnotation] == "true"
}

var (
	cfgFile  string
	envFile  string
	logLevel string
	logFile  string
)

// InitConfig prepares viper: defaults, config file, .env file and environment.
func InitConfig() error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return fmt.Errorf("failed to load .env: %w", err)
		}
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			return err
		}
		viper.AddConfigPath(dir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Defaults make every key visible to AllSettings, so env overrides apply
	defaults := models.DefaultSettings()
	viper.SetDefault("site_url", defaults.SiteURL)
	viper.SetDefault("username", defaults.Username)
	viper.SetDefault("password", defaults.Password)
	viper.SetDefault("node_type", defaults.NodeType)
	viper.SetDefault("body_format", string(defaults.BodyFormat))
	viper.SetDefault("timeout", defaults.Timeout.String())

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine, settings come from defaults and env
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

// ConfigPath returns the file settings are read from and saved to.
func ConfigPath() (string, error) {
	if used := viper.ConfigFileUsed(); used != "" {
		return used, nil
	}
	if cfgFile != "" {
		return cfgFile, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadSettings decodes the current viper state into Settings.
func LoadSettings() (models.Settings, error) {
	raw := make(map[string]interface{}, len(SettingKeys))
	for _, key := range SettingKeys {
		raw[key] = viper.Get(key)
	}
	return sync.DecodeSettings(raw)
}

// LoadFileSettings returns the raw values stored in the config file, without
// environment or .env overrides. A missing file yields an empty map.
func LoadFileSettings() (map[string]interface{}, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]interface{}{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	raw := make(map[string]interface{}, len(SettingKeys))
	for _, key := range SettingKeys {
		if v.IsSet(key) {
			raw[key] = v.Get(key)
		}
	}
	return raw, nil
}

// SaveSettings writes settings to the config file, creating its directory.
// Only the given values are written, never environment overrides.
func SaveSettings(settings models.Settings) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.Set("site_url", settings.SiteURL)
	v.Set("username", settings.Username)
	v.Set("password", settings.Password)
	v.Set("node_type", settings.NodeType)
	v.Set("body_format", string(settings.BodyFormat))
	v.Set("timeout", settings.Timeout.String())

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	// The file holds a plaintext password
	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to restrict config permissions: %w", err)
	}
	return nil
}

// NewLogger builds the process logger from the --log-level and --log-file flags.
func NewLogger(stderr io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(stderr)
	logger.SetLevel(logrus.WarnLevel)

	if logLevel != "" {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
		logger.SetLevel(level)
	}

	if logFile != "" {
		logger.SetOutput(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    5, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger, nil
}

// AddGlobalFlags registers the flags read by InitConfig and NewLogger.
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/drupal-sync/config.yaml)")
	cmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file with DRUPAL_SYNC_* variables (default is ./.env if present)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to a rotated file instead of stderr")
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "drupal-sync"), nil
}
