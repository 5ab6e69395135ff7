package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database    DatabaseConfig    `mapstructure:"database"`
	Keystore    KeystoreConfig    `mapstructure:"keystore"`
	Credentials CredentialsConfig `mapstructure:"credentials"`
	UI          UIConfig          `mapstructure:"ui"`
	Log         LogConfig         `mapstructure:"log"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// KeystoreConfig locates the encrypted private key file.
// The passphrase is read from the env var named by PassphraseEnv first.
type KeystoreConfig struct {
	Path          string `mapstructure:"path"`
	PassphraseEnv string `mapstructure:"passphrase_env"`
	Passphrase    string `mapstructure:"passphrase"`
}

// CredentialsConfig holds credential template settings.
type CredentialsConfig struct {
	TemplateDir string `mapstructure:"template_dir"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DIDPageSize int    `mapstructure:"did_page_size"`
	VCPageSize  int    `mapstructure:"vc_page_size"`
	Editor      string `mapstructure:"editor"`
}

// LogConfig holds structured log settings. An empty path discards logs.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// Load reads configuration from file and env. Env var overrides use prefix PETRUS_.
// path overrides PETRUS_CONFIG; a missing config file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("PETRUS_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(home(), ".config", "petrus"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("PETRUS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	share := filepath.Join(home(), ".local", "share", "petrus")
	v.SetDefault("database.path", filepath.Join(share, "petrus.db"))
	v.SetDefault("keystore.path", filepath.Join(share, "keys.json"))
	v.SetDefault("keystore.passphrase_env", "PETRUS_KEYSTORE_PASSPHRASE")
	v.SetDefault("keystore.passphrase", "")
	v.SetDefault("credentials.template_dir", filepath.Join(home(), ".config", "petrus", "templates"))
	v.SetDefault("ui.did_page_size", 10)
	v.SetDefault("ui.vc_page_size", 5)
	v.SetDefault("ui.editor", "")
	v.SetDefault("log.path", filepath.Join(home(), ".local", "state", "petrus", "petrus.log"))
	v.SetDefault("log.level", "info")
}

// Validate rejects settings the app cannot start with.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Database.Path) == "" {
		errs = append(errs, errors.New("database.path is required"))
	}
	if strings.TrimSpace(c.Keystore.Path) == "" {
		errs = append(errs, errors.New("keystore.path is required"))
	}
	if strings.TrimSpace(c.Credentials.TemplateDir) == "" {
		errs = append(errs, errors.New("credentials.template_dir is required"))
	}
	if c.UI.DIDPageSize <= 0 {
		errs = append(errs, fmt.Errorf("ui.did_page_size must be positive, got %d", c.UI.DIDPageSize))
	}
	if c.UI.VCPageSize <= 0 {
		errs = append(errs, fmt.Errorf("ui.vc_page_size must be positive, got %d", c.UI.VCPageSize))
	}
	return errors.Join(errs...)
}

// Save writes the provided config to path, creating the config directory if needed.
// The keystore passphrase is written only if set; prefer the env var.
func Save(cfg Config, path string) error {
	if path == "" {
		path = os.Getenv("PETRUS_CONFIG")
	}
	if path == "" {
		path = filepath.Join(home(), ".config", "petrus", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("keystore.path", cfg.Keystore.Path)
	v.Set("keystore.passphrase_env", cfg.Keystore.PassphraseEnv)
	if cfg.Keystore.Passphrase != "" {
		v.Set("keystore.passphrase", cfg.Keystore.Passphrase)
	}
	v.Set("credentials.template_dir", cfg.Credentials.TemplateDir)
	v.Set("ui.did_page_size", cfg.UI.DIDPageSize)
	v.Set("ui.vc_page_size", cfg.UI.VCPageSize)
	v.Set("ui.editor", cfg.UI.Editor)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// KeystorePassphrase resolves the passphrase from env, then config.
// Empty means the caller should fall back to a derived per-user secret.
func (c Config) KeystorePassphrase() string {
	if env := strings.TrimSpace(c.Keystore.PassphraseEnv); env != "" {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	return c.Keystore.Passphrase
}

func home() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return os.Getenv("HOME")
}
