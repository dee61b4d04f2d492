package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"

	"geas/internal/crypto"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Root    string        `mapstructure:"root"`     // governance directory, e.g. ./.geas
	KeysDir string        `mapstructure:"keys_dir"` // vault directory, e.g. $HOME/.geas/keys
	Vault   VaultConfig   `mapstructure:"vault"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// VaultConfig tunes credential generation.
type VaultConfig struct {
	SecretBytes int `mapstructure:"secret_bytes"`
}

// LoggingConfig selects the logrus level and formatter.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig reads configuration from defaults, an optional config file,
// .env and GEAS_* environment variables. An explicit configFile must exist.
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("geas")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(".geas", "config"))
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".geas"))
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	v.SetEnvPrefix("GEAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		logrus.WithField("file", v.ConfigFileUsed()).Debugln("Loaded config file")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadEnvFile loads .env from the working directory if present.
func loadEnvFile() {
	if err := gotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.WithError(err).Warnln("Error loading .env file")
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("root", ".geas")
	v.SetDefault("keys_dir", defaultKeysDir())
	v.SetDefault("vault.secret_bytes", crypto.MinSecretBytes)
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "text")
}

// defaultKeysDir is ~/.geas/keys, kept outside the project tree so keys are
// never committed with it.
func defaultKeysDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".geas", "keys")
	}
	return filepath.Join(home, ".geas", "keys")
}

// Override applies explicit flag values on top of the loaded configuration.
// Empty values leave the current setting in place.
func (c *Config) Override(root, keysDir string) error {
	if root != "" {
		c.Root = root
	}
	if keysDir != "" {
		c.KeysDir = keysDir
	}
	return c.normalize()
}

// normalize expands ~ and validates values that would weaken the vault.
func (c *Config) normalize() error {
	if c.Root == "" {
		return errors.New("config: root must not be empty")
	}
	keys, err := expandHome(c.KeysDir)
	if err != nil {
		return err
	}
	c.KeysDir = keys
	if c.Vault.SecretBytes < crypto.MinSecretBytes {
		return fmt.Errorf("config: vault.secret_bytes must be at least %d, got %d",
			crypto.MinSecretBytes, c.Vault.SecretBytes)
	}
	return nil
}

func expandHome(path string) (string, error) {
	if path == "" {
		return defaultKeysDir(), nil
	}
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: expand %s: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
