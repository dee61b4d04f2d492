package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	chdir(t, t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, ".geas", cfg.Root)
	assert.Equal(t, filepath.Join(home, ".geas", "keys"), cfg.KeysDir)
	assert.Equal(t, 32, cfg.Vault.SecretBytes)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	chdir(t, t.TempDir())
	t.Setenv("GEAS_KEYS_DIR", "~/vault")
	t.Setenv("GEAS_VAULT_SECRET_BYTES", "48")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "vault"), cfg.KeysDir)
	assert.Equal(t, 48, cfg.Vault.SecretBytes)
}

func TestLoadConfig_File(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())
	file := filepath.Join(t.TempDir(), "geas.yaml")
	require.NoError(t, os.WriteFile(file, []byte("root: gov\nlogging:\n  level: debug\n"), 0o600))

	cfg, err := LoadConfig(file)
	require.NoError(t, err)
	assert.Equal(t, "gov", cfg.Root)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfig_RejectsWeakSecrets(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())
	t.Setenv("GEAS_VAULT_SECRET_BYTES", "16")

	_, err := LoadConfig("")
	assert.ErrorContains(t, err, "secret_bytes")
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	chdir(t, t.TempDir())
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSetupLogging(t *testing.T) {
	t.Cleanup(func() { logrus.SetLevel(logrus.InfoLevel) })

	require.NoError(t, SetupLogging(LoggingConfig{Level: "error", Format: "json"}, false))
	assert.Equal(t, logrus.ErrorLevel, logrus.GetLevel())

	require.NoError(t, SetupLogging(LoggingConfig{Level: "error"}, true))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	assert.Error(t, SetupLogging(LoggingConfig{Level: "loud"}, false))
}

func TestConfig_Override(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	cfg := Config{Root: ".geas", KeysDir: "/var/keys", Vault: VaultConfig{SecretBytes: 32}}

	require.NoError(t, cfg.Override("", "~/k"))
	assert.Equal(t, ".geas", cfg.Root)
	assert.Equal(t, filepath.Join(home, "k"), cfg.KeysDir)

	require.NoError(t, cfg.Override("other", ""))
	assert.Equal(t, "other", cfg.Root)
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
