package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadReadsTOMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	data := []byte(`
[database]
path = "/tmp/wallet.db"

[keystore]
path = "/tmp/keys.json"
passphrase_env = "MY_PASS"

[ui]
did_page_size = 3
vc_page_size = 2
editor = "nano"
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/tmp/wallet.db", cfg.Database.Path)
	require.Equal(t, "/tmp/keys.json", cfg.Keystore.Path)
	require.Equal(t, "MY_PASS", cfg.Keystore.PassphraseEnv)
	require.Equal(t, 3, cfg.UI.DIDPageSize)
	require.Equal(t, 2, cfg.UI.VCPageSize)
	require.Equal(t, "nano", cfg.UI.Editor)
	require.Equal(t, "info", cfg.Log.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	require.Equal(t, 10, cfg.UI.DIDPageSize)
	require.Equal(t, 5, cfg.UI.VCPageSize)
	require.Equal(t, "PETRUS_KEYSTORE_PASSPHRASE", cfg.Keystore.PassphraseEnv)
	require.NotEmpty(t, cfg.Database.Path)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PETRUS_UI_DID_PAGE_SIZE", "7")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	require.Equal(t, 7, cfg.UI.DIDPageSize)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Config{
		Database:    DatabaseConfig{Path: "x.db"},
		Keystore:    KeystoreConfig{Path: "keys.json"},
		Credentials: CredentialsConfig{TemplateDir: "templates"},
		UI:          UIConfig{DIDPageSize: 0, VCPageSize: -1},
	}
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "ui.did_page_size")
	require.Contains(t, err.Error(), "ui.vc_page_size")
}

func TestKeystorePassphrasePrefersEnv(t *testing.T) {
	cfg := Config{Keystore: KeystoreConfig{PassphraseEnv: "PETRUS_TEST_PASS", Passphrase: "from-file"}}
	require.Equal(t, "from-file", cfg.KeystorePassphrase())

	t.Setenv("PETRUS_TEST_PASS", "from-env")
	require.Equal(t, "from-env", cfg.KeystorePassphrase())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	want := Config{
		Database:    DatabaseConfig{Path: "/data/petrus.db"},
		Keystore:    KeystoreConfig{Path: "/data/keys.json", PassphraseEnv: "PASS"},
		Credentials: CredentialsConfig{TemplateDir: "/data/templates"},
		UI:          UIConfig{DIDPageSize: 4, VCPageSize: 4, Editor: "vim"},
		Log:         LogConfig{Path: "", Level: "debug"},
	}
	require.NoError(t, Save(want, path))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, want.Database, got.Database)
	require.Equal(t, want.Keystore, got.Keystore)
	require.Equal(t, want.UI, got.UI)
	require.Equal(t, "debug", got.Log.Level)
}
