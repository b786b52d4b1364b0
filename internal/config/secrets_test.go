package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/hdeploy/internal/domain/config"
)

const testMnemonic = "test test test test test test test test test test test junk"

func TestLoadCredentials(t *testing.T) {
	cfg := &config.RuntimeConfig{Network: "sepolia", DerivationPath: "m/44'/60'/0'/0/1"}

	t.Run("from env, then unset", func(t *testing.T) {
		t.Setenv(MnemonicEnvVar, "  "+testMnemonic+"\n")

		creds, err := LoadCredentials(viper.New(), cfg)
		require.NoError(t, err)
		assert.Equal(t, testMnemonic, creds.Mnemonic.Reveal())
		assert.Equal(t, "sepolia", creds.Network)
		assert.Equal(t, "m/44'/60'/0'/0/1", creds.DerivationPath)

		_, stillSet := os.LookupEnv(MnemonicEnvVar)
		assert.False(t, stillSet)
	})

	t.Run("file wins over env", func(t *testing.T) {
		t.Setenv(MnemonicEnvVar, "abandon abandon")
		path := filepath.Join(t.TempDir(), "mnemonic")
		require.NoError(t, os.WriteFile(path, []byte(testMnemonic+"\n"), 0600))

		v := viper.New()
		v.Set("mnemonic_file", path)
		creds, err := LoadCredentials(v, cfg)
		require.NoError(t, err)
		assert.Equal(t, testMnemonic, creds.Mnemonic.Reveal())
	})

	t.Run("missing file", func(t *testing.T) {
		v := viper.New()
		v.Set("mnemonic_file", filepath.Join(t.TempDir(), "nope"))
		_, err := LoadCredentials(v, cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read mnemonic file")
	})

	t.Run("nothing set", func(t *testing.T) {
		t.Setenv(MnemonicEnvVar, "")
		_, err := LoadCredentials(viper.New(), cfg)
		assert.ErrorIs(t, err, ErrNoMnemonic)
	})

	t.Run("passphrase from named variable", func(t *testing.T) {
		t.Setenv(MnemonicEnvVar, testMnemonic)
		t.Setenv("MY_PASSPHRASE", "hunter2")

		withPassphrase := *cfg
		withPassphrase.PassphraseEnv = "MY_PASSPHRASE"
		creds, err := LoadCredentials(viper.New(), &withPassphrase)
		require.NoError(t, err)
		assert.Equal(t, "hunter2", creds.Passphrase.Reveal())
	})

	t.Run("passphrase variable missing", func(t *testing.T) {
		t.Setenv(MnemonicEnvVar, testMnemonic)

		withPassphrase := *cfg
		withPassphrase.PassphraseEnv = "HDEPLOY_TEST_UNSET_PASSPHRASE"
		_, err := LoadCredentials(viper.New(), &withPassphrase)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HDEPLOY_TEST_UNSET_PASSPHRASE")
	})
}
