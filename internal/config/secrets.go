package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"github.com/trebuchet-org/hdeploy/internal/domain"
	"github.com/trebuchet-org/hdeploy/internal/domain/config"
)

// MnemonicEnvVar is read when no --mnemonic-file is given
const MnemonicEnvVar = EnvPrefix + "_MNEMONIC"

var ErrNoMnemonic = errors.New("no mnemonic: set " + MnemonicEnvVar + " or pass --mnemonic-file")

// LoadCredentials builds the credentials for one command. The mnemonic never
// goes through viper so it cannot end up in a config dump. The environment
// variable is unset once read.
func LoadCredentials(v *viper.Viper, cfg *config.RuntimeConfig) (*domain.Credentials, error) {
	creds := &domain.Credentials{
		DerivationPath: cfg.DerivationPath,
		Network:        cfg.Network,
	}

	mnemonic, err := readMnemonic(v.GetString("mnemonic_file"))
	if err != nil {
		return nil, err
	}
	creds.Mnemonic = mnemonic

	if cfg.PassphraseEnv != "" {
		passphrase, ok := os.LookupEnv(cfg.PassphraseEnv)
		if !ok {
			creds.Destroy()
			return nil, fmt.Errorf("passphrase variable %s is not set", cfg.PassphraseEnv)
		}
		creds.Passphrase = domain.NewSecret(passphrase)
		_ = os.Unsetenv(cfg.PassphraseEnv)
	}

	return creds, nil
}

func readMnemonic(file string) (*domain.Mnemonic, error) {
	if file != "" {
		data, err := os.ReadFile(file) //nolint:gosec // user supplied secret file
		if err != nil {
			return nil, fmt.Errorf("failed to read mnemonic file: %w", err)
		}
		return domain.NewMnemonicFromBytes(data), nil
	}

	phrase, ok := os.LookupEnv(MnemonicEnvVar)
	if !ok || phrase == "" {
		return nil, ErrNoMnemonic
	}
	_ = os.Unsetenv(MnemonicEnvVar)
	return domain.NewMnemonic(phrase), nil
}
