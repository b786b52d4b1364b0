package wallet

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"log/slog"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/hdeploy/internal/domain"
	"github.com/trebuchet-org/hdeploy/internal/usecase"
	"github.com/tyler-smith/go-bip39"
)

// ErrInvalidMnemonic is returned when the phrase fails BIP-39 word list or checksum validation
var ErrInvalidMnemonic = errors.New("invalid mnemonic")

// HDWallet derives a single secp256k1 signer from a BIP-39 mnemonic and a BIP-32 path.
// It performs no network I/O.
type HDWallet struct {
	log *slog.Logger
}

// NewHDWallet creates a new HD wallet provider
func NewHDWallet(log *slog.Logger) *HDWallet {
	return &HDWallet{
		log: log.With("component", "HDWallet"),
	}
}

// Open derives the key at the credentials' derivation path
func (w *HDWallet) Open(creds *domain.Credentials) (usecase.Signer, error) {
	if creds == nil || creds.Mnemonic.Empty() {
		return nil, domain.ErrEmptyMnemonic
	}

	path, err := accounts.ParseDerivationPath(creds.Path())
	if err != nil {
		return nil, fmt.Errorf("invalid derivation path %q: %w", creds.Path(), err)
	}

	key, err := deriveKey(creds.Mnemonic.Reveal(), creds.Passphrase.Reveal(), path)
	if err != nil {
		return nil, err
	}

	signer := NewKeySigner(key)
	w.log.Debug("derived signer", "path", path.String(), "address", signer.Address())
	return signer, nil
}

// deriveKey walks the BIP-32 path from the mnemonic's master key.
// Intermediate seeds and extended keys are zeroed before returning.
func deriveKey(mnemonic, passphrase string, path accounts.DerivationPath) (*ecdsa.PrivateKey, error) {
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMnemonic, err)
	}
	defer wipe(seed)

	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("failed to create master key: %w", err)
	}
	defer master.Zero()

	child := master
	for _, index := range path {
		next, err := child.Derive(index)
		if err != nil {
			return nil, fmt.Errorf("failed to derive child key %d: %w", index, err)
		}
		if child != master {
			child.Zero()
		}
		child = next
	}
	defer child.Zero()

	priv, err := child.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get private key: %w", err)
	}
	defer priv.Zero()

	raw := priv.Serialize()
	defer wipe(raw)

	key, err := crypto.ToECDSA(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to convert private key: %w", err)
	}
	return key, nil
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
