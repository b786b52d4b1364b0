package wallet

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/hdeploy/internal/usecase"
)

var (
	ErrSignerClosed = errors.New("signer is closed")
	ErrNoChainID    = errors.New("chain ID is required for signing")
)

// KeySigner signs transactions with an in-memory private key
type KeySigner struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewKeySigner takes ownership of key; Close wipes it
func NewKeySigner(key *ecdsa.PrivateKey) *KeySigner {
	return &KeySigner{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}
}

// Address returns the account the signer authorizes
func (s *KeySigner) Address() common.Address {
	return s.address
}

// TransactOpts returns EIP-155 transaction options bound to chainID
func (s *KeySigner) TransactOpts(ctx context.Context, chainID *big.Int) (*bind.TransactOpts, error) {
	if s.key == nil {
		return nil, ErrSignerClosed
	}
	if chainID == nil {
		return nil, ErrNoChainID
	}

	opts, err := bind.NewKeyedTransactorWithChainID(s.key, chainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	return opts, nil
}

// Close zeroes the private scalar
func (s *KeySigner) Close() {
	if s.key == nil {
		return
	}
	if s.key.D != nil {
		words := s.key.D.Bits()
		for i := range words {
			words[i] = 0
		}
		s.key.D.SetInt64(0)
	}
	s.key = nil
}

var _ usecase.Signer = (*KeySigner)(nil)
