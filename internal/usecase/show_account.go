package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/hdeploy/internal/domain"
)

// ShowAccountParams contains parameters for deriving the deployer account
type ShowAccountParams struct {
	Credentials *domain.Credentials
}

// ShowAccountResult contains the derived deployer account
type ShowAccountResult struct {
	Address        common.Address
	DerivationPath string
}

// ShowAccount derives the deployer address without touching the network
type ShowAccount struct {
	wallet WalletProvider
}

// NewShowAccount creates a new ShowAccount use case
func NewShowAccount(wallet WalletProvider) *ShowAccount {
	return &ShowAccount{wallet: wallet}
}

// Run derives the account. The credentials are destroyed before Run returns.
func (uc *ShowAccount) Run(ctx context.Context, params ShowAccountParams) (*ShowAccountResult, error) {
	creds := params.Credentials
	defer creds.Destroy()

	if creds == nil || creds.Mnemonic.Empty() {
		return nil, domain.NewConfigurationError(domain.ErrEmptyMnemonic)
	}

	signer, err := uc.wallet.Open(creds)
	if err != nil {
		return nil, domain.NewConfigurationError(err)
	}
	defer signer.Close()

	return &ShowAccountResult{
		Address:        signer.Address(),
		DerivationPath: creds.Path(),
	}, nil
}
