package blockchain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/trebuchet-org/hdeploy/internal/domain"
	"github.com/trebuchet-org/hdeploy/internal/usecase"
)

var (
	// ErrReverted is returned when the creation transaction was mined with a failed status
	ErrReverted = errors.New("creation transaction reverted")

	// ErrNoCode is returned when the receipt succeeded but no code sits at the contract address
	ErrNoCode = errors.New("no code at contract address after deployment")
)

// Deployer submits contract-creation transactions with go-ethereum's bind package
type Deployer struct {
	log *slog.Logger
}

// NewDeployer creates a new contract deployer
func NewDeployer(log *slog.Logger) *Deployer {
	return &Deployer{
		log: log.With("component", "Deployer"),
	}
}

// Submit signs and broadcasts the creation transaction. It does not wait for inclusion.
func (d *Deployer) Submit(ctx context.Context, conn usecase.Connection, opts *bind.TransactOpts, artifact *domain.Artifact, args []any) (*usecase.PendingDeployment, error) {
	if opts.Context == nil {
		opts.Context = ctx
	}

	d.log.Debug("submitting creation transaction",
		"contract", artifact.DisplayName(),
		"from", opts.From.Hex(),
		"bytecodeSize", len(artifact.Bytecode),
		"args", len(args),
	)

	address, tx, _, err := bind.DeployContract(opts, *artifact.ABI, artifact.Bytecode, conn.Client(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to submit creation transaction: %w", err)
	}

	return &usecase.PendingDeployment{
		Address:     address,
		Transaction: tx,
		Deployer:    opts.From,
	}, nil
}

// WaitMined blocks until the transaction is included, then checks its receipt and the deployed code
func (d *Deployer) WaitMined(ctx context.Context, conn usecase.Connection, pending *usecase.PendingDeployment) (*domain.DeploymentResult, error) {
	hash := pending.Transaction.Hash()

	receipt, err := bind.WaitMined(ctx, conn.Client(), pending.Transaction)
	if err != nil {
		return nil, fmt.Errorf("failed waiting for transaction %s: %w", hash.Hex(), err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%w: tx %s in block %s used %d gas", ErrReverted, hash.Hex(), receipt.BlockNumber, receipt.GasUsed)
	}

	address := receipt.ContractAddress
	if address == (common.Address{}) {
		address = pending.Address
	}

	code, err := conn.Client().CodeAt(ctx, address, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check code at %s: %w", address.Hex(), err)
	}
	if len(code) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoCode, address.Hex())
	}

	d.log.Debug("creation transaction mined",
		"tx", hash.Hex(),
		"block", receipt.BlockNumber,
		"gasUsed", receipt.GasUsed,
		"address", address.Hex(),
	)

	return &domain.DeploymentResult{
		Address:         address,
		TransactionHash: hash,
		BlockNumber:     receipt.BlockNumber.Uint64(),
		GasUsed:         receipt.GasUsed,
		ChainID:         conn.ChainID().Uint64(),
		Deployer:        pending.Deployer,
	}, nil
}

// Ensure the adapter implements the interface
var _ usecase.ContractDeployer = (*Deployer)(nil)
