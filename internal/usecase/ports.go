package usecase

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/trebuchet-org/hdeploy/internal/domain"
)

// ArtifactLoader reads compiled contract artifacts
type ArtifactLoader interface {
	Load(ctx context.Context, path string) (*domain.Artifact, error)
}

// ConstructorEncoder converts raw constructor arguments into ABI-typed values
type ConstructorEncoder interface {
	EncodeConstructorArgs(contractABI *abi.ABI, args []string) ([]any, error)
}

// WalletProvider builds a credentialed signer. It must not perform network I/O.
type WalletProvider interface {
	Open(creds *domain.Credentials) (Signer, error)
}

// Signer authorizes transactions for a single derived account
type Signer interface {
	Address() common.Address
	TransactOpts(ctx context.Context, chainID *big.Int) (*bind.TransactOpts, error)
	// Close wipes the key material. Safe to call more than once.
	Close()
}

// NetworkResolver turns a network identifier into an RPC endpoint
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, identifier string) (*domain.NetworkInfo, error)
}

// ChainClient is the subset of an Ethereum client needed to deploy a contract
type ChainClient interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// Connection is an established, verified link to a network
type Connection interface {
	Client() ChainClient
	ChainID() *big.Int
	Close()
}

// NetworkConnector opens connections to networks
type NetworkConnector interface {
	Connect(ctx context.Context, network *domain.NetworkInfo) (Connection, error)
}

// ContractDeployer submits a contract-creation transaction and waits for its receipt.
// Submit is called at most once per deployment; WaitMined is the only blocking step.
type ContractDeployer interface {
	Submit(ctx context.Context, conn Connection, opts *bind.TransactOpts, artifact *domain.Artifact, args []any) (*PendingDeployment, error)
	WaitMined(ctx context.Context, conn Connection, pending *PendingDeployment) (*domain.DeploymentResult, error)
}

// PendingDeployment is a broadcast creation transaction that has not been confirmed yet
type PendingDeployment struct {
	Address     common.Address
	Transaction *types.Transaction
	Deployer    common.Address
}

// DeploymentConfirmer asks whether a planned deployment should go ahead
type DeploymentConfirmer interface {
	ConfirmDeployment(ctx context.Context, plan *DeploymentPlan) (bool, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   ExecutionStage
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// ExecutionStage represents a stage in the deployment process
type ExecutionStage string

const (
	StageResolving  ExecutionStage = "Resolving"
	StageDeriving   ExecutionStage = "Deriving"
	StageConnecting ExecutionStage = "Connecting"
	StageSubmitting ExecutionStage = "Submitting"
	StageConfirming ExecutionStage = "Confirming"
	StageCompleted  ExecutionStage = "Completed"
)
