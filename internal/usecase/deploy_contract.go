package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/hdeploy/internal/domain"
	"github.com/trebuchet-org/hdeploy/internal/domain/config"
)

// ErrDeploymentDeclined is returned when the user does not confirm the deployment.
// Nothing has been submitted when this is returned.
var ErrDeploymentDeclined = errors.New("deployment declined")

// DeployContractParams contains parameters for a deployment
type DeployContractParams struct {
	Credentials *domain.Credentials

	// Artifact is used when set, otherwise ArtifactPath is loaded
	Artifact     *domain.Artifact
	ArtifactPath string

	// ConstructorArgs override the arguments carried by the artifact when non-nil
	ConstructorArgs []string
}

// DeployContractResult contains the result of a deployment
type DeployContractResult struct {
	Deployment *domain.DeploymentResult
	Network    *domain.NetworkInfo
	Artifact   *domain.Artifact
}

// DeploymentPlan is what is about to be submitted, shown before spending funds
type DeploymentPlan struct {
	ContractName    string
	Network         *domain.NetworkInfo
	Deployer        common.Address
	Balance         *big.Int
	ConstructorArgs []string
	BytecodeSize    int
	GasLimit        uint64
}

// DeployContract derives a signer, connects to a network and submits one
// contract-creation transaction.
type DeployContract struct {
	config    *config.RuntimeConfig
	resolver  NetworkResolver
	loader    ArtifactLoader
	encoder   ConstructorEncoder
	wallet    WalletProvider
	connector NetworkConnector
	deployer  ContractDeployer
	confirmer DeploymentConfirmer
	progress  ProgressSink
	log       *slog.Logger
}

// NewDeployContract creates a new DeployContract use case
func NewDeployContract(
	cfg *config.RuntimeConfig,
	resolver NetworkResolver,
	loader ArtifactLoader,
	encoder ConstructorEncoder,
	wallet WalletProvider,
	connector NetworkConnector,
	deployer ContractDeployer,
	confirmer DeploymentConfirmer,
	progress ProgressSink,
	log *slog.Logger,
) *DeployContract {
	return &DeployContract{
		config:    cfg,
		resolver:  resolver,
		loader:    loader,
		encoder:   encoder,
		wallet:    wallet,
		connector: connector,
		deployer:  deployer,
		confirmer: confirmer,
		progress:  progress,
		log:       log.With("component", "DeployContract"),
	}
}

// Run executes the deployment. The credentials are destroyed before Run returns.
// Errors never carry the full RPC URL, only its redacted form.
func (uc *DeployContract) Run(ctx context.Context, params DeployContractParams) (result *DeployContractResult, err error) {
	creds := params.Credentials
	defer creds.Destroy()

	var network *domain.NetworkInfo
	defer func() {
		if err != nil && network != nil {
			err = domain.RedactEndpoint(err, network.RPCURL)
		}
	}()

	stage := StageResolving
	defer func() {
		if err != nil {
			uc.progress.OnProgress(ctx, ProgressEvent{Stage: stage, Message: "failed"})
		}
	}()

	// Configuration: no I/O before this block succeeds
	if err := creds.Validate(); err != nil {
		return nil, domain.NewConfigurationError(err)
	}
	uc.log.Debug("deploying", "credentials", *creds)

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: stage, Message: "Resolving network"})
	network, err = uc.resolver.ResolveNetwork(ctx, creds.Network)
	if err != nil {
		return nil, domain.NewConfigurationError(err)
	}
	uc.log.Debug("resolved network", "network", network.Name, "source", network.Source)
	if uc.config.ChainID != 0 {
		network.ChainID = uc.config.ChainID
	}

	artifact, args, err := uc.prepareArtifact(ctx, params)
	if err != nil {
		return nil, domain.NewArtifactError(err)
	}

	// Credentialed provider
	stage = StageDeriving
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: stage, Message: "Deriving deployer key"})
	signer, err := uc.wallet.Open(creds)
	if err != nil {
		return nil, domain.NewConfigurationError(err)
	}
	defer signer.Close()
	creds.Destroy()
	uc.log.Debug("derived deployer", "address", signer.Address())

	// Network client
	stage = StageConnecting
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: stage, Message: "Connecting to " + network.Name, Spinner: true})
	conn, err := uc.connector.Connect(ctx, network)
	if err != nil {
		return nil, domain.NewConnectionError(err)
	}
	defer conn.Close()
	network.ChainID = conn.ChainID().Uint64()

	opts, err := signer.TransactOpts(ctx, conn.ChainID())
	if err != nil {
		return nil, domain.NewTransactionError(fmt.Errorf("failed to create transactor: %w", err))
	}
	opts.Context = ctx
	opts.GasLimit = uc.config.GasLimit

	if err := uc.confirm(ctx, conn, network, artifact, signer.Address()); err != nil {
		return nil, err
	}

	// Contract creation
	stage = StageSubmitting
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: stage, Message: "Submitting " + artifact.DisplayName(), Spinner: true})
	pending, err := uc.deployer.Submit(ctx, conn, opts, artifact, args)
	if err != nil {
		return nil, domain.NewTransactionError(err)
	}
	uc.log.Info("creation transaction sent",
		"tx", pending.Transaction.Hash().Hex(),
		"address", pending.Address.Hex(),
		"network", network.Name,
	)

	stage = StageConfirming
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   stage,
		Message: "Waiting for " + pending.Transaction.Hash().Hex(),
		Spinner: true,
	})
	deployment, err := uc.deployer.WaitMined(ctx, conn, pending)
	if err != nil {
		return nil, domain.NewTransactionError(err)
	}
	if deployment.Address == (common.Address{}) {
		return nil, domain.NewTransactionError(domain.ErrZeroAddress)
	}
	deployment.ContractName = artifact.Name
	deployment.Network = network.Name
	deployment.ChainID = network.ChainID

	stage = StageCompleted
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: stage, Message: "Deployed " + deployment.Address.Hex()})

	return &DeployContractResult{
		Deployment: deployment,
		Network:    network,
		Artifact:   artifact,
	}, nil
}

// prepareArtifact loads and validates the artifact and encodes its constructor arguments
func (uc *DeployContract) prepareArtifact(ctx context.Context, params DeployContractParams) (*domain.Artifact, []any, error) {
	artifact := params.Artifact
	if artifact == nil {
		if params.ArtifactPath == "" {
			return nil, nil, errors.New("no artifact given")
		}
		loaded, err := uc.loader.Load(ctx, params.ArtifactPath)
		if err != nil {
			return nil, nil, err
		}
		artifact = loaded
	}
	if params.ConstructorArgs != nil {
		withArgs := *artifact
		withArgs.ConstructorArgs = params.ConstructorArgs
		artifact = &withArgs
	}

	if err := artifact.Validate(); err != nil {
		return nil, nil, err
	}

	args, err := uc.encoder.EncodeConstructorArgs(artifact.ABI, artifact.ConstructorArgs)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid constructor arguments: %w", err)
	}
	return artifact, args, nil
}

// confirm shows the plan to the confirmer, if any, before funds are spent
func (uc *DeployContract) confirm(ctx context.Context, conn Connection, network *domain.NetworkInfo, artifact *domain.Artifact, deployer common.Address) error {
	if uc.confirmer == nil {
		return nil
	}

	balance, err := conn.Client().BalanceAt(ctx, deployer, nil)
	if err != nil {
		return domain.NewConnectionError(fmt.Errorf("failed to read deployer balance: %w", err))
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageConnecting, Message: "Connected"})
	ok, err := uc.confirmer.ConfirmDeployment(ctx, &DeploymentPlan{
		ContractName:    artifact.DisplayName(),
		Network:         network,
		Deployer:        deployer,
		Balance:         balance,
		ConstructorArgs: artifact.ConstructorArgs,
		BytecodeSize:    len(artifact.Bytecode),
		GasLimit:        uc.config.GasLimit,
	})
	if err != nil {
		return err
	}
	if !ok {
		return ErrDeploymentDeclined
	}
	return nil
}
