package blockchain

import (
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/hdeploy/internal/testutil"
	"github.com/trebuchet-org/hdeploy/internal/usecase"
)

type deployFixture struct {
	chain *testutil.SimulatedChain
	conn  usecase.Connection
	opts  *bind.TransactOpts
}

func newDeployFixture(t *testing.T) *deployFixture {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	from := crypto.PubkeyToAddress(key.PublicKey)

	chain := testutil.NewSimulatedChain(t, from)
	ctx := testutil.Ctx(t, 30*time.Second)

	conn, err := Attach(ctx, chain.Backend.Client(), testutil.SimulatedChainID, nil)
	require.NoError(t, err)

	opts, err := bind.NewKeyedTransactorWithChainID(key, big.NewInt(testutil.SimulatedChainID))
	require.NoError(t, err)
	opts.Context = ctx

	return &deployFixture{chain: chain, conn: conn, opts: opts}
}

func TestDeployer_SubmitAndWait(t *testing.T) {
	f := newDeployFixture(t)
	ctx := testutil.Ctx(t, 30*time.Second)
	deployer := NewDeployer(testutil.Logger())
	artifact := testutil.Artifact(t, testutil.EmptyABI, testutil.ReturnsFortyTwo)

	pending, err := deployer.Submit(ctx, f.conn, f.opts, artifact, nil)
	require.NoError(t, err)
	assert.NotEqual(t, common.Address{}, pending.Address)
	assert.Equal(t, f.opts.From, pending.Deployer)

	result, err := deployer.WaitMined(ctx, f.conn, pending)
	require.NoError(t, err)
	assert.Equal(t, pending.Address, result.Address)
	assert.Equal(t, pending.Transaction.Hash(), result.TransactionHash)
	assert.Equal(t, uint64(testutil.SimulatedChainID), result.ChainID)
	assert.Equal(t, f.opts.From, result.Deployer)
	assert.NotZero(t, result.BlockNumber)
	assert.NotZero(t, result.GasUsed)

	code, err := f.chain.Backend.Client().CodeAt(ctx, result.Address, nil)
	require.NoError(t, err)
	assert.Equal(t, common.FromHex("0x602a60005260206000f3"), code)
}

func TestDeployer_ConstructorArgs(t *testing.T) {
	f := newDeployFixture(t)
	ctx := testutil.Ctx(t, 30*time.Second)
	deployer := NewDeployer(testutil.Logger())
	artifact := testutil.Artifact(t, testutil.OwnedABI, testutil.ReturnsFortyTwo)

	owner := common.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	pending, err := deployer.Submit(ctx, f.conn, f.opts, artifact, []any{owner, big.NewInt(1000)})
	require.NoError(t, err)

	packed, err := artifact.ABI.Pack("", owner, big.NewInt(1000))
	require.NoError(t, err)
	assert.Equal(t, append(common.CopyBytes(artifact.Bytecode), packed...), pending.Transaction.Data())

	_, err = deployer.WaitMined(ctx, f.conn, pending)
	require.NoError(t, err)
}

func TestDeployer_RejectedBytecode(t *testing.T) {
	f := newDeployFixture(t)
	ctx := testutil.Ctx(t, 30*time.Second)
	deployer := NewDeployer(testutil.Logger())
	artifact := testutil.Artifact(t, testutil.EmptyABI, testutil.InvalidOpcode)

	pending, err := deployer.Submit(ctx, f.conn, f.opts, artifact, nil)
	require.Error(t, err)
	assert.Nil(t, pending)
	assert.Contains(t, err.Error(), "failed to submit creation transaction")
}

func TestDeployer_RevertedReceipt(t *testing.T) {
	f := newDeployFixture(t)
	ctx := testutil.Ctx(t, 30*time.Second)
	deployer := NewDeployer(testutil.Logger())
	artifact := testutil.Artifact(t, testutil.EmptyABI, testutil.InvalidOpcode)

	// A fixed gas limit skips estimation, so the failure shows up in the receipt
	f.opts.GasLimit = 100_000
	pending, err := deployer.Submit(ctx, f.conn, f.opts, artifact, nil)
	require.NoError(t, err)

	result, err := deployer.WaitMined(ctx, f.conn, pending)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrReverted)
}

func TestDeployer_TwoDeploymentsTwoAddresses(t *testing.T) {
	f := newDeployFixture(t)
	ctx := testutil.Ctx(t, 30*time.Second)
	deployer := NewDeployer(testutil.Logger())
	artifact := testutil.Artifact(t, testutil.EmptyABI, testutil.ReturnsFortyTwo)

	deploy := func() common.Address {
		pending, err := deployer.Submit(ctx, f.conn, f.opts, artifact, nil)
		require.NoError(t, err)
		result, err := deployer.WaitMined(ctx, f.conn, pending)
		require.NoError(t, err)
		return result.Address
	}

	first := deploy()
	second := deploy()
	assert.NotEqual(t, first, second)
	assert.Equal(t, crypto.CreateAddress(f.opts.From, 0), first)
	assert.Equal(t, crypto.CreateAddress(f.opts.From, 1), second)
}
