package interactive

import (
	"bytes"
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/hdeploy/internal/domain"
	"github.com/trebuchet-org/hdeploy/internal/domain/config"
	"github.com/trebuchet-org/hdeploy/internal/usecase"
)

func testPlan() *usecase.DeploymentPlan {
	return &usecase.DeploymentPlan{
		ContractName:    "Inbox",
		Network:         &domain.NetworkInfo{Name: "sepolia", ChainID: 11155111, Source: "foundry.toml"},
		Deployer:        common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"),
		Balance:         big.NewInt(1_500_000_000_000_000_000),
		ConstructorArgs: []string{"Hi there!"},
		BytecodeSize:    1234,
	}
}

func TestConfirmer_Skipped(t *testing.T) {
	for _, cfg := range []*config.RuntimeConfig{
		{Yes: true},
		{NonInteractive: true},
		{Output: "json"},
		{Output: "yaml"},
	} {
		var out bytes.Buffer
		ok, err := NewConfirmer(cfg, &out, nil).ConfirmDeployment(context.Background(), testPlan())
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, out.String())
	}
}

func TestConfirmer_PrintPlan(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer

	NewConfirmer(&config.RuntimeConfig{}, &out, nil).printPlan(testPlan())

	assert.Contains(t, out.String(), "Deploying Inbox")
	assert.Contains(t, out.String(), "sepolia (chain 11155111)")
	assert.Contains(t, out.String(), "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	assert.Contains(t, out.String(), "1.5 ETH")
	assert.Contains(t, out.String(), "Hi there!")
	assert.NotContains(t, out.String(), "Gas limit")
}

func TestConfirmed(t *testing.T) {
	ok, err := confirmed(nil)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = confirmed(promptui.ErrAbort)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = confirmed(promptui.ErrInterrupt)
	require.ErrorIs(t, err, promptui.ErrInterrupt)
}

func TestDescribeNetwork(t *testing.T) {
	plan := testPlan()
	plan.Network = &domain.NetworkInfo{Name: "https://eth.example.com/…", ChainID: 1, Source: "url"}
	assert.Equal(t, "https://eth.example.com/… (chain 1)", describeNetwork(plan))

	plan.Network = nil
	assert.Equal(t, "unknown", describeNetwork(plan))
}
