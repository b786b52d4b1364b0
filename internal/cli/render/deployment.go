package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/hdeploy/internal/usecase"
)

// deploymentOutput is the structured form of a deployment result
type deploymentOutput struct {
	Contract        string `json:"contract" yaml:"contract"`
	Address         string `json:"address" yaml:"address"`
	TransactionHash string `json:"transactionHash" yaml:"transactionHash"`
	BlockNumber     uint64 `json:"blockNumber" yaml:"blockNumber"`
	GasUsed         uint64 `json:"gasUsed" yaml:"gasUsed"`
	ChainID         uint64 `json:"chainId" yaml:"chainId"`
	Network         string `json:"network" yaml:"network"`
	Deployer        string `json:"deployer" yaml:"deployer"`
	Explorer        string `json:"explorer,omitempty" yaml:"explorer,omitempty"`
}

// DeploymentRenderer renders the result of a deployment
type DeploymentRenderer struct {
	out    io.Writer
	format Format
}

// NewDeploymentRenderer creates a new deployment renderer
func NewDeploymentRenderer(out io.Writer, format Format) *DeploymentRenderer {
	return &DeploymentRenderer{out: out, format: format}
}

// Render writes the deployment result
func (r *DeploymentRenderer) Render(result *usecase.DeployContractResult) error {
	d := result.Deployment
	output := deploymentOutput{
		Contract:        d.ContractName,
		Address:         d.Address.Hex(),
		TransactionHash: d.TransactionHash.Hex(),
		BlockNumber:     d.BlockNumber,
		GasUsed:         d.GasUsed,
		ChainID:         d.ChainID,
		Network:         d.Network,
		Deployer:        d.Deployer.Hex(),
		Explorer:        ExplorerLink(result.Network.ExplorerURL, "address", d.Address.Hex()),
	}

	if r.format != FormatText {
		return writeStructured(r.out, r.format, output)
	}

	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Deployed %s", output.Contract)))
	fmt.Fprintln(r.out)
	r.field("Address", addressStyle.Sprint(output.Address))
	r.field("Transaction", hashStyle.Sprint(output.TransactionHash))
	r.field("Block", fmt.Sprintf("%d", output.BlockNumber))
	r.field("Gas used", fmt.Sprintf("%d", output.GasUsed))
	r.field("Network", fmt.Sprintf("%s (chain %d)", output.Network, output.ChainID))
	r.field("Deployer", output.Deployer)
	if output.Explorer != "" {
		r.field("Explorer", output.Explorer)
	}
	return nil
}

func (r *DeploymentRenderer) field(label, value string) {
	fmt.Fprintf(r.out, "  %s %s\n", labelStyle.Sprintf("%-12s", label+":"), value)
}

var _ Renderer[*usecase.DeployContractResult] = (*DeploymentRenderer)(nil)
