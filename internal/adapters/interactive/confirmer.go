package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/trebuchet-org/hdeploy/internal/cli/render"
	"github.com/trebuchet-org/hdeploy/internal/domain/config"
	"github.com/trebuchet-org/hdeploy/internal/usecase"
)

// Confirmer shows the deployment plan and asks before funds are spent
type Confirmer struct {
	config *config.RuntimeConfig
	out    io.Writer
	in     io.ReadCloser
}

// NewConfirmer creates a confirmer. in may be nil to read from the terminal.
func NewConfirmer(cfg *config.RuntimeConfig, out io.Writer, in io.ReadCloser) *Confirmer {
	return &Confirmer{config: cfg, out: out, in: in}
}

// ConfirmDeployment prints the plan and prompts. --yes, --non-interactive and
// structured output skip the prompt.
func (c *Confirmer) ConfirmDeployment(ctx context.Context, plan *usecase.DeploymentPlan) (bool, error) {
	if c.config.Yes || c.config.NonInteractive || c.config.StructuredOutput() {
		return true, nil
	}

	c.printPlan(plan)

	if plan.Balance != nil && plan.Balance.Sign() == 0 {
		fmt.Fprintln(c.out, render.FormatWarning("deployer has no funds on this network"))
	}

	prompt := promptui.Prompt{
		Label:     "Send the creation transaction",
		IsConfirm: true,
		Stdin:     c.in,
		Stdout:    nopWriteCloser{c.out},
	}

	_, err := prompt.Run()
	return confirmed(err)
}

// confirmed maps the result of a promptui confirm prompt to a decision
func confirmed(err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, promptui.ErrAbort):
		return false, nil
	default:
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}
}

func (c *Confirmer) printPlan(plan *usecase.DeploymentPlan) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	fmt.Fprintln(c.out, bold.Sprintf("Deploying %s", plan.ContractName))
	fmt.Fprintf(c.out, "  %s %s\n", faint.Sprintf("%-12s", "Network:"), describeNetwork(plan))
	fmt.Fprintf(c.out, "  %s %s\n", faint.Sprintf("%-12s", "Deployer:"), plan.Deployer.Hex())
	fmt.Fprintf(c.out, "  %s %s\n", faint.Sprintf("%-12s", "Balance:"), render.FormatEther(plan.Balance))
	fmt.Fprintf(c.out, "  %s %d bytes\n", faint.Sprintf("%-12s", "Bytecode:"), plan.BytecodeSize)
	if len(plan.ConstructorArgs) > 0 {
		fmt.Fprintf(c.out, "  %s %s\n", faint.Sprintf("%-12s", "Arguments:"), strings.Join(plan.ConstructorArgs, ", "))
	}
	if plan.GasLimit > 0 {
		fmt.Fprintf(c.out, "  %s %d\n", faint.Sprintf("%-12s", "Gas limit:"), plan.GasLimit)
	}
}

func describeNetwork(plan *usecase.DeploymentPlan) string {
	if plan.Network == nil {
		return "unknown"
	}
	return fmt.Sprintf("%s (chain %d)", plan.Network.Name, plan.Network.ChainID)
}

// nopWriteCloser lets promptui write to an io.Writer without closing it
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

var _ usecase.DeploymentConfirmer = (*Confirmer)(nil)
