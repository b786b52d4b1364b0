package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/hdeploy/internal/usecase"
)

// AccountRenderer renders the derived deployer account
type AccountRenderer struct {
	out    io.Writer
	format Format
}

// NewAccountRenderer creates a new account renderer
func NewAccountRenderer(out io.Writer, format Format) *AccountRenderer {
	return &AccountRenderer{out: out, format: format}
}

// Render writes the account address
func (r *AccountRenderer) Render(result *usecase.ShowAccountResult) error {
	if r.format != FormatText {
		return writeStructured(r.out, r.format, map[string]string{
			"address":        result.Address.Hex(),
			"derivationPath": result.DerivationPath,
		})
	}

	fmt.Fprintf(r.out, "%s %s\n", addressStyle.Sprint(result.Address.Hex()), labelStyle.Sprintf("(%s)", result.DerivationPath))
	return nil
}

var _ Renderer[*usecase.ShowAccountResult] = (*AccountRenderer)(nil)
