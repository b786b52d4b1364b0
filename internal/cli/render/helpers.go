package render

import (
	"errors"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/params"
	"github.com/fatih/color"
	"github.com/trebuchet-org/hdeploy/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	labelStyle   = color.New(color.Faint)
	addressStyle = color.New(color.FgCyan, color.Bold)
	hashStyle    = color.New(color.FgWhite)
	successStyle = color.New(color.FgGreen)
	warnStyle    = color.New(color.FgYellow)
	errorStyle   = color.New(color.FgRed)
)

// FormatError formats an error for the terminal. Staged deploy errors get a title
// naming the stage that failed.
func FormatError(err error) string {
	var deployErr *domain.DeployError
	if errors.As(err, &deployErr) {
		title := cases.Title(language.English).String(string(deployErr.Stage)) + " error"
		return errorStyle.Sprintf("❌ %s: %v", title, deployErr.Err)
	}
	return errorStyle.Sprintf("❌ %v", err)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return successStyle.Sprintf("✅ %s", message)
}

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return warnStyle.Sprintf("⚠️  %s", message)
}

// FormatEther renders a wei amount in ether with up to 6 decimals
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "unknown"
	}
	ether := new(big.Float).Quo(new(big.Float).SetInt(wei), big.NewFloat(params.Ether))
	s := ether.Text('f', 6)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s + " ETH"
}

// ExplorerLink joins an explorer base URL with a path, or returns "" without a base
func ExplorerLink(base, kind, id string) string {
	if base == "" {
		return ""
	}
	return strings.TrimRight(base, "/") + "/" + kind + "/" + id
}
