package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
	"github.com/trebuchet-org/hdeploy/internal/domain"
	"github.com/trebuchet-org/hdeploy/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out    io.Writer
	format Format
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer, format Format) *NetworksRenderer {
	return &NetworksRenderer{
		out:    out,
		format: format,
	}
}

type networkOutput struct {
	Name     string `json:"name" yaml:"name"`
	RPCHost  string `json:"rpcHost,omitempty" yaml:"rpcHost,omitempty"`
	Source   string `json:"source,omitempty" yaml:"source,omitempty"`
	Explorer string `json:"explorer,omitempty" yaml:"explorer,omitempty"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Render renders the list of networks. RPC URLs are cut down to their host, since
// provider URLs often embed API keys.
func (r *NetworksRenderer) Render(result *usecase.ListNetworksResult) error {
	rows := lo.Map(result.Networks, func(n usecase.NetworkStatus, _ int) networkOutput {
		row := networkOutput{
			Name:     n.Name,
			RPCHost:  domain.RedactURL(n.RPCURL),
			Source:   n.Source,
			Explorer: n.ExplorerURL,
		}
		if n.Error != nil {
			row.Error = n.Error.Error()
		}
		return row
	})

	if r.format != FormatText {
		return writeStructured(r.out, r.format, rows)
	}

	if len(rows) == 0 {
		fmt.Fprintln(r.out, "No networks configured in foundry.toml [rpc_endpoints] or *_RPC_URL variables")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.AppendHeader(table.Row{"Network", "RPC", "Source", "Explorer"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft},
	})

	for _, row := range rows {
		if row.Error != "" {
			t.AppendRow(table.Row{row.Name, errorStyle.Sprint(row.Error), "", ""})
			continue
		}
		t.AppendRow(table.Row{row.Name, row.RPCHost, row.Source, row.Explorer})
	}

	t.Render()
	return nil
}

var _ Renderer[*usecase.ListNetworksResult] = (*NetworksRenderer)(nil)
