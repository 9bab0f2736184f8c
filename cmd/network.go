package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/w3mint/internal/chain"
	"github.com/Mohsinsiddi/w3mint/internal/ui"
)

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Inspect known networks",
}

var networkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known networks; the expected one is highlighted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := chain.NewRegistry()
		fmt.Println(networkTable(reg, cfg.ChainID()).Render())
		if _, err := reg.GetByID(cfg.ChainID()); err != nil {
			fmt.Println(ui.Warn(fmt.Sprintf("expected chain %s is not a known network", cfg.ChainID())))
		}
		return nil
	},
}

func networkTable(reg *chain.Registry, expected chain.ID) *ui.Table {
	t := ui.NewTable([]ui.Column{
		{Title: "Name", Width: 14},
		{Title: "Display", Width: 18},
		{Title: "Chain ID", Width: 12},
		{Title: "Hex", Width: 10},
		{Title: "Currency", Width: 8},
		{Title: "", Width: 8},
	})
	for i, c := range reg.All() {
		kind := ""
		switch {
		case c.Local:
			kind = "local"
		case c.Testnet:
			kind = "testnet"
		}
		if c.ID() == expected {
			t.Marked = i
		}
		t.AddRow(ui.Row{c.Name, c.DisplayName, fmt.Sprint(c.ChainID), c.ID().String(), c.NativeCurrency, kind})
	}
	return t
}

func init() {
	networkCmd.AddCommand(networkListCmd)
}
