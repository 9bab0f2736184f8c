package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/w3mint/internal/connect"
	"github.com/Mohsinsiddi/w3mint/internal/ui"
	"github.com/Mohsinsiddi/w3mint/internal/wallet"
)

var (
	walletKeyFlag   string
	walletForceFlag bool
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage the wallets behind the local provider",
	Long: `Signing wallets are what the local provider offers when w3mint asks for
account access. Keys live in the OS keychain (or an encrypted file under the
config dir when no keychain is available). Watch-only wallets are listed but
never shared.`,
}

var walletAddCmd = &cobra.Command{
	Use:   "add <name> [address]",
	Short: "Add a signing wallet (--key) or a watch-only address",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		mgr := newWalletManager()

		if walletKeyFlag != "" {
			if err := mgr.AddWithKey(name, walletKeyFlag); err != nil {
				return err
			}
			w, _ := mgr.Get(name)
			fmt.Println(ui.Success(fmt.Sprintf("Signing wallet %q added: %s", name, ui.Addr(w.Address))))
			fmt.Println(ui.Hint("Restart w3mint to pick it up."))
			return nil
		}

		if len(args) < 2 {
			return fmt.Errorf("address required for a watch-only wallet\n  Usage: w3mint wallet add <name> <address>\n  Or for signing: w3mint wallet add <name> --key <private-key>")
		}
		address, err := connect.ChecksumAddress(args[1])
		if err != nil {
			return err
		}
		if err := mgr.Add(name, &wallet.Wallet{Name: name, Address: address, Type: wallet.TypeWatchOnly}); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Watch-only wallet %q added: %s", name, ui.Addr(address))))
		return nil
	},
}

var walletGenerateCmd = &cobra.Command{
	Use:   "generate <name>",
	Short: "Generate a new signing wallet",
	Long: `Generate a keypair and store the private key in the keychain.
The key is printed once. Save it; it cannot be shown again.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, hexKey, err := newWalletManager().Generate(args[0])
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Printf("  %s  %s\n", ui.Meta("Wallet :"), ui.Val(w.Name))
		fmt.Printf("  %s  %s\n\n", ui.Meta("Address:"), ui.Addr(w.Address))
		fmt.Println(ui.DangerBox(
			ui.Warn("PRIVATE KEY, shown only once. Never share it.") + "\n\n" +
				ui.Val(hexKey),
		))
		fmt.Println()
		return nil
	},
}

var walletListCmd = &cobra.Command{
	Use:   "list",
	Short: "List wallets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(walletTable(newWalletManager().List()).Render())
		return nil
	},
}

var walletUseCmd = &cobra.Command{
	Use:   "use [name]",
	Short: "Choose the wallet offered first",
	Long:  `Set the default signing wallet. Without a name, pick one from a list.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := newWalletManager()
		name := ""
		if len(args) == 1 {
			name = args[0]
		} else {
			picked, err := ui.PickItem("Default wallet", walletItems(mgr.Signing()), cfg.DefaultWallet)
			if err != nil {
				return err
			}
			if picked == "" {
				fmt.Println(ui.Meta("Cancelled."))
				return nil
			}
			name = picked
		}

		if err := mgr.SetDefault(name); err != nil {
			return err
		}
		cfg.DefaultWallet = name
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Default wallet set to %q.", name)))
		return nil
	},
}

var walletRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a wallet and its stored key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if !walletForceFlag && !ui.Confirm(fmt.Sprintf("Remove wallet %q and delete its key?", name)) {
			fmt.Println(ui.Meta("Cancelled."))
			return nil
		}
		if err := newWalletManager().Remove(name); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Wallet %q removed.", name)))
		return nil
	},
}

func walletTable(wallets []*wallet.Wallet) *ui.Table {
	t := ui.NewTable([]ui.Column{
		{Title: "Name", Width: 16},
		{Title: "Address", Width: 42},
		{Title: "Type", Width: 12},
		{Title: "Default", Width: 8},
	})
	t.Empty = "No wallets yet. Add one with: w3mint wallet add <name> --key <private-key>"
	for i, w := range wallets {
		def := ""
		if w.IsDefault {
			def = "✓"
			t.Marked = i
		}
		t.AddRow(ui.Row{w.Name, w.Address, walletTypeLabel(w.Type), def})
	}
	return t
}

func walletItems(wallets []*wallet.Wallet) []ui.PickerItem {
	items := make([]ui.PickerItem, len(wallets))
	for i, w := range wallets {
		items[i] = ui.PickerItem{Label: w.Name, SubLabel: connect.DisplayAccount(w.Address), Value: w.Name}
	}
	return items
}

// walletTypeLabel converts a wallet type to a user-facing label.
func walletTypeLabel(t string) string {
	if t == wallet.TypeSigning {
		return "signing"
	}
	return t
}

func init() {
	walletAddCmd.Flags().StringVar(&walletKeyFlag, "key", "", "private key of a signing wallet (stored in the keychain)")
	walletRemoveCmd.Flags().BoolVarP(&walletForceFlag, "force", "f", false, "skip the confirmation")
	walletCmd.AddCommand(walletAddCmd, walletGenerateCmd, walletListCmd, walletUseCmd, walletRemoveCmd)
}
