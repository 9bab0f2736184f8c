package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Mohsinsiddi/w3mint/internal/config"
	"github.com/Mohsinsiddi/w3mint/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Values resolve as defaults < config.json < W3MINT_* environment variables
(e.g. W3MINT_RPC_URL). 'config set' writes config.json.`,
}

var configShowCmd = &cobra.Command{
	Use:     "show",
	Aliases: []string{"list"},
	Short:   "Show the effective configuration",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pairs, err := configPairs(cfg)
		if err != nil {
			return err
		}
		fmt.Println(ui.KeyValueBlock("Configuration", pairs))
		fmt.Println(ui.Meta("Config directory: " + cfg.Dir()))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Persist one configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := cfg.Set(key, value); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		shown, _ := cfg.Get(key)
		fmt.Println(ui.Success(fmt.Sprintf("%s set to %s", key, ui.Val(shown))))
		return nil
	},
}

func configPairs(c *config.Config) ([][2]string, error) {
	pairs := make([][2]string, 0, len(config.Keys))
	for _, k := range config.Keys {
		v, err := c.Get(k)
		if err != nil {
			return nil, err
		}
		if v == "" {
			v = "-"
		}
		pairs = append(pairs, [2]string{k, v})
	}
	return pairs, nil
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd)
}
