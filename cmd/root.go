package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Mohsinsiddi/w3mint/internal/config"
	"github.com/Mohsinsiddi/w3mint/internal/logging"
	"github.com/Mohsinsiddi/w3mint/internal/metrics"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/Mohsinsiddi/w3mint/cmd.Version=1.2.3" .
var Version = "0.1.0"

var (
	cfgDir      string
	cfg         *config.Config
	verbose     bool
	rpcOverride string
	metricsFile string

	log *zap.Logger
	rec *metrics.Recorder
)

// rootCmd runs the mint screen when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "w3mint",
	Short: "Mint an NFT from the terminal",
	Long: `w3mint: connect a wallet and mint from a single-screen terminal app.

Signing wallets live in the OS keychain (see 'w3mint wallet'). The app
talks to the node at rpc_url and only offers minting on the expected chain.

Logs go to <config dir>/w3mint.log while the screen is up, and to stderr
for every other command.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if rpcOverride != "" {
			cfg.RPCURL = rpcOverride
		}

		opts := logging.Options{Verbose: verbose}
		if cmd == cmd.Root() {
			opts.Path = cfg.LogPath()
		}
		log, err = logging.New(opts)
		if err != nil {
			return err
		}
		rec = metrics.New()
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return finish()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context())
	},
}

// finish flushes logs and writes the metrics file. It runs on success and
// failure alike.
func finish() error {
	if log != nil {
		_ = log.Sync()
	}
	if err := rec.WriteTextfile(metricsFile); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	rec = nil
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_ = finish()
		fmt.Fprintln(os.Stderr, errLine(err))
		os.Exit(1)
	}
}

func init() {
	// W3MINT_CONFIG_DIR overrides the default; --config overrides both.
	if envDir := os.Getenv("W3MINT_CONFIG_DIR"); envDir != "" {
		cfgDir = envDir
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgDir, "config", cfgDir, "config directory (default: ~/.w3mint)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&rpcOverride, "rpc", "", "node URL for this run (overrides rpc_url)")
	pf.StringVar(&metricsFile, "metrics-file", "", "write counters in Prometheus text format on exit")

	rootCmd.AddCommand(
		supplyCmd,
		statusCmd,
		connectCmd,
		mintCmd,
		walletCmd,
		networkCmd,
		configCmd,
	)
}
